package canvas

import (
	"math"
	"strconv"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/grid"
)

// Backend executes drawing commands on some surface.
type Backend interface {
	FillRect(c grid.FillRect)
	StrokeRect(c grid.StrokeRect)
	Line(c grid.Line)
	Text(c grid.Text)
}

// Execute runs cmds against b in order.
func Execute(b Backend, cmds []grid.Command) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case grid.FillRect:
			b.FillRect(c)
		case grid.StrokeRect:
			b.StrokeRect(c)
		case grid.Line:
			b.Line(c)
		case grid.Text:
			b.Text(c)
		}
	}
}

// fontSize extracts the pixel size from a CSS font shorthand such as
// "bold 11px Arial". It returns def when no size is present.
func fontSize(font string, def float64) float64 {
	for _, part := range strings.Fields(font) {
		if !strings.HasSuffix(part, "px") {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSuffix(part, "px"), 64); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// parseHex decodes #rgb and #rrggbb colours.
func parseHex(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
