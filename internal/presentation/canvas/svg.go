package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/penwyp/go-eld-log/internal/core/grid"
)

// SVG writes commands as elements of a standalone SVG document sized to the
// canvas. Canvas units map to SVG user units one to one.
type SVG struct {
	w   io.Writer
	err error
}

// NewSVG writes the document header for a canvas of the given geometry.
func NewSVG(w io.Writer, g grid.Geometry) *SVG {
	return newSVG(w, g.CanvasWidth, g.CanvasHeight)
}

func newSVG(w io.Writer, width, height float64) *SVG {
	s := &SVG{w: w}
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(width), num(height), num(width), num(height))
	return s
}

// RenderSVG writes a complete document for cmds.
func RenderSVG(w io.Writer, g grid.Geometry, cmds []grid.Command) error {
	s := NewSVG(w, g)
	Execute(s, cmds)
	return s.Close()
}

// RenderSVGPages stacks one canvas per page vertically in a single document.
func RenderSVGPages(w io.Writer, g grid.Geometry, pages [][]grid.Command) error {
	s := newSVG(w, g.CanvasWidth, g.CanvasHeight*float64(max(len(pages), 1)))
	for i, cmds := range pages {
		s.printf(`<g transform="translate(0 %s)">`+"\n", num(float64(i)*g.CanvasHeight))
		Execute(s, cmds)
		s.printf("</g>\n")
	}
	return s.Close()
}

func (s *SVG) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *SVG) FillRect(c grid.FillRect) {
	s.printf(`  <rect class="%s" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		c.Layer, num(c.X), num(c.Y), num(c.Width), num(c.Height), attr(c.Color))
}

func (s *SVG) StrokeRect(c grid.StrokeRect) {
	s.printf(`  <rect class="%s" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		c.Layer, num(c.X), num(c.Y), num(c.Width), num(c.Height), attr(c.Color), num(c.LineWidth))
}

func (s *SVG) Line(c grid.Line) {
	s.printf(`  <line class="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		c.Layer, num(c.X1), num(c.Y1), num(c.X2), num(c.Y2), attr(c.Color), num(c.LineWidth))
}

func (s *SVG) Text(c grid.Text) {
	s.printf(`  <text class="%s" x="%s" y="%s" fill="%s" style="font: %s" text-anchor="%s">%s</text>`+"\n",
		c.Layer, num(c.X), num(c.Y), attr(c.Color), attr(c.Font), anchor(c.Align), attr(c.Text))
}

// Close writes the closing tag and reports the first write error.
func (s *SVG) Close() error {
	s.printf("</svg>\n")
	return s.err
}

func anchor(a grid.Align) string {
	switch a {
	case grid.AlignCenter:
		return "middle"
	case grid.AlignRight:
		return "end"
	default:
		return "start"
	}
}

func attr(v string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(v))
	return buf.String()
}
