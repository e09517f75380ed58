package canvas

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-eld-log/internal/core/grid"
	"github.com/penwyp/go-eld-log/internal/util"
	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is used when stdout is not a terminal.
	DefaultTerminalWidth = 100
	// linesPerRow is the number of text lines given to one category row.
	linesPerRow = 3
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLine
	cellFill
	cellText
)

type cell struct {
	r     rune
	color string
	kind  cellKind
	cont  bool // second half of a wide rune
}

type boxGlyphs struct {
	h, v, tl, tr, bl, br, top, bottom, left, right rune
}

var (
	lightBox = boxGlyphs{'─', '│', '┌', '┐', '└', '┘', '┬', '┴', '├', '┤'}
	heavyBox = boxGlyphs{'━', '┃', '┏', '┓', '┗', '┛', '┯', '┷', '┠', '┨'}
)

// Terminal rasterizes commands onto character cells. Fills become block
// characters, lines become box drawing characters and text is placed at the
// nearest cell. The background fill and segment outlines are not drawn; at
// cell resolution they would hide the grid and the bars.
type Terminal struct {
	cols, rows int
	sx, sy     float64
	cells      [][]cell
}

// TerminalWidth returns the width of stdout, or DefaultTerminalWidth.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return DefaultTerminalWidth
}

// NewTerminal creates a raster cols cells wide for a canvas of geometry g.
func NewTerminal(g grid.Geometry, cols int) *Terminal {
	if cols < 1 {
		cols = DefaultTerminalWidth
	}
	rows := int(math.Ceil(g.CanvasHeight / g.RowHeight() * linesPerRow))
	if rows < 1 {
		rows = 1
	}

	t := &Terminal{
		cols:  cols,
		rows:  rows,
		sx:    float64(cols) / g.CanvasWidth,
		sy:    float64(rows) / g.CanvasHeight,
		cells: make([][]cell, rows),
	}
	for i := range t.cells {
		t.cells[i] = make([]cell, cols)
		for j := range t.cells[i] {
			t.cells[i][j] = cell{r: ' '}
		}
	}
	return t
}

// RenderTerminal rasterizes cmds and writes the result to w.
func RenderTerminal(w io.Writer, g grid.Geometry, cols int, cmds []grid.Command) error {
	t := NewTerminal(g, cols)
	Execute(t, cmds)
	_, err := io.WriteString(w, t.String())
	return err
}

func (t *Terminal) col(x float64) int { return clamp(int(math.Floor(x*t.sx)), 0, t.cols-1) }
func (t *Terminal) row(y float64) int { return clamp(int(math.Floor(y*t.sy)), 0, t.rows-1) }

// span returns the cells whose centres fall inside [start, start+size). A
// non-empty span narrower than one cell still covers the cell at its middle.
func span(start, size, scale float64, limit int) (int, int) {
	lo := int(math.Ceil(start*scale - 0.5))
	hi := int(math.Floor((start+size)*scale - 0.5))
	if hi < lo {
		lo = int(math.Floor((start + size/2) * scale))
		hi = lo
	}
	return clamp(lo, 0, limit-1), clamp(hi, 0, limit-1)
}

func (t *Terminal) set(r, c int, ch rune, clr string, kind cellKind) {
	if t.cells[r][c].kind == cellText {
		return
	}
	t.cells[r][c] = cell{r: ch, color: clr, kind: kind}
}

func (t *Terminal) FillRect(c grid.FillRect) {
	if c.Layer == grid.LayerBackground || c.Width <= 0 || c.Height <= 0 {
		return
	}
	c0, c1 := span(c.X, c.Width, t.sx, t.cols)
	r0, r1 := span(c.Y, c.Height, t.sy, t.rows)
	for r := r0; r <= r1; r++ {
		for col := c0; col <= c1; col++ {
			t.set(r, col, '█', c.Color, cellFill)
		}
	}
}

func (t *Terminal) StrokeRect(c grid.StrokeRect) {
	if c.Layer == grid.LayerSegment {
		return
	}
	box := lightBox
	if c.LineWidth >= 2 {
		box = heavyBox
	}

	c0, c1 := t.col(c.X), t.col(c.X+c.Width)
	r0, r1 := t.row(c.Y), t.row(c.Y+c.Height)

	for col := c0 + 1; col < c1; col++ {
		t.set(r0, col, t.edge(r0, col, box.h, box.top, hasVertical), c.Color, cellLine)
		t.set(r1, col, t.edge(r1, col, box.h, box.bottom, hasVertical), c.Color, cellLine)
	}
	for r := r0 + 1; r < r1; r++ {
		t.set(r, c0, t.edge(r, c0, box.v, box.left, hasHorizontal), c.Color, cellLine)
		t.set(r, c1, t.edge(r, c1, box.v, box.right, hasHorizontal), c.Color, cellLine)
	}
	t.set(r0, c0, box.tl, c.Color, cellLine)
	t.set(r0, c1, box.tr, c.Color, cellLine)
	t.set(r1, c0, box.bl, c.Color, cellLine)
	t.set(r1, c1, box.br, c.Color, cellLine)
}

// edge picks the junction glyph where a border meets an existing line.
func (t *Terminal) edge(r, c int, plain, junction rune, crosses func(rune) bool) rune {
	existing := t.cells[r][c]
	if existing.kind == cellLine && crosses(existing.r) {
		return junction
	}
	return plain
}

func (t *Terminal) Line(c grid.Line) {
	thin := c.LineWidth < 1
	switch {
	case c.X1 == c.X2:
		glyph := '│'
		if thin {
			glyph = '┊'
		}
		col := t.col(c.X1)
		r0, r1 := t.row(math.Min(c.Y1, c.Y2)), t.row(math.Max(c.Y1, c.Y2))
		for r := r0; r <= r1; r++ {
			ch := glyph
			if existing := t.cells[r][col]; existing.kind == cellLine && hasHorizontal(existing.r) {
				ch = '┼'
			}
			t.set(r, col, ch, c.Color, cellLine)
		}
	case c.Y1 == c.Y2:
		glyph := '─'
		if thin {
			glyph = '┈'
		}
		r := t.row(c.Y1)
		c0, c1 := t.col(math.Min(c.X1, c.X2)), t.col(math.Max(c.X1, c.X2))
		for col := c0; col <= c1; col++ {
			ch := glyph
			if existing := t.cells[r][col]; existing.kind == cellLine && hasVertical(existing.r) {
				ch = '┼'
			}
			t.set(r, col, ch, c.Color, cellLine)
		}
	default:
		steps := int(math.Max(math.Abs(c.X2-c.X1)*t.sx, math.Abs(c.Y2-c.Y1)*t.sy)) + 1
		for i := 0; i <= steps; i++ {
			f := float64(i) / float64(steps)
			t.set(t.row(c.Y1+f*(c.Y2-c.Y1)), t.col(c.X1+f*(c.X2-c.X1)), '·', c.Color, cellLine)
		}
	}
}

func (t *Terminal) Text(c grid.Text) {
	anchor := c.X * t.sx

	avail := t.cols
	switch c.Align {
	case grid.AlignRight:
		avail = int(math.Floor(anchor))
	case grid.AlignLeft:
		avail = t.cols - int(math.Floor(anchor))
	}
	text := util.TruncateString(c.Text, avail)
	width := runewidth.StringWidth(text)
	if width == 0 {
		return
	}

	var start int
	switch c.Align {
	case grid.AlignRight:
		start = int(math.Round(anchor)) - width
	case grid.AlignCenter:
		start = int(math.Round(anchor - float64(width)/2))
	default:
		start = int(math.Floor(anchor))
	}
	start = clamp(start, 0, t.cols-width)

	// Text sits on its baseline; use the middle of the glyph box.
	r := t.row(c.Y - fontSize(c.Font, 10)/2)
	if t.textAt(r, start, width) {
		r--
		if r < 0 || t.textAt(r, start, width) {
			util.LogDebugf("Terminal canvas: no room for label %q", c.Text)
			return
		}
	}

	col := start
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		t.cells[r][col] = cell{r: ch, color: c.Color, kind: cellText}
		if w == 2 && col+1 < t.cols {
			t.cells[r][col+1] = cell{kind: cellText, cont: true}
		}
		col += w
	}
}

func (t *Terminal) textAt(r, start, width int) bool {
	for col := start; col < start+width && col < t.cols; col++ {
		if t.cells[r][col].kind == cellText {
			return true
		}
	}
	return false
}

// String renders the raster line by line. Trailing blanks and empty trailing
// lines are dropped. Colours follow fatih/color, which disables itself when
// stdout is not a terminal.
func (t *Terminal) String() string {
	lines := make([]string, 0, t.rows)
	for _, row := range t.cells {
		lines = append(lines, renderRow(row))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func renderRow(row []cell) string {
	last := len(row) - 1
	for last >= 0 && row[last].kind == cellEmpty && row[last].r == ' ' {
		last--
	}

	var sb strings.Builder
	var run strings.Builder
	runColor := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(paint(runColor, run.String()))
		run.Reset()
	}

	for i := 0; i <= last; i++ {
		c := row[i]
		if c.cont {
			continue
		}
		if c.color != runColor {
			flush()
			runColor = c.color
		}
		run.WriteRune(c.r)
	}
	flush()
	return sb.String()
}

func paint(hex, s string) string {
	if hex == "" {
		return s
	}
	r, g, b, ok := parseHex(hex)
	if !ok {
		return s
	}
	return color.RGB(r, g, b).Sprint(s)
}

func hasVertical(r rune) bool {
	return r == '│' || r == '┊' || r == '┃' || r == '┼'
}

func hasHorizontal(r rune) bool {
	return r == '─' || r == '┈' || r == '━' || r == '┼'
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
