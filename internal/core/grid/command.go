package grid

// Layer names the part of the sheet a command draws.
type Layer string

const (
	LayerBackground  Layer = "background"
	LayerHourLine    Layer = "hour_line"
	LayerHourLabel   Layer = "hour_label"
	LayerPeriodLabel Layer = "period_label"
	LayerRowLine     Layer = "row_line"
	LayerRowLabel    Layer = "row_label"
	LayerSegment     Layer = "segment"
	LayerBorder      Layer = "border"
)

// Align is the horizontal anchor of a Text command.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Command is a single drawing instruction. The set of implementations is
// closed: FillRect, StrokeRect, Line and Text.
type Command interface {
	Op() string
	LayerName() Layer
	isCommand()
}

type FillRect struct {
	Layer  Layer   `json:"layer"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
}

type StrokeRect struct {
	Layer     Layer   `json:"layer"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"line_width"`
}

type Line struct {
	Layer     Layer   `json:"layer"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"line_width"`
}

type Text struct {
	Layer Layer   `json:"layer"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Color string  `json:"color"`
	Font  string  `json:"font"`
	Align Align   `json:"align"`
}

func (FillRect) Op() string   { return "fill_rect" }
func (StrokeRect) Op() string { return "stroke_rect" }
func (Line) Op() string       { return "line" }
func (Text) Op() string       { return "text" }

func (c FillRect) LayerName() Layer   { return c.Layer }
func (c StrokeRect) LayerName() Layer { return c.Layer }
func (c Line) LayerName() Layer       { return c.Layer }
func (c Text) LayerName() Layer       { return c.Layer }

func (FillRect) isCommand()   {}
func (StrokeRect) isCommand() {}
func (Line) isCommand()       {}
func (Text) isCommand()       {}

// Tagged pairs a command with its op name for serialisation.
type Tagged struct {
	Op   string  `json:"op"`
	Args Command `json:"args"`
}

// Tag wraps commands for JSON output.
func Tag(cmds []Command) []Tagged {
	out := make([]Tagged, len(cmds))
	for i, c := range cmds {
		out[i] = Tagged{Op: c.Op(), Args: c}
	}
	return out
}

// CountLayer returns how many commands draw the given layer.
func CountLayer(cmds []Command, layer Layer) int {
	n := 0
	for _, c := range cmds {
		if c.LayerName() == layer {
			n++
		}
	}
	return n
}
