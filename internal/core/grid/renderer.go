package grid

import (
	"strconv"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
)

// Options tune the parts of the sheet that are display conveniences.
type Options struct {
	// PeriodLabelEvery emits an AM/PM label on every n-th hour line; 0 disables.
	PeriodLabelEvery int
	Theme            Theme
}

func DefaultOptions() Options {
	return Options{
		PeriodLabelEvery: 6,
		Theme:            DefaultTheme(),
	}
}

// Render lays out a day's segments on the grid. The result is a pure function
// of the arguments; executing the commands is up to a backend.
//
// Order: background, hour lines with labels, row lines with captions, one
// fill and one outline per segment, and finally the grid border.
func Render(segments []timeline.Segment, g Geometry, opts Options) []Command {
	theme := opts.Theme
	if theme.Palette == nil {
		theme = DefaultTheme()
	}

	hourWidth := g.HourWidth()
	rowHeight := g.RowHeight()
	cmds := make([]Command, 0, 1+HoursPerDay*3+model.RowCount*2+2*len(segments)+1)

	cmds = append(cmds, FillRect{
		Layer:  LayerBackground,
		X:      g.MarginLeft,
		Y:      g.MarginTop,
		Width:  g.GridWidth,
		Height: g.GridHeight,
		Color:  theme.Background,
	})

	for i := 0; i <= HoursPerDay; i++ {
		x := g.MarginLeft + float64(i)*hourWidth
		cmds = append(cmds,
			Line{
				Layer:     LayerHourLine,
				X1:        x,
				Y1:        g.MarginTop,
				X2:        x,
				Y2:        g.MarginTop + g.GridHeight,
				Color:     theme.HourLine,
				LineWidth: theme.HourLineWidth,
			},
			Text{
				Layer: LayerHourLabel,
				X:     x,
				Y:     g.MarginTop - 15,
				Text:  HourLabel(i),
				Color: theme.Label,
				Font:  theme.HourFont,
				Align: AlignCenter,
			},
		)
		if opts.PeriodLabelEvery > 0 && i%opts.PeriodLabelEvery == 0 {
			cmds = append(cmds, Text{
				Layer: LayerPeriodLabel,
				X:     x,
				Y:     g.MarginTop - 5,
				Text:  PeriodLabel(i),
				Color: theme.Label,
				Font:  theme.HourFont,
				Align: AlignCenter,
			})
		}
	}

	for i := 0; i <= model.RowCount; i++ {
		y := g.MarginTop + float64(i)*rowHeight
		cmds = append(cmds, Line{
			Layer:     LayerRowLine,
			X1:        g.MarginLeft,
			Y1:        y,
			X2:        g.MarginLeft + g.GridWidth,
			Y2:        y,
			Color:     theme.RowLine,
			LineWidth: theme.RowLineWidth,
		})
		if i < model.RowCount {
			cmds = append(cmds, Text{
				Layer: LayerRowLabel,
				X:     g.MarginLeft - 10,
				Y:     y + rowHeight/2 + 4,
				Text:  model.Categories[i].Label(),
				Color: theme.Label,
				Font:  theme.RowFont,
				Align: AlignRight,
			})
		}
	}

	for _, seg := range segments {
		x := g.MarginLeft + seg.StartHour*hourWidth
		y := g.MarginTop + float64(seg.Row)*rowHeight + g.BarPadding
		w := (seg.EndHour - seg.StartHour) * hourWidth
		h := rowHeight - 2*g.BarPadding
		color := theme.Color(seg.ColorKey)

		cmds = append(cmds,
			FillRect{Layer: LayerSegment, X: x, Y: y, Width: w, Height: h, Color: color},
			StrokeRect{Layer: LayerSegment, X: x, Y: y, Width: w, Height: h, Color: color, LineWidth: theme.BarStrokeWidth},
		)
	}

	cmds = append(cmds, StrokeRect{
		Layer:     LayerBorder,
		X:         g.MarginLeft,
		Y:         g.MarginTop,
		Width:     g.GridWidth,
		Height:    g.GridHeight,
		Color:     theme.Border,
		LineWidth: theme.BorderWidth,
	})

	return cmds
}

// HourLabel is the 12-hour clock caption of an hour line: 0 and 12 read "12".
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12"
	case hour <= 12:
		return strconv.Itoa(hour)
	default:
		return strconv.Itoa(hour - 12)
	}
}

// PeriodLabel is "AM" before noon and "PM" from noon on, including hour 24.
func PeriodLabel(hour int) string {
	if hour < 12 {
		return "AM"
	}
	return "PM"
}
