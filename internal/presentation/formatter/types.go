package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-eld-log/internal/core/grid"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/core/totals"
)

// NoLogsMessage is printed for an empty batch.
const NoLogsMessage = "No daily logs available"

// Sheet is one rendered daily log.
type Sheet struct {
	Log      model.DailyLog
	Segments []timeline.Segment
	Issues   []timeline.Issue
	Commands []grid.Command
	Recorded totals.Totals
	Drawn    totals.Totals
}

// Formatter writes a batch of sheets in one output format.
type Formatter interface {
	Format(w io.Writer, sheets []Sheet) error
}

// Options carries what the drawing formats need to know about the canvas.
type Options struct {
	Geometry grid.Geometry
	// Width is the terminal width in cells for the text format.
	Width int
}

// Formats lists the accepted output format names.
var Formats = []string{"text", "svg", "json", "csv", "summary", "xlsx"}

// New returns the formatter for the named format.
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTextFormatter(opts.Geometry, opts.Width), nil
	case "svg":
		return NewSVGFormatter(opts.Geometry), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	case "xlsx":
		return NewXLSXFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type totalItem struct {
	Label string
	Hours float64
}

// headerTotals lists the recorded totals in sheet order with their captions.
func headerTotals(t totals.Totals) []totalItem {
	return []totalItem{
		{"Off Duty", t.OffDuty},
		{"Sleeper", t.SleeperBerth},
		{"Driving", t.Driving},
		{"On Duty", t.OnDuty},
	}
}
