package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/grid"
	"github.com/penwyp/go-eld-log/internal/presentation/canvas"
	"github.com/penwyp/go-eld-log/internal/util"
)

// TextFormatter prints each sheet for the terminal: a header with the date
// and recorded totals, the grid drawn in character cells, and the entries.
type TextFormatter struct {
	geometry grid.Geometry
	width    int
	table    *TableFormatter
}

func NewTextFormatter(g grid.Geometry, width int) *TextFormatter {
	if width <= 0 {
		width = canvas.TerminalWidth()
	}
	return &TextFormatter{
		geometry: g,
		width:    width,
		table:    NewTableFormatter(),
	}
}

func (f *TextFormatter) Format(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		_, err := fmt.Fprintln(w, NoLogsMessage)
		return err
	}

	for i, sheet := range sheets {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := f.formatSheet(w, sheet); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatSheet(w io.Writer, sheet Sheet) error {
	if _, err := fmt.Fprintln(w, Header(sheet)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, TotalsLine(sheet)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if err := canvas.RenderTerminal(w, f.geometry, f.width, sheet.Commands); err != nil {
		return err
	}

	if len(sheet.Log.Entries) > 0 {
		if _, err := fmt.Fprintln(w, "\nDetailed Entries"); err != nil {
			return err
		}
		if err := f.table.FormatEntries(w, sheet.Log.Entries); err != nil {
			return err
		}
	}

	if len(sheet.Issues) > 0 {
		if _, err := fmt.Fprintf(w, "\nIssues (%d)\n", len(sheet.Issues)); err != nil {
			return err
		}
		for _, issue := range sheet.Issues {
			if _, err := fmt.Fprintf(w, "  - %s\n", issue); err != nil {
				return err
			}
		}
	}
	return nil
}

// Header is the sheet title, e.g. "Daily Log - 03/01/2024".
func Header(sheet Sheet) string {
	return "Daily Log - " + util.FormatDate(sheet.Log.Date)
}

// TotalsLine lists the recorded totals with one decimal each.
func TotalsLine(sheet Sheet) string {
	items := headerTotals(sheet.Recorded)
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Label+": "+util.FormatHours(item.Hours))
	}
	return strings.Join(parts, " | ")
}
