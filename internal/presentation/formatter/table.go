package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/util"
)

// TableFormatter prints the detailed entries of a log as a boxed table.
type TableFormatter struct {
	headers []string
	// maxWidth caps free-text columns so long addresses do not wrap the terminal.
	maxWidth int
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers:  []string{"Start", "End", "Status", "Location", "Activity"},
		maxWidth: 40,
	}
}

// FormatEntries writes the entries table to w.
func (f *TableFormatter) FormatEntries(w io.Writer, entries []model.DutyStatusEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			timeline.FormatClock(e.StartTime),
			timeline.FormatClock(e.EndTime),
			util.HumanizeStatus(e.Status),
			util.TruncateString(e.Location, f.maxWidth),
			util.TruncateString(e.Activity, f.maxWidth),
		})
	}

	widths := f.calculateColumnWidths(rows)

	var sb strings.Builder
	f.printBorder(&sb, widths, "top")
	f.printRow(&sb, f.headers, widths)
	f.printBorder(&sb, widths, "middle")
	for _, row := range rows {
		f.printRow(&sb, row, widths)
	}
	f.printBorder(&sb, widths, "bottom")

	_, err := io.WriteString(w, sb.String())
	return err
}

// calculateColumnWidths determines the display width of each column
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Clock columns stay aligned even when every time is short.
	minWidths := []int{5, 5, 8, 8, 8}
	for i, minWidth := range minWidths {
		if widths[i] < minWidth {
			widths[i] = minWidth
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(sb *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}

// printRow prints a left-aligned row, padding by display width
func (f *TableFormatter) printRow(sb *strings.Builder, values []string, widths []int) {
	sb.WriteString("│")
	for i, value := range values {
		fmt.Fprintf(sb, " %s │", util.PadString(value, widths[i], true))
	}
	sb.WriteString("\n")
}
