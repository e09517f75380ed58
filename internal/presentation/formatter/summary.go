package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/totals"
	"github.com/penwyp/go-eld-log/internal/util"
)

// SummaryFormatter compares recorded totals with drawn hours across a batch.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format writes the summary report. Recorded totals come from the planner and
// are printed as given; drawn hours are what the bars cover.
func (f *SummaryFormatter) Format(w io.Writer, sheets []Sheet) error {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("ELD Daily Log Summary\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(sheets) == 0 {
		sb.WriteString(NoLogsMessage + "\n\n")
		sb.WriteString(strings.Repeat("=", 60) + "\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	first := util.FormatDate(sheets[0].Log.Date)
	last := util.FormatDate(sheets[len(sheets)-1].Log.Date)
	if first == last {
		fmt.Fprintf(&sb, "Date Range: %s\n", first)
	} else {
		fmt.Fprintf(&sb, "Date Range: %s to %s\n", first, last)
	}
	fmt.Fprintf(&sb, "Logs: %d\n\n", len(sheets))

	var recorded, drawn totals.Totals
	issues := 0
	for _, s := range sheets {
		recorded = recorded.Add(s.Recorded)
		drawn = drawn.Add(s.Drawn)
		issues += len(s.Issues)
	}

	sb.WriteString("Hours by Status:\n")
	fmt.Fprintf(&sb, "  %-16s %10s %10s\n", "", "Recorded", "Drawn")
	for _, c := range model.Categories {
		fmt.Fprintf(&sb, "  %-16s %10s %10s\n", c.Label()+":", util.FormatHours(recorded.Get(c)), util.FormatHours(drawn.Get(c)))
	}
	fmt.Fprintf(&sb, "  %-16s %10s %10s\n\n", "Total:", util.FormatHours(recorded.Sum()), util.FormatHours(drawn.Sum()))

	sb.WriteString("Daily Logs:\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, s := range sheets {
		fmt.Fprintf(&sb, "\n%s:\n", util.FormatDate(s.Log.Date))
		fmt.Fprintf(&sb, "  %s\n", TotalsLine(s))
		fmt.Fprintf(&sb, "  Entries: %d, Segments: %d, Issues: %d\n", len(s.Log.Entries), len(s.Segments), len(s.Issues))
	}

	fmt.Fprintf(&sb, "\nIssues: %d\n", issues)
	sb.WriteString("\n" + strings.Repeat("=", 60) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
