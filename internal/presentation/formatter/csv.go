package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-eld-log/internal/util"
)

// CSVFormatter writes one record per drawn segment.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, sheets []Sheet) error {
	cw := csv.NewWriter(w)

	headers := []string{"Date", "Entry", "Status", "Row", "Start", "End", "Hours"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, sheet := range sheets {
		for _, seg := range sheet.Segments {
			record := []string{
				sheet.Log.Date,
				strconv.Itoa(seg.Entry),
				seg.ColorKey,
				strconv.Itoa(seg.Row),
				formatFloat(seg.StartHour),
				formatFloat(seg.EndHour),
				formatFloat(seg.Duration()),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		util.LogDebugf("CSV output failed: %v", err)
		return err
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
