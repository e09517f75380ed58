package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-eld-log/internal/core/grid"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/core/totals"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type sheetJSON struct {
	Date     string                  `json:"date"`
	Recorded totals.Totals           `json:"recorded_totals"`
	Drawn    totals.Totals           `json:"drawn_totals"`
	Entries  []model.DutyStatusEntry `json:"entries"`
	Segments []timeline.Segment      `json:"segments"`
	Issues   []timeline.Issue        `json:"issues"`
	Commands []grid.Tagged           `json:"commands"`
}

func (f *JSONFormatter) Format(w io.Writer, sheets []Sheet) error {
	out := make([]sheetJSON, 0, len(sheets))
	for _, s := range sheets {
		out = append(out, sheetJSON{
			Date:     s.Log.Date,
			Recorded: s.Recorded,
			Drawn:    s.Drawn,
			Entries:  orEmpty(s.Log.Entries),
			Segments: orEmpty(s.Segments),
			Issues:   orEmpty(s.Issues),
			Commands: grid.Tag(s.Commands),
		})
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// orEmpty keeps empty lists as [] rather than null in the output.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
