package timeline

import (
	"fmt"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// Segment is one drawable bar: a row and an hour span on the 24-hour axis.
// A midnight-wrapping entry yields two segments.
type Segment struct {
	Row       int            `json:"row"`
	StartHour float64        `json:"start_hour"`
	EndHour   float64        `json:"end_hour"`
	ColorKey  string         `json:"color_key"`
	Category  model.Category `json:"-"`
	Entry     int            `json:"entry"` // index of the generating entry
}

// Duration returns the span of the segment in hours.
func (s Segment) Duration() float64 {
	return s.EndHour - s.StartHour
}

// IssueKind classifies a per-entry data-quality problem.
type IssueKind string

const (
	IssueMissingField    IssueKind = "missing_field"
	IssueMalformedTime   IssueKind = "malformed_time"
	IssueUnsupportedTime IssueKind = "unsupported_time"
	IssueUnknownCategory IssueKind = "unknown_category"
	IssueZeroWidth       IssueKind = "zero_width"
	// IssueOutOfRange marks a midnight-crossing entry whose bound lies outside
	// the day, so one of its halves is empty and not drawn.
	IssueOutOfRange IssueKind = "out_of_range"
)

// Skips reports whether entries with this issue produce no segments.
func (k IssueKind) Skips() bool {
	return k != IssueUnknownCategory && k != IssueOutOfRange
}

// Issue is a non-fatal problem found while building segments.
type Issue struct {
	Entry  int       `json:"entry"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("entry %d: %s: %s", i.Entry, i.Kind, i.Detail)
}

// Result is the output of one build pass over a day's entries.
type Result struct {
	Segments []Segment `json:"segments"`
	Issues   []Issue   `json:"issues,omitempty"`
}
