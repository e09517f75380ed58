package timeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/util"
)

// Builder turns a day's duty-status entries into drawable segments.
type Builder struct {
	aliases map[string]string
}

// NewBuilder creates a builder. aliases maps extra status spellings onto the
// four wire statuses before categorisation; it may be nil. Alias keys and
// targets match case-insensitively.
func NewBuilder(aliases map[string]string) *Builder {
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[foldStatus(k)] = foldStatus(v)
	}
	return &Builder{aliases: copied}
}

// BuildSegments builds segments with no status aliases.
func BuildSegments(entries []model.DutyStatusEntry) []Segment {
	return NewBuilder(nil).Build(entries).Segments
}

// Build processes entries in order. A bad entry is skipped and reported as an
// Issue; it never stops the remaining entries from rendering.
func (b *Builder) Build(entries []model.DutyStatusEntry) Result {
	result := Result{Segments: make([]Segment, 0, len(entries))}

	for i, entry := range entries {
		if entry.StartTime.IsAbsent() || entry.EndTime.IsAbsent() {
			result.Issues = append(result.Issues, b.issue(i, IssueMissingField, missingDetail(entry)))
			continue
		}

		startHour, err := Normalize(entry.StartTime)
		if err != nil {
			result.Issues = append(result.Issues, b.issue(i, kindOf(err), "start_time "+err.Error()))
			continue
		}
		endHour, err := Normalize(entry.EndTime)
		if err != nil {
			result.Issues = append(result.Issues, b.issue(i, kindOf(err), "end_time "+err.Error()))
			continue
		}

		category := b.categorize(entry.Status)
		if !category.IsKnown() {
			result.Issues = append(result.Issues, b.issue(i, IssueUnknownCategory,
				fmt.Sprintf("status %q drawn as %s", entry.Status, category.Key())))
		}

		if endHour == startHour {
			result.Issues = append(result.Issues, b.issue(i, IssueZeroWidth,
				fmt.Sprintf("start and end both %g", startHour)))
			continue
		}

		seg := Segment{
			Row:      category.Row(),
			ColorKey: category.Key(),
			Category: category,
			Entry:    i,
		}

		if endHour < startHour {
			if startHour >= 24 {
				result.Issues = append(result.Issues, b.issue(i, IssueOutOfRange,
					fmt.Sprintf("start %g is past the end of the day; part before midnight not drawn", startHour)))
			}
			if endHour < 0 {
				result.Issues = append(result.Issues, b.issue(i, IssueOutOfRange,
					fmt.Sprintf("end %g is before the start of the day; part after midnight not drawn", endHour)))
			}
			// Crosses midnight: tail of the day, then head of the day.
			tail, head := seg, seg
			tail.StartHour, tail.EndHour = startHour, 24
			head.StartHour, head.EndHour = 0, endHour
			result.Segments = appendNonEmpty(result.Segments, tail, head)
			continue
		}

		seg.StartHour, seg.EndHour = startHour, endHour
		result.Segments = append(result.Segments, seg)
	}

	return result
}

func (b *Builder) categorize(status string) model.Category {
	if target, ok := b.aliases[foldStatus(status)]; ok {
		return model.ParseCategory(target)
	}
	return model.ParseCategory(status)
}

func foldStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func (b *Builder) issue(entry int, kind IssueKind, detail string) Issue {
	util.LogDebugf("Log entry %d: %s: %s", entry, kind, detail)
	return Issue{Entry: entry, Kind: kind, Detail: detail}
}

// appendNonEmpty drops halves that collapse to nothing, e.g. an entry ending
// exactly at midnight.
func appendNonEmpty(dst []Segment, segs ...Segment) []Segment {
	for _, s := range segs {
		if s.EndHour > s.StartHour {
			dst = append(dst, s)
		}
	}
	return dst
}

func kindOf(err error) IssueKind {
	switch {
	case errors.Is(err, ErrMalformedTime):
		return IssueMalformedTime
	case errors.Is(err, ErrMissingTime):
		return IssueMissingField
	default:
		return IssueUnsupportedTime
	}
}

func missingDetail(entry model.DutyStatusEntry) string {
	switch {
	case entry.StartTime.IsAbsent() && entry.EndTime.IsAbsent():
		return "start_time and end_time missing"
	case entry.StartTime.IsAbsent():
		return "start_time missing"
	default:
		return "end_time missing"
	}
}
