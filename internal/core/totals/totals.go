package totals

import (
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
)

// Totals holds hours per duty-status category.
type Totals struct {
	OffDuty      float64 `json:"off_duty"`
	SleeperBerth float64 `json:"sleeper_berth"`
	Driving      float64 `json:"driving"`
	OnDuty       float64 `json:"on_duty"`
}

// FromLog returns the totals recorded on the log by the trip planner. Missing
// or non-numeric fields count as zero. The values are not derived from the
// entries and may legitimately disagree with the drawn bars.
func FromLog(log model.DailyLog) Totals {
	return Totals{
		OffDuty:      log.TotalOffDutyHours.OrZero(),
		SleeperBerth: log.TotalSleeperBerthHours.OrZero(),
		Driving:      log.TotalDrivingHours.OrZero(),
		OnDuty:       log.TotalOnDutyHours.OrZero(),
	}
}

// FromSegments sums drawn segment widths per category. Segments of unknown
// status are not attributed to any category.
func FromSegments(segments []timeline.Segment) Totals {
	var t Totals
	for _, s := range segments {
		switch s.ColorKey {
		case model.StatusOffDuty:
			t.OffDuty += s.Duration()
		case model.StatusSleeperBerth:
			t.SleeperBerth += s.Duration()
		case model.StatusDriving:
			t.Driving += s.Duration()
		case model.StatusOnDutyNotDriving:
			t.OnDuty += s.Duration()
		}
	}
	return t
}

// Get returns the total for a category; unknown categories have none.
func (t Totals) Get(c model.Category) float64 {
	switch c {
	case model.CategoryOffDuty:
		return t.OffDuty
	case model.CategorySleeperBerth:
		return t.SleeperBerth
	case model.CategoryDriving:
		return t.Driving
	case model.CategoryOnDutyNotDriving:
		return t.OnDuty
	default:
		return 0
	}
}

// Sum adds the four categories.
func (t Totals) Sum() float64 {
	return t.OffDuty + t.SleeperBerth + t.Driving + t.OnDuty
}

// Add returns the element-wise sum, used for multi-day summaries.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		OffDuty:      t.OffDuty + o.OffDuty,
		SleeperBerth: t.SleeperBerth + o.SleeperBerth,
		Driving:      t.Driving + o.Driving,
		OnDuty:       t.OnDuty + o.OnDuty,
	}
}
