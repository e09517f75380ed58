package totals

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLogEmpty(t *testing.T) {
	assert.Equal(t, Totals{}, FromLog(model.DailyLog{}))

	var log model.DailyLog
	require.NoError(t, sonic.UnmarshalString(`{}`, &log))
	assert.Equal(t, Totals{OffDuty: 0, SleeperBerth: 0, Driving: 0, OnDuty: 0}, FromLog(log))
}

func TestFromLogRecordedValues(t *testing.T) {
	log := model.DailyLog{
		TotalOffDutyHours:      model.NewHours(10),
		TotalSleeperBerthHours: model.NewHours(2.5),
		TotalDrivingHours:      model.NewHours(11),
		TotalOnDutyHours:       model.NewHours(3.25),
		// Entries deliberately disagree with the totals.
		Entries: model.Entries{
			{StartTime: model.HoursValue(0), EndTime: model.HoursValue(1), Status: model.StatusDriving},
		},
	}

	got := FromLog(log)
	assert.Equal(t, Totals{OffDuty: 10, SleeperBerth: 2.5, Driving: 11, OnDuty: 3.25}, got)
	assert.Equal(t, 26.75, got.Sum(), "totals are not required to sum to 24")
}

func TestFromLogNonNumericFields(t *testing.T) {
	var log model.DailyLog
	require.NoError(t, sonic.UnmarshalString(`{
		"total_off_duty_hours": "ten",
		"total_sleeper_berth_hours": null,
		"total_driving_hours": 4,
		"total_on_duty_hours": [1]
	}`, &log))

	assert.Equal(t, Totals{Driving: 4}, FromLog(log))
}

func TestFromSegments(t *testing.T) {
	segs := timeline.BuildSegments([]model.DutyStatusEntry{
		{StartTime: model.HoursValue(0), EndTime: model.HoursValue(6), Status: model.StatusSleeperBerth},
		{StartTime: model.HoursValue(22), EndTime: model.HoursValue(2), Status: model.StatusDriving},
		{StartTime: model.HoursValue(6), EndTime: model.HoursValue(7), Status: "on_duty"},
		{StartTime: model.HoursValue(7), EndTime: model.HoursValue(8), Status: model.StatusOnDutyNotDriving},
	})

	got := FromSegments(segs)
	assert.Equal(t, Totals{SleeperBerth: 6, Driving: 4, OnDuty: 1}, got)
}

func TestTotalsGetAndAdd(t *testing.T) {
	a := Totals{OffDuty: 1, SleeperBerth: 2, Driving: 3, OnDuty: 4}
	b := Totals{OffDuty: 0.5, Driving: 1}

	assert.Equal(t, 3.0, a.Get(model.CategoryDriving))
	assert.Equal(t, 4.0, a.Get(model.CategoryOnDutyNotDriving))
	assert.Equal(t, 0.0, a.Get(model.CategoryUnknown))
	assert.Equal(t, Totals{OffDuty: 1.5, SleeperBerth: 2, Driving: 4, OnDuty: 4}, a.Add(b))
}
