package model

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		jsonData string
		expected TimeValue
	}{
		{name: "integer_hours", jsonData: `7`, expected: HoursValue(7)},
		{name: "fractional_hours", jsonData: `13.25`, expected: HoursValue(13.25)},
		{name: "negative_hours", jsonData: `-1`, expected: HoursValue(-1)},
		{name: "clock_string", jsonData: `"07:30"`, expected: ClockValue("07:30")},
		{name: "empty_string", jsonData: `""`, expected: ClockValue("")},
		{name: "null", jsonData: `null`, expected: TimeValue{Kind: TimeAbsent}},
		{name: "boolean", jsonData: `true`, expected: TimeValue{Kind: TimeOther, Raw: "true"}},
		{name: "object", jsonData: `{"h":1}`, expected: TimeValue{Kind: TimeOther, Raw: `{"h":1}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tv TimeValue
			require.NoError(t, sonic.Unmarshal([]byte(tt.jsonData), &tv))
			assert.Equal(t, tt.expected, tv)
		})
	}
}

func TestTimeValueMarshalRoundTrip(t *testing.T) {
	entry := DutyStatusEntry{
		StartTime: HoursValue(22),
		EndTime:   ClockValue("02:00"),
		Status:    StatusDriving,
	}

	data, err := sonic.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start_time":22,"end_time":"02:00","status":"driving"}`, string(data))
}

func TestDailyLogUnmarshalMissingFields(t *testing.T) {
	raw := `{
		"date": "2024-03-01",
		"total_driving_hours": 8.5,
		"total_on_duty_hours": "lots",
		"total_off_duty_hours": null,
		"log_data": [
			{"start_time": 0, "end_time": 6, "status": "sleeper_berth"},
			{"end_time": "09:00", "status": "driving", "location": "Denver, CO"}
		]
	}`

	var log DailyLog
	require.NoError(t, sonic.UnmarshalString(raw, &log))

	assert.Equal(t, "2024-03-01", log.Date)
	assert.Equal(t, NewHours(8.5), log.TotalDrivingHours)
	assert.False(t, log.TotalOnDutyHours.Valid, "non-numeric total must not be valid")
	assert.False(t, log.TotalOffDutyHours.Valid)
	assert.False(t, log.TotalSleeperBerthHours.Valid)
	assert.Equal(t, 0.0, log.TotalOnDutyHours.OrZero())

	require.Len(t, log.Entries, 2)
	assert.True(t, log.Entries[1].StartTime.IsAbsent())
	assert.Equal(t, "Denver, CO", log.Entries[1].Location)
}

func TestEntriesUnmarshalEncodedString(t *testing.T) {
	raw := `{"date":"2024-03-01","log_data":"[{\"start_time\":1,\"end_time\":2,\"status\":\"on_duty\"}]"}`

	var log DailyLog
	require.NoError(t, sonic.UnmarshalString(raw, &log))
	require.Len(t, log.Entries, 1)
	assert.Equal(t, "on_duty", log.Entries[0].Status)
	assert.Equal(t, CategoryUnknown, log.Entries[0].Category())
}

func TestEntriesUnmarshalRejectsGarbage(t *testing.T) {
	var log DailyLog
	err := sonic.UnmarshalString(`{"log_data": 42}`, &log)
	assert.Error(t, err)

	err = sonic.UnmarshalString(`{"log_data": "not json"}`, &log)
	assert.Error(t, err)
}

func TestEntriesUnmarshalNull(t *testing.T) {
	var log DailyLog
	require.NoError(t, sonic.UnmarshalString(`{"date":"2024-03-01","log_data":null}`, &log))
	assert.Empty(t, log.Entries)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		status string
		row    int
		key    string
		known  bool
	}{
		{StatusOffDuty, 0, "off_duty", true},
		{StatusSleeperBerth, 1, "sleeper_berth", true},
		{StatusDriving, 2, "driving", true},
		{StatusOnDutyNotDriving, 3, "on_duty_not_driving", true},
		{"on_duty", 0, "unknown", false},
		{"", 0, "unknown", false},
		{"Driving", 0, "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			c := ParseCategory(tt.status)
			assert.Equal(t, tt.row, c.Row())
			assert.Equal(t, tt.key, c.Key())
			assert.Equal(t, tt.known, c.IsKnown())
		})
	}
}

func TestCategoriesRowOrder(t *testing.T) {
	require.Len(t, Categories, RowCount)
	for i, c := range Categories {
		assert.Equal(t, i, c.Row())
	}
	assert.Equal(t, []string{"Off Duty", "Sleeper Berth", "Driving", "On Duty"}, []string{
		Categories[0].Label(), Categories[1].Label(), Categories[2].Label(), Categories[3].Label(),
	})
}
