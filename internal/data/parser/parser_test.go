package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleLog = `{
  "date": "2024-03-01",
  "total_off_duty_hours": 10,
  "total_sleeper_berth_hours": 0,
  "total_driving_hours": 11,
  "total_on_duty_hours": 3,
  "log_data": [
    {"start_time": 0, "end_time": 1, "status": "on_duty_not_driving", "location": "Chicago, IL", "activity": "Loading/Pickup"},
    {"start_time": "01:00", "end_time": "12:00", "status": "driving"}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewParser(t *testing.T) {
	parser := NewParser(4)
	assert.NotNil(t, parser)
	assert.Equal(t, 4, parser.concurrency)
	assert.Empty(t, parser.cache)

	assert.Equal(t, 1, NewParser(0).concurrency)
}

func TestParseBytesShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		dates []string
	}{
		{name: "single_log", input: singleLog, dates: []string{"2024-03-01"}},
		{name: "array", input: `[{"date":"2024-03-01"},{"date":"2024-03-02"}]`, dates: []string{"2024-03-01", "2024-03-02"}},
		{name: "trip_envelope", input: `{"id":7,"current_location":"Chicago","daily_logs":[{"date":"2024-03-02"},{"date":"2024-03-03"}]}`, dates: []string{"2024-03-02", "2024-03-03"}},
		{name: "empty_trip", input: `{"daily_logs":[]}`, dates: []string{}},
		{name: "empty_array", input: `[]`, dates: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs, err := ParseBytes([]byte(tt.input))
			require.NoError(t, err)
			dates := make([]string, 0, len(logs))
			for _, l := range logs {
				dates = append(dates, l.Date)
			}
			assert.Equal(t, tt.dates, dates)
		})
	}
}

func TestParseBytesErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "42", `"log"`, `{"date": }`, `[{"log_data": 5}]`} {
		_, err := ParseBytes([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseBytesKeepsDecodableLogs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "trip_envelope",
			input: `{"daily_logs":[{"date":"2024-03-01","log_data":[{"start_time":0,"end_time":6,"status":"driving"}]},{"date":"2024-03-02","log_data":42}]}`,
		},
		{
			name:  "array",
			input: `[{"date":"2024-03-01","log_data":[{"start_time":0,"end_time":6,"status":"driving"}]},{"date":"2024-03-02","log_data":42}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs, err := ParseBytes([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPartial)
			assert.Contains(t, err.Error(), "daily log 1")

			require.Len(t, logs, 1)
			assert.Equal(t, "2024-03-01", logs[0].Date)
			assert.Len(t, logs[0].Entries, 1)
		})
	}
}

func TestParseBytesTripWithNoDecodableLogs(t *testing.T) {
	for _, input := range []string{`{"daily_logs":[{"log_data":42}]}`, `{"daily_logs":5}`} {
		logs, err := ParseBytes([]byte(input))
		require.Error(t, err, input)
		assert.NotErrorIs(t, err, ErrPartial, input)
		assert.Empty(t, logs, input)
	}

	logs, err := ParseBytes([]byte(`{"daily_logs":null}`))
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestParserParseFilePartial(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "trip.json", `{"daily_logs":[{"date":"2024-03-01"},{"log_data":42}]}`)

	parser := NewParser(1)
	for i := 0; i < 2; i++ {
		logs, err := parser.ParseFile(path)
		assert.ErrorIs(t, err, ErrPartial)
		assert.Contains(t, err.Error(), "trip.json")
		require.Len(t, logs, 1)
	}

	all, errs := parser.ParseAll([]string{path})
	require.Len(t, errs, 1)
	assert.Len(t, all, 1)
}

func TestParserParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "day.json", singleLog)

	parser := NewParser(1)
	logs, err := parser.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	log := logs[0]
	assert.Equal(t, model.NewHours(11), log.TotalDrivingHours)
	require.Len(t, log.Entries, 2)
	assert.Equal(t, "Loading/Pickup", log.Entries[0].Activity)
	assert.Equal(t, model.ClockValue("12:00"), log.Entries[1].EndTime)
}

func TestParserParseFileCacheInvalidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "day.json", `{"date":"2024-03-01"}`)

	parser := NewParser(1)
	logs, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", logs[0].Date)
	assert.Len(t, parser.cache, 1)

	writeFile(t, dir, "day.json", `{"date":"2024-03-02", "log_data": []}`)
	logs, err = parser.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", logs[0].Date)
}

func TestParserParseFileJSONL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "days.jsonl", `{"date":"2024-03-01"}
not json

{"date":"2024-03-02"}`)

	logs, err := NewParser(1).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-03-02", logs[1].Date)
}

func TestParserParseFileMissing(t *testing.T) {
	_, err := NewParser(1).ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParserParseAll(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.json", `{"date":"2024-03-01"}`),
		writeFile(t, dir, "b.json", `broken`),
		writeFile(t, dir, "c.json", `[{"date":"2024-03-02"},{"date":"2024-03-03"}]`),
	}

	logs, errs := NewParser(3).ParseAll(files)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "b.json")

	require.Len(t, logs, 3)
	assert.Equal(t, "2024-03-01", logs[0].Date)
	assert.Equal(t, "2024-03-02", logs[1].Date)
	assert.Equal(t, "2024-03-03", logs[2].Date)
}

func TestParserParseFilesChannelCloses(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.json", `{"date":"2024-03-01"}`),
		writeFile(t, dir, "b.json", `{"date":"2024-03-02"}`),
	}

	count := 0
	for result := range NewParser(2).ParseFiles(files) {
		require.NoError(t, result.Error)
		count++
	}
	assert.Equal(t, 2, count)
}
