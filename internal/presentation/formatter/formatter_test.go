package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/penwyp/go-eld-log/internal/core/grid"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/core/totals"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func makeSheet(log model.DailyLog) Sheet {
	result := timeline.NewBuilder(nil).Build(log.Entries)
	return Sheet{
		Log:      log,
		Segments: result.Segments,
		Issues:   result.Issues,
		Commands: grid.Render(result.Segments, grid.DefaultGeometry(), grid.DefaultOptions()),
		Recorded: totals.FromLog(log),
		Drawn:    totals.FromSegments(result.Segments),
	}
}

func sampleSheet() Sheet {
	return makeSheet(model.DailyLog{
		Date:                   "2024-03-01",
		TotalOffDutyHours:      model.NewHours(10),
		TotalSleeperBerthHours: model.NewHours(0),
		TotalDrivingHours:      model.NewHours(11),
		TotalOnDutyHours:       model.NewHours(3),
		Entries: model.Entries{
			{StartTime: model.HoursValue(0), EndTime: model.HoursValue(1), Status: model.StatusOnDutyNotDriving, Location: "Chicago, IL", Activity: "Loading/Pickup"},
			{StartTime: model.ClockValue("01:00"), EndTime: model.ClockValue("12:00"), Status: model.StatusDriving},
			{StartTime: model.HoursValue(22), EndTime: model.HoursValue(2), Status: model.StatusSleeperBerth},
			{StartTime: model.ClockValue("bad:time"), EndTime: model.HoursValue(5), Status: model.StatusDriving},
		},
	})
}

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestNew(t *testing.T) {
	opts := Options{Geometry: grid.DefaultGeometry(), Width: 100}

	for _, name := range Formats {
		f, err := New(name, opts)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	f, err := New("", opts)
	require.NoError(t, err)
	assert.IsType(t, &TextFormatter{}, f)

	_, err = New("pdf", opts)
	assert.Error(t, err)
}

func TestTextFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(grid.DefaultGeometry(), 100).Format(&buf, nil))
	assert.Equal(t, "No daily logs available\n", buf.String())
}

func TestTextFormatter(t *testing.T) {
	withoutColor(t)

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(grid.DefaultGeometry(), 100).Format(&buf, []Sheet{sampleSheet()}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Daily Log - 03/01/2024\n"))
	assert.Contains(t, out, "Off Duty: 10.0h | Sleeper: 0.0h | Driving: 11.0h | On Duty: 3.0h")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "Detailed Entries")
	assert.Contains(t, out, "on duty_not_driving")
	assert.Contains(t, out, "Loading/Pickup")
	assert.Contains(t, out, "00:00")
	assert.Contains(t, out, "bad:time")
	assert.Contains(t, out, "Issues (1)")
	assert.Contains(t, out, "entry 3: malformed_time")
}

func TestTextFormatterSeparatesSheets(t *testing.T) {
	withoutColor(t)

	second := makeSheet(model.DailyLog{Date: "2024-03-02"})
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(grid.DefaultGeometry(), 100).Format(&buf, []Sheet{sampleSheet(), second}))
	out := buf.String()

	assert.Contains(t, out, "\n\nDaily Log - 03/02/2024\n")
	assert.Equal(t, 1, strings.Count(out, "Detailed Entries"), "a log without entries has no table")
	assert.Contains(t, out, "Off Duty: 0.0h | Sleeper: 0.0h | Driving: 0.0h | On Duty: 0.0h")
}

func TestTableFormatterAlignment(t *testing.T) {
	var buf bytes.Buffer
	entries := sampleSheet().Log.Entries
	entries[1].Location = "Gary, IN - I-90 rest area"
	require.NoError(t, NewTableFormatter().FormatEntries(&buf, entries))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4+len(entries))
	width := util.GetDisplayWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, util.GetDisplayWidth(line), line)
	}
	assert.Contains(t, lines[1], "Start")
	assert.Contains(t, lines[1], "Activity")
}

func TestTableFormatterTruncatesLongText(t *testing.T) {
	var buf bytes.Buffer
	entries := []model.DutyStatusEntry{{
		StartTime: model.HoursValue(1),
		EndTime:   model.HoursValue(2),
		Status:    model.StatusDriving,
		Location:  strings.Repeat("x", 80),
	}}
	require.NoError(t, NewTableFormatter().FormatEntries(&buf, entries))
	assert.Contains(t, buf.String(), strings.Repeat("x", 39)+"…")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 41))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, []Sheet{sampleSheet()}))

	var out []map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)

	sheet := out[0]
	assert.Equal(t, "2024-03-01", sheet["date"])
	assert.Len(t, sheet["segments"], 4)
	assert.Len(t, sheet["issues"], 1)
	assert.Len(t, sheet["entries"], 4)

	recorded := sheet["recorded_totals"].(map[string]interface{})
	assert.Equal(t, 11.0, recorded["driving"])
	drawn := sheet["drawn_totals"].(map[string]interface{})
	assert.Equal(t, 4.0, drawn["sleeper_berth"])

	commands := sheet["commands"].([]interface{})
	first := commands[0].(map[string]interface{})
	assert.Equal(t, "fill_rect", first["op"])
	args := first["args"].(map[string]interface{})
	assert.Equal(t, "background", args["layer"])
}

func TestJSONFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, NewJSONFormatter().Format(&buf, []Sheet{makeSheet(model.DailyLog{Date: "2024-03-02"})}))
	assert.Contains(t, buf.String(), `"segments": []`)
	assert.Contains(t, buf.String(), `"issues": []`)
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter().Format(&buf, []Sheet{sampleSheet()}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, []string{"Date", "Entry", "Status", "Row", "Start", "End", "Hours"}, records[0])
	assert.Equal(t, []string{"2024-03-01", "0", "on_duty_not_driving", "3", "0.00", "1.00", "1.00"}, records[1])
	assert.Equal(t, []string{"2024-03-01", "2", "sleeper_berth", "1", "22.00", "24.00", "2.00"}, records[3])
	assert.Equal(t, []string{"2024-03-01", "2", "sleeper_berth", "1", "0.00", "2.00", "2.00"}, records[4])
}

func TestSummaryFormatter(t *testing.T) {
	second := makeSheet(model.DailyLog{Date: "2024-03-02", TotalOffDutyHours: model.NewHours(24)})

	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter().Format(&buf, []Sheet{sampleSheet(), second}))
	out := buf.String()

	assert.Contains(t, out, "ELD Daily Log Summary")
	assert.Contains(t, out, "Date Range: 03/01/2024 to 03/02/2024")
	assert.Contains(t, out, "Logs: 2")
	assert.Contains(t, out, "Issues: 1")

	fields := map[string][]string{}
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) >= 3 && strings.HasSuffix(f[len(f)-3], ":") {
			fields[strings.Join(f[:len(f)-2], " ")] = f[len(f)-2:]
		}
	}
	assert.Equal(t, []string{"34.0h", "0.0h"}, fields["Off Duty:"])
	assert.Equal(t, []string{"0.0h", "4.0h"}, fields["Sleeper Berth:"])
	assert.Equal(t, []string{"11.0h", "11.0h"}, fields["Driving:"])
	assert.Equal(t, []string{"3.0h", "1.0h"}, fields["On Duty:"])
	assert.Equal(t, []string{"48.0h", "16.0h"}, fields["Total:"])
}

func TestSummaryFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter().Format(&buf, nil))
	assert.Contains(t, buf.String(), NoLogsMessage)
	assert.NotContains(t, buf.String(), "Date Range")
}

func TestSVGFormatter(t *testing.T) {
	var buf bytes.Buffer
	sheets := []Sheet{sampleSheet(), makeSheet(model.DailyLog{Date: "2024-03-02"})}
	require.NoError(t, NewSVGFormatter(grid.DefaultGeometry()).Format(&buf, sheets))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 2, strings.Count(out, "<g transform"))
	assert.Equal(t, 4, strings.Count(out, `class="segment"`)/2)
}

func TestXLSXFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXFormatter().Format(&buf, []Sheet{sampleSheet()}))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Logs", "Entries", "Segments"}, file.GetSheetList())

	logs, err := file.GetRows("Logs")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "Date", logs[0][0])
	assert.Equal(t, []string{"2024-03-01", "10", "0", "11", "3", "0", "4", "11", "1", "1"}, logs[1])

	entries, err := file.GetRows("Entries")
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, []string{"2024-03-01", "00:00", "01:00", "on duty_not_driving", "Chicago, IL", "Loading/Pickup"}, entries[1])

	segments, err := file.GetRows("Segments")
	require.NoError(t, err)
	assert.Len(t, segments, 5)
}
