package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/xuri/excelize/v2"
)

const (
	sheetLogs     = "Logs"
	sheetEntries  = "Entries"
	sheetSegments = "Segments"
)

// XLSXFormatter exports a batch as a workbook with one sheet each for logs,
// entries and drawn segments.
type XLSXFormatter struct{}

func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

type xlsxTable struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]interface{}
}

func (f *XLSXFormatter) Format(w io.Writer, sheets []Sheet) error {
	tables := []xlsxTable{
		{
			name: sheetLogs,
			headers: []string{
				"Date", "Off Duty", "Sleeper Berth", "Driving", "On Duty",
				"Drawn Off Duty", "Drawn Sleeper Berth", "Drawn Driving", "Drawn On Duty", "Issues",
			},
			widths: []float64{14, 10, 14, 10, 10, 16, 20, 15, 15, 8},
		},
		{
			name:    sheetEntries,
			headers: []string{"Date", "Start", "End", "Status", "Location", "Activity"},
			widths:  []float64{14, 8, 8, 22, 30, 30},
		},
		{
			name:    sheetSegments,
			headers: []string{"Date", "Entry", "Status", "Start Hour", "End Hour", "Hours"},
			widths:  []float64{14, 8, 22, 12, 12, 10},
		},
	}

	for _, s := range sheets {
		tables[0].rows = append(tables[0].rows, []interface{}{
			s.Log.Date,
			s.Recorded.OffDuty, s.Recorded.SleeperBerth, s.Recorded.Driving, s.Recorded.OnDuty,
			s.Drawn.OffDuty, s.Drawn.SleeperBerth, s.Drawn.Driving, s.Drawn.OnDuty,
			len(s.Issues),
		})
		for _, e := range s.Log.Entries {
			tables[1].rows = append(tables[1].rows, []interface{}{
				s.Log.Date,
				timeline.FormatClock(e.StartTime),
				timeline.FormatClock(e.EndTime),
				util.HumanizeStatus(e.Status),
				e.Location,
				e.Activity,
			})
		}
		for _, seg := range s.Segments {
			tables[2].rows = append(tables[2].rows, []interface{}{
				s.Log.Date, seg.Entry, seg.ColorKey, seg.StartHour, seg.EndHour, seg.Duration(),
			})
		}
	}

	file := excelize.NewFile()
	defer func() {
		if err := file.Close(); err != nil {
			util.LogDebugf("Failed to close workbook: %v", err)
		}
	}()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for _, table := range tables {
		if err := writeTable(file, table, headerStyle); err != nil {
			return err
		}
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if index, err := file.GetSheetIndex(sheetLogs); err == nil && index >= 0 {
		file.SetActiveSheet(index)
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(file *excelize.File, table xlsxTable, headerStyle int) error {
	if _, err := file.NewSheet(table.name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", table.name, err)
	}

	for col, header := range table.headers {
		if err := setCell(file, table.name, col+1, 1, header); err != nil {
			return err
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if col < len(table.widths) {
			if err := file.SetColWidth(table.name, name, name, table.widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(table.headers), 1)
	if err := file.SetCellStyle(table.name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for r, row := range table.rows {
		for c, value := range row {
			if err := setCell(file, table.name, c+1, r+2, value); err != nil {
				return err
			}
		}
	}

	if err := file.SetPanes(table.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}

func setCell(file *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}
