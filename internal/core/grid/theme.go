package grid

import "github.com/penwyp/go-eld-log/internal/core/model"

// Theme holds colours and fonts of everything the renderer emits.
type Theme struct {
	Background     string
	HourLine       string
	HourLineWidth  float64
	RowLine        string
	RowLineWidth   float64
	Label          string
	HourFont       string
	RowFont        string
	Border         string
	BorderWidth    float64
	BarStrokeWidth float64
	Palette        map[string]string
}

// DefaultPalette maps colour keys to the sheet colours.
func DefaultPalette() map[string]string {
	return map[string]string{
		model.StatusOffDuty:          "#4CAF50",
		model.StatusSleeperBerth:     "#2196F3",
		model.StatusDriving:          "#FF9800",
		model.StatusOnDutyNotDriving: "#F44336",
		model.StatusUnknown:          "#999999",
	}
}

func DefaultTheme() Theme {
	return Theme{
		Background:     "#f5f5f5",
		HourLine:       "#cccccc",
		HourLineWidth:  0.5,
		RowLine:        "#666666",
		RowLineWidth:   1,
		Label:          "#333333",
		HourFont:       "10px Arial",
		RowFont:        "bold 11px Arial",
		Border:         "#333333",
		BorderWidth:    2,
		BarStrokeWidth: 1,
		Palette:        DefaultPalette(),
	}
}

// Color resolves a colour key, falling back to the unknown colour.
func (t Theme) Color(key string) string {
	if c, ok := t.Palette[key]; ok {
		return c
	}
	if c, ok := t.Palette[model.StatusUnknown]; ok {
		return c
	}
	return DefaultPalette()[model.StatusUnknown]
}
