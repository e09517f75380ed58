package grid

import (
	"fmt"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// HoursPerDay is the width of the time axis.
const HoursPerDay = 24

// Geometry is the unit layout of a log sheet. Units are abstract; the SVG
// backend treats them as pixels.
type Geometry struct {
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	MarginLeft   float64 `json:"margin_left"`
	MarginTop    float64 `json:"margin_top"`
	GridWidth    float64 `json:"grid_width"`
	GridHeight   float64 `json:"grid_height"`
	BarPadding   float64 `json:"bar_padding"`
}

// DefaultGeometry is the 1200x300 sheet with room for row captions on the left.
func DefaultGeometry() Geometry {
	return Geometry{
		CanvasWidth:  1200,
		CanvasHeight: 300,
		MarginLeft:   120,
		MarginTop:    40,
		GridWidth:    1200 - 120 - 40,
		GridHeight:   200,
		BarPadding:   5,
	}
}

// HourWidth is the horizontal extent of one hour.
func (g Geometry) HourWidth() float64 {
	return g.GridWidth / HoursPerDay
}

// RowHeight is the vertical extent of one category row.
func (g Geometry) RowHeight() float64 {
	return g.GridHeight / model.RowCount
}

// Validate rejects layouts that cannot hold a grid.
func (g Geometry) Validate() error {
	if g.GridWidth <= 0 || g.GridHeight <= 0 {
		return fmt.Errorf("grid size must be positive, got %gx%g", g.GridWidth, g.GridHeight)
	}
	if g.CanvasWidth <= 0 || g.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive, got %gx%g", g.CanvasWidth, g.CanvasHeight)
	}
	if g.MarginLeft < 0 || g.MarginTop < 0 {
		return fmt.Errorf("margins must not be negative")
	}
	if g.BarPadding < 0 || 2*g.BarPadding >= g.RowHeight() {
		return fmt.Errorf("bar padding %g does not fit row height %g", g.BarPadding, g.RowHeight())
	}
	return nil
}
