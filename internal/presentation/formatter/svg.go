package formatter

import (
	"io"

	"github.com/penwyp/go-eld-log/internal/core/grid"
	"github.com/penwyp/go-eld-log/internal/presentation/canvas"
)

// SVGFormatter writes all sheets into one SVG document, stacked top to bottom.
type SVGFormatter struct {
	geometry grid.Geometry
}

func NewSVGFormatter(g grid.Geometry) *SVGFormatter {
	return &SVGFormatter{geometry: g}
}

func (f *SVGFormatter) Format(w io.Writer, sheets []Sheet) error {
	pages := make([][]grid.Command, 0, len(sheets))
	for _, sheet := range sheets {
		pages = append(pages, sheet.Commands)
	}
	return canvas.RenderSVGPages(w, f.geometry, pages)
}
