package layout

import (
	"fmt"
	"math"

	"trackdeck/internal/services"
)

// MirrorAxis selects how back-page cells mirror their front-page positions
// so double-sided printing aligns after the physical flip. The right choice
// depends on the printer's duplex mode, so it is configuration, not code.
type MirrorAxis string

const (
	// MirrorHorizontal flips columns: (r, c) -> (r, C-1-c). Matches
	// long-edge duplex on portrait pages.
	MirrorHorizontal MirrorAxis = "horizontal"
	// MirrorVertical flips rows: (r, c) -> (R-1-r, c). Matches short-edge
	// duplex.
	MirrorVertical MirrorAxis = "vertical"
	// MirrorNone keeps positions identical.
	MirrorNone MirrorAxis = "none"
)

// Geometry is the per-run page geometry, computed exactly once and shared
// by every page so a multi-page cut cannot drift. All units are mm.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	CardWidth  float64
	CardHeight float64

	Columns int
	Rows    int

	// TableWidth and TableHeight span the full card grid.
	TableWidth  float64
	TableHeight float64
	// OriginX and OriginY locate the grid's top-left corner on the page.
	OriginX float64
	OriginY float64
}

// NewGeometry computes the card grid for the given page and card dimensions.
// The cell count is the floor division of the usable area; a card that does
// not fit the usable page area at all is a fatal layout overflow, caught
// before any rendering work starts.
func NewGeometry(pageWidth, pageHeight, margin, cardWidth, cardHeight float64) (Geometry, error) {
	usableWidth := pageWidth - 2*margin
	usableHeight := pageHeight - 2*margin

	columns := int(math.Floor(usableWidth / cardWidth))
	rows := int(math.Floor(usableHeight / cardHeight))
	if columns < 1 || rows < 1 {
		return Geometry{}, services.Wrap(services.ErrLayout, "layout", "geometry",
			fmt.Sprintf("card %.1fx%.1fmm does not fit the %.1fx%.1fmm page with %.1fmm margins",
				cardWidth, cardHeight, pageWidth, pageHeight, margin), nil)
	}

	tableWidth := float64(columns) * cardWidth
	tableHeight := float64(rows) * cardHeight

	// Center the grid horizontally. Vertically it is top-aligned with the
	// same margin as the sides (capped at true centering) so the bottom
	// keeps room for the page footer.
	originX := (pageWidth - tableWidth) / 2
	originY := math.Min((pageHeight-tableHeight)/2, originX)

	return Geometry{
		PageWidth:   pageWidth,
		PageHeight:  pageHeight,
		Margin:      margin,
		CardWidth:   cardWidth,
		CardHeight:  cardHeight,
		Columns:     columns,
		Rows:        rows,
		TableWidth:  tableWidth,
		TableHeight: tableHeight,
		OriginX:     originX,
		OriginY:     originY,
	}, nil
}

// CellsPerPage returns the fixed number of card cells on every page.
func (g Geometry) CellsPerPage() int {
	return g.Columns * g.Rows
}

// CellOrigin returns the top-left corner of the cell at (row, column).
func (g Geometry) CellOrigin(row, column int) (x, y float64) {
	return g.OriginX + float64(column)*g.CardWidth,
		g.OriginY + float64(row)*g.CardHeight
}

// Mirror maps a front-page cell position to its back-page position for the
// given axis. It is a pure coordinate transform with no dependency on draw
// order; getting it wrong misaligns every deck, so it lives in one place.
func (g Geometry) Mirror(row, column int, axis MirrorAxis) (int, int) {
	switch axis {
	case MirrorHorizontal:
		return row, g.Columns - 1 - column
	case MirrorVertical:
		return g.Rows - 1 - row, column
	default:
		return row, column
	}
}
