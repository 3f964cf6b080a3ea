package layout

import (
	"fmt"

	"trackdeck/internal/card"
)

// Side distinguishes the two faces of a printed sheet.
type Side string

const (
	// SideFront holds the scannable codes.
	SideFront Side = "front"
	// SideBack holds the reveal text.
	SideBack Side = "back"
)

// Cell places one card at a grid position. Cards may be nil on the last
// page pair: unused cells stay blank rather than disappearing, so the grid
// remains rectangular and every sheet cuts identically.
type Cell struct {
	Card   *card.Card
	Row    int
	Column int
}

// Page is one printable sheet: a fixed grid of cells plus a footer label.
type Page struct {
	Number int
	Side   Side
	Footer string
	Cells  []Cell
}

// Paginate packs cards into front/back page pairs. Each front page is
// immediately followed by its back page; back cells are mirrored along the
// configured axis so a duplex flip aligns both faces of every card.
func Paginate(cards []card.Card, geom Geometry, axis MirrorAxis) []Page {
	perPage := geom.CellsPerPage()
	pages := make([]Page, 0, 2*((len(cards)+perPage-1)/perPage))

	for start := 0; start < len(cards); start += perPage {
		number := start/perPage + 1
		chunk := cards[start:min(start+perPage, len(cards))]

		front := Page{
			Number: number,
			Side:   SideFront,
			Footer: fmt.Sprintf("%da", number),
			Cells:  make([]Cell, 0, perPage),
		}
		back := Page{
			Number: number,
			Side:   SideBack,
			Footer: fmt.Sprintf("%db", number),
			Cells:  make([]Cell, 0, perPage),
		}

		for i := 0; i < perPage; i++ {
			var c *card.Card
			if i < len(chunk) {
				c = &chunk[i]
			}
			row := i / geom.Columns
			column := i % geom.Columns
			front.Cells = append(front.Cells, Cell{Card: c, Row: row, Column: column})

			backRow, backColumn := geom.Mirror(row, column, axis)
			back.Cells = append(back.Cells, Cell{Card: c, Row: backRow, Column: backColumn})
		}

		pages = append(pages, front, back)
	}

	return pages
}
