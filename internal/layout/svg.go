package layout

import (
	"fmt"
	"html"
	"strings"
)

// Style carries the rendering options shared by all pages of a run.
type Style struct {
	Font      string
	Grid      bool
	CropMarks bool
}

const (
	// cropMarkFar and cropMarkNear bound the crop marks: they extend from
	// 5mm to 1mm outside the table edge, leaving a gap so the blade mark
	// never touches a card face.
	cropMarkFar  = 5.0
	cropMarkNear = 1.0

	textLineHeight = 6.0
)

// RenderSVG renders one page as a standalone SVG document. Units map to
// millimeters via the viewBox.
func RenderSVG(page Page, geom Geometry, style Style) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg version="1.1" width="%smm" height="%smm" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`+"\n",
		num(geom.PageWidth), num(geom.PageHeight), num(geom.PageWidth), num(geom.PageHeight))
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%s" height="%s" fill="white"/>`+"\n",
		num(geom.PageWidth), num(geom.PageHeight))

	fmt.Fprintf(&b, `<style>
text { font-family: %q; }
.year { font-size: 18px; font-weight: 900; }
.title, .artist, .footer { font-size: 5.2px; font-weight: 400; }
.title { font-style: italic; }
.emoji { font-size: 8px; }
rect, line { stroke: black; stroke-width: 0.2; }
</style>
`, style.Font)

	renderCutGuides(&b, geom, style)

	for _, cell := range page.Cells {
		if cell.Card == nil {
			continue
		}
		switch page.Side {
		case SideFront:
			renderFrontCell(&b, geom, cell)
		case SideBack:
			renderBackCell(&b, geom, cell)
		}
	}

	// Page footer, bottom-right, outside the grid.
	fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="end" class="footer">%s</text>`+"\n",
		num(geom.PageWidth-geom.OriginX), num(geom.PageHeight-geom.OriginX), html.EscapeString(page.Footer))

	b.WriteString("</svg>\n")
	return b.String()
}

// renderCutGuides draws the optional grid lines and crop marks. Both derive
// from the same cell boundaries, so a cutter can mix and match them.
func renderCutGuides(b *strings.Builder, geom Geometry, style Style) {
	left := geom.OriginX
	top := geom.OriginY
	right := geom.OriginX + geom.TableWidth
	bottom := geom.OriginY + geom.TableHeight

	if style.Grid {
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke-linejoin="miter"/>`+"\n",
			num(left), num(top), num(geom.TableWidth), num(geom.TableHeight))
	}

	for column := 0; column <= geom.Columns; column++ {
		x := left + float64(column)*geom.CardWidth
		if style.Grid && column > 0 && column < geom.Columns {
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
				num(x), num(top), num(x), num(bottom))
		}
		if style.CropMarks {
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
				num(x), num(top-cropMarkFar), num(x), num(top-cropMarkNear))
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
				num(x), num(bottom+cropMarkNear), num(x), num(bottom+cropMarkFar))
		}
	}

	for row := 0; row <= geom.Rows; row++ {
		y := top + float64(row)*geom.CardHeight
		if style.Grid && row > 0 && row < geom.Rows {
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
				num(left), num(y), num(right), num(y))
		}
		if style.CropMarks {
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
				num(left-cropMarkFar), num(y), num(left-cropMarkNear), num(y))
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
				num(right+cropMarkNear), num(y), num(right+cropMarkFar), num(y))
		}
	}
}

func renderFrontCell(b *strings.Builder, geom Geometry, cell Cell) {
	cellX, cellY := geom.CellOrigin(cell.Row, cell.Column)
	front := cell.Card.Front

	// Center the code in the cell, nudged up to leave room for the emoji.
	x := cellX + (geom.CardWidth-front.QRSize)/2
	y := cellY + (geom.CardHeight-front.QRSize)/2 - 2
	fmt.Fprintf(b, `<g transform="translate(%s, %s)"><path d="%s" fill="black"/></g>`+"\n",
		num(x), num(y), front.QRPath)

	if front.Emoji != "" {
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" class="emoji">%s</text>`+"\n",
			num(cellX+geom.CardWidth/2), num(cellY+geom.CardHeight-4), html.EscapeString(front.Emoji))
	}
}

func renderBackCell(b *strings.Builder, geom Geometry, cell Cell) {
	cellX, cellY := geom.CellOrigin(cell.Row, cell.Column)
	back := cell.Card.Back

	centerX := cellX + geom.CardWidth/2
	centerY := cellY + geom.CardHeight/2

	fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" class="year">%d</text>`+"\n",
		num(centerX), num(centerY+6.5), back.Year)

	renderTextLines(b, centerX, centerY-19, back.ArtistLines, "artist")
	renderTextLines(b, centerX, centerY+18, back.TitleLines, "title")
}

// renderTextLines centers one or two pre-broken lines around y.
func renderTextLines(b *strings.Builder, x, y float64, lines []string, class string) {
	blockHeight := textLineHeight * float64(len(lines))
	for i, line := range lines {
		dy := textLineHeight*float64(1+i) - blockHeight/2
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" class="%s">%s</text>`+"\n",
			num(x), num(y+dy), class, html.EscapeString(line))
	}
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
