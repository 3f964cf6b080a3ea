package layout

import (
	"strings"
	"testing"

	"trackdeck/internal/card"
)

func renderPair(t *testing.T, cards []card.Card, style Style) (string, string) {
	t.Helper()
	geom := defaultGeometry(t)
	pages := Paginate(cards, geom, MirrorHorizontal)
	if len(pages) < 2 {
		t.Fatalf("expected at least one page pair, got %d pages", len(pages))
	}
	return RenderSVG(pages[0], geom, style), RenderSVG(pages[1], geom, style)
}

func TestRenderSVGDocumentShape(t *testing.T) {
	front, back := renderPair(t, makeCards(3), Style{Font: "Inter"})

	for _, doc := range []string{front, back} {
		if !strings.HasPrefix(doc, "<svg") || !strings.HasSuffix(strings.TrimSpace(doc), "</svg>") {
			t.Fatal("document is not a complete svg element")
		}
		if !strings.Contains(doc, `viewBox="0 0 210 297"`) {
			t.Fatal("missing A4 viewBox")
		}
		if !strings.Contains(doc, `font-family: "Inter"`) {
			t.Fatal("style block missing configured font")
		}
	}
	if !strings.Contains(front, `class="footer">1a<`) {
		t.Fatal("front footer missing")
	}
	if !strings.Contains(back, `class="footer">1b<`) {
		t.Fatal("back footer missing")
	}
}

func TestRenderSVGSides(t *testing.T) {
	cards := makeCards(2)
	for i := range cards {
		cards[i].Front.QRPath = "M0 0h8v8h-8z"
		cards[i].Front.QRSize = 20
		cards[i].Front.Emoji = "🎸"
		cards[i].Back.Artist = "Artist"
		cards[i].Back.TitleLines = []string{cards[i].Back.Title}
		cards[i].Back.ArtistLines = []string{"Artist"}
	}
	front, back := renderPair(t, cards, Style{Font: "Inter"})

	if strings.Count(front, "M0 0h8v8h-8z") != 2 {
		t.Fatal("front should carry one code path per card")
	}
	if !strings.Contains(front, `class="emoji"`) || strings.Contains(back, `class="emoji"`) {
		t.Fatal("emoji belongs on the front side only")
	}
	if !strings.Contains(back, `class="year">1990<`) || strings.Contains(front, `class="year"`) {
		t.Fatal("year belongs on the back side only")
	}
	if !strings.Contains(back, `class="title">Track 0<`) {
		t.Fatal("back missing title text")
	}
}

func TestRenderSVGCutGuideToggles(t *testing.T) {
	cards := makeCards(1)

	bare, _ := renderPair(t, cards, Style{Font: "Inter"})
	grid, _ := renderPair(t, cards, Style{Font: "Inter", Grid: true})
	marks, _ := renderPair(t, cards, Style{Font: "Inter", CropMarks: true})

	if strings.Contains(bare, "<line") {
		t.Fatal("no guide lines expected with both toggles off")
	}
	// 3x4 grid: 2 internal vertical + 3 internal horizontal lines plus the
	// outer rect.
	if got := strings.Count(grid, "<line"); got != 5 {
		t.Fatalf("grid lines = %d, want 5", got)
	}
	if !strings.Contains(grid, `fill="none"`) {
		t.Fatal("grid outer rect missing")
	}
	// Crop marks: 2 per column boundary (4 boundaries) + 2 per row boundary
	// (5 boundaries).
	if got := strings.Count(marks, "<line"); got != 18 {
		t.Fatalf("crop mark lines = %d, want 18", got)
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	cards := makeCards(1)
	cards[0].Back.TitleLines = []string{`Bed & <Breakfast>`}
	cards[0].Back.ArtistLines = []string{"Artist"}
	_, back := renderPair(t, cards, Style{Font: "Inter"})

	if !strings.Contains(back, "Bed &amp; &lt;Breakfast&gt;") {
		t.Fatal("title text not escaped")
	}
	if strings.Contains(back, "<Breakfast>") {
		t.Fatal("raw markup leaked into the document")
	}
}

func TestRenderSVGSkipsBlankCells(t *testing.T) {
	geom := defaultGeometry(t)
	page := Page{Number: 1, Side: SideBack, Footer: "1b", Cells: []Cell{{Card: nil, Row: 0, Column: 0}}}
	doc := RenderSVG(page, geom, Style{Font: "Inter"})
	if strings.Contains(doc, `class="year"`) {
		t.Fatal("blank cell rendered card content")
	}
}
