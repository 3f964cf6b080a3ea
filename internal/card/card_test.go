package card

import (
	"errors"
	"strings"
	"testing"

	"trackdeck/internal/ident"
	"trackdeck/internal/services"
	"trackdeck/internal/track"
)

const testIdentifier = ident.Identifier("abcdefghijklmnopqrstuvwxyz234567")

func testComposer() *Composer {
	return &Composer{
		URLPrefix: "https://cards.example.com/",
		Extension: ".m4a",
		Emoji:     "🎸",
		Font:      "Montserrat",
	}
}

func testTrack() track.Track {
	return track.Track{
		SourcePath:  "tracks/take-on-me.flac",
		Title:       "Take On Me",
		Artist:      "a-ha",
		Year:        1985,
		ContentHash: "ff",
	}
}

func TestComposeBuildsScanTarget(t *testing.T) {
	c, err := testComposer().Compose(testTrack(), testIdentifier)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want := "https://cards.example.com/" + testIdentifier.String() + ".m4a"
	if c.Front.URL != want {
		t.Fatalf("url = %q, want %q", c.Front.URL, want)
	}
	if c.Front.QRPath == "" || c.Front.QRSize <= 0 {
		t.Fatalf("missing QR rendering: size=%f", c.Front.QRSize)
	}
	if c.Front.Emoji != "🎸" {
		t.Fatalf("emoji = %q", c.Front.Emoji)
	}
	if c.Back.Year != 1985 {
		t.Fatalf("year = %d", c.Back.Year)
	}
}

func TestComposeMissingTitleFails(t *testing.T) {
	tr := testTrack()
	tr.Title = ""
	_, err := testComposer().Compose(tr, testIdentifier)
	if !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}

func TestComposeMissingFontFails(t *testing.T) {
	comp := testComposer()
	comp.Font = "   "
	_, err := comp.Compose(testTrack(), testIdentifier)
	if !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}

func TestComposeRejectsUncleanPrefix(t *testing.T) {
	comp := testComposer()
	comp.URLPrefix = "https://cards.example.com/deck"
	_, err := comp.Compose(testTrack(), testIdentifier)
	if !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}

func TestComposeOversizedCodeFails(t *testing.T) {
	comp := testComposer()
	comp.MaxQRSize = 5 // far below any real code size
	_, err := comp.Compose(testTrack(), testIdentifier)
	if !errors.Is(err, services.ErrRender) {
		t.Fatalf("expected ErrRender for oversized code, got %v", err)
	}
}

func TestEncodeQRDeterministic(t *testing.T) {
	url := "https://cards.example.com/" + testIdentifier.String() + ".m4a"
	path1, size1, err := encodeQR(url)
	if err != nil {
		t.Fatal(err)
	}
	path2, size2, err := encodeQR(url)
	if err != nil {
		t.Fatal(err)
	}
	if path1 != path2 || size1 != size2 {
		t.Fatal("QR rendering not deterministic")
	}
	// A 62mm card face must hold the code for identifier-length URLs.
	if size1 <= 0 || size1 > 50 {
		t.Fatalf("unexpected code size %.2fmm", size1)
	}
	if !strings.HasPrefix(path1, "M") {
		t.Fatalf("path does not start with a move command: %q", path1[:8])
	}
}

func TestBreakLinesShortStaysSingle(t *testing.T) {
	got := BreakLines("Take On Me")
	if len(got) != 1 || got[0] != "Take On Me" {
		t.Fatalf("got %v", got)
	}
}

func TestBreakLinesBalancesLongText(t *testing.T) {
	got := BreakLines("The Sound of Silence Acoustic Version")
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %v", got)
	}
	joined := strings.Join(got, " ")
	if joined != "The Sound of Silence Acoustic Version" {
		t.Fatalf("lines lose content: %q", joined)
	}
	diff := len(got[0]) - len(got[1])
	if diff < 0 {
		diff = -diff
	}
	if diff > 8 {
		t.Fatalf("split badly unbalanced: %v", got)
	}
}

func TestBreakLinesSingleLongWord(t *testing.T) {
	s := "Supercalifragilisticexpialidocious"
	got := BreakLines(s)
	if len(got) != 1 || got[0] != s {
		t.Fatalf("got %v", got)
	}
}

func TestBreakLinesCountsRunesNotBytes(t *testing.T) {
	// 18 characters but 34 bytes: must stay on one line.
	s := "Сектор Газа Лирика"
	got := BreakLines(s)
	if len(got) != 1 || got[0] != s {
		t.Fatalf("got %v", got)
	}
}

func TestBreakLinesBalancesMultibyteText(t *testing.T) {
	got := BreakLines("Widescreen Vals Élégiaque")
	want := []string{"Widescreen", "Vals Élégiaque"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}
