package card

import (
	"fmt"
	"strings"

	"trackdeck/internal/ident"
	"trackdeck/internal/services"
	"trackdeck/internal/track"
)

// Card is the printable unit for one track: a scannable front and a text
// back. All dimensions are in millimeters.
type Card struct {
	Front Front
	Back  Back
}

// Front carries the scannable code and the decorative emoji.
type Front struct {
	// URL is the scan target: url_prefix + identifier + audio extension.
	URL string
	// QRPath is the code rendered as a single SVG path, one unit per mm.
	QRPath string
	// QRSize is the rendered side length of the code in mm.
	QRSize float64
	Emoji  string
}

// Back carries the reveal text, pre-broken into display lines.
type Back struct {
	Title       string
	Artist      string
	Year        int
	TitleLines  []string
	ArtistLines []string
}

// Composer produces Cards from tracks and their identifiers. One composer
// is shared by a whole run, so every card uses the same options.
type Composer struct {
	// URLPrefix must end in "/" so it concatenates cleanly with the
	// identifier path segment.
	URLPrefix string
	// Extension is the public audio file extension, including the dot.
	Extension string
	// Emoji decorates card fronts under the code.
	Emoji string
	// Font is the display font family; composition fails without one since
	// the back side cannot render.
	Font string
	// MaxQRSize bounds the rendered code so it stays inside the card face.
	// Zero means unbounded.
	MaxQRSize float64
}

// Compose builds the card for one track.
func (c *Composer) Compose(t track.Track, id ident.Identifier) (Card, error) {
	if strings.TrimSpace(t.Title) == "" || strings.TrimSpace(t.Artist) == "" {
		return Card{}, services.Wrap(services.ErrRender, "card", "compose",
			fmt.Sprintf("%s: missing title or artist", t.SourcePath), nil)
	}
	if strings.TrimSpace(c.Font) == "" {
		return Card{}, services.Wrap(services.ErrRender, "card", "compose",
			"no display font configured", nil)
	}
	if c.URLPrefix == "" || !strings.HasSuffix(c.URLPrefix, "/") {
		return Card{}, services.Wrap(services.ErrRender, "card", "compose",
			fmt.Sprintf("url prefix %q does not end in a path separator", c.URLPrefix), nil)
	}

	url := c.URLPrefix + id.String() + c.Extension
	qrPath, qrSize, err := encodeQR(url)
	if err != nil {
		return Card{}, services.Wrap(services.ErrRender, "card", "compose",
			fmt.Sprintf("%s: encode scan code", t.SourcePath), err)
	}
	if c.MaxQRSize > 0 && qrSize > c.MaxQRSize {
		return Card{}, services.Wrap(services.ErrRender, "card", "compose",
			fmt.Sprintf("%s: scan code %.1fmm exceeds card face %.1fmm; shorten the url prefix",
				t.SourcePath, qrSize, c.MaxQRSize), nil)
	}

	return Card{
		Front: Front{
			URL:    url,
			QRPath: qrPath,
			QRSize: qrSize,
			Emoji:  c.Emoji,
		},
		Back: Back{
			Title:       t.Title,
			Artist:      t.Artist,
			Year:        t.Year,
			TitleLines:  BreakLines(t.Title),
			ArtistLines: BreakLines(t.Artist),
		},
	}, nil
}
