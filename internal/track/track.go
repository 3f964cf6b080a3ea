package track

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"trackdeck/internal/services"
)

// Track is the immutable in-memory representation of one selected audio
// work. It is constructed once during ingestion and never mutated; the
// source file stays owned by the library directory.
type Track struct {
	SourcePath string
	Title      string
	Artist     string
	Album      string
	Year       int

	// ContentHash is a stable hex digest of the raw audio stream. For FLAC
	// it is the encoder-embedded audio MD5, for MP3 a SHA-256 over the audio
	// bytes outside the tag blocks. Editing tags does not change it.
	ContentHash string

	CoverPresent bool
}

// Decade returns the decade bucket the track falls into.
func (t Track) Decade() int {
	return (t.Year / 10) * 10
}

// Validate checks the required display fields.
func (t Track) Validate() error {
	missing := make([]string, 0, 2)
	if strings.TrimSpace(t.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(t.Artist) == "" {
		missing = append(missing, "artist")
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrValidation, "track", "validate",
			fmt.Sprintf("%s: missing %s", t.SourcePath, strings.Join(missing, " and ")), nil)
	}
	if t.ContentHash == "" {
		return services.Wrap(services.ErrValidation, "track", "validate",
			fmt.Sprintf("%s: missing content hash", t.SourcePath), nil)
	}
	return nil
}

// Sort orders tracks by year, then artist, then title. Deck pages follow
// this order so cards from the same era cluster on the same sheets.
func Sort(tracks []Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		a, b := tracks[i], tracks[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		return a.Title < b.Title
	})
}

// ParseYear extracts a four digit release year from an ORIGINALDATE or DATE
// tag value. Accepts bare years ("1987") and full dates ("1987-06-30").
func ParseYear(value string) (int, error) {
	value = strings.TrimSpace(value)
	if len(value) < 4 {
		return 0, fmt.Errorf("date %q too short for a year", value)
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil {
		return 0, fmt.Errorf("date %q does not start with a year: %w", value, err)
	}
	if year < 1000 || year > 9999 {
		return 0, fmt.Errorf("year %d out of range", year)
	}
	return year, nil
}
