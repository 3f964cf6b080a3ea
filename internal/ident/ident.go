package ident

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"strconv"
	"strings"

	"trackdeck/internal/services"
	"trackdeck/internal/track"
)

// Identifiers are 32 characters of lowercase base32 (a-z, 2-7), carrying 160
// bits. That comfortably clears the 128-bit target for enumeration
// resistance and says nothing about title or artist.
const (
	// Length is the fixed identifier length in characters.
	Length = 32
	// rawBytes is the number of digest bytes encoded into an identifier.
	rawBytes = 20
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Identifier is the public-facing name for a track's transcoded audio.
type Identifier string

// String returns the identifier value.
func (id Identifier) String() string { return string(id) }

// Valid reports whether the value has the fixed length and character set.
func (id Identifier) Valid() bool {
	if len(id) != Length {
		return false
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z' || r >= '2' && r <= '7') {
			return false
		}
	}
	return true
}

// Deriver maps Tracks to asset identifiers.
type Deriver struct {
	random bool
}

// New returns a deriver. With random=false identifiers are a pure function
// of audio content and metadata, stable across reruns of the same library so
// previously printed cards keep resolving. With random=true each run draws
// fresh identifiers, severing any link to earlier deployments.
func New(random bool) *Deriver {
	return &Deriver{random: random}
}

// Derive computes the identifier for one track. The deterministic mode
// hashes the track's content hash together with its metadata tuple; the
// source path and file timestamps never participate, so re-encoding the same
// source yields the same identifier.
func (d *Deriver) Derive(t track.Track) (Identifier, error) {
	if d.random {
		buf := make([]byte, rawBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", services.Wrap(services.ErrConfiguration, "ident", "derive", "read random source", err)
		}
		return encode(buf), nil
	}

	digest := sha256.New()
	// Field separators prevent ambiguity between adjacent fields.
	for _, field := range []string{
		t.ContentHash,
		t.Title,
		t.Artist,
		t.Album,
		strconv.Itoa(t.Year),
	} {
		digest.Write([]byte(field))
		digest.Write([]byte{0})
	}
	return encode(digest.Sum(nil)[:rawBytes]), nil
}

func encode(raw []byte) Identifier {
	return Identifier(strings.ToLower(encoding.EncodeToString(raw)))
}

// CheckCollisions inserts every identifier into one set and reports the
// first duplicate. It runs as a sequential reduction after all per-track
// derivation has finished, so parallel workers never share mutable state.
// A collision is fatal: overwriting an asset would silently fuse two cards.
func CheckCollisions(tracks []track.Track, ids []Identifier) error {
	if len(tracks) != len(ids) {
		return services.Wrap(services.ErrCollision, "ident", "check",
			fmt.Sprintf("identifier count %d does not match track count %d", len(ids), len(tracks)), nil)
	}
	seen := make(map[Identifier]int, len(ids))
	for i, id := range ids {
		if prev, ok := seen[id]; ok {
			return services.Wrap(services.ErrCollision, "ident", "check",
				fmt.Sprintf("%q and %q both map to %s",
					tracks[prev].SourcePath, tracks[i].SourcePath, id), nil)
		}
		seen[id] = i
	}
	return nil
}
