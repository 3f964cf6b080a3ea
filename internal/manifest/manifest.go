// Package manifest produces the web bundle: the index.json answer key, the
// localized player page, and the directory layout the static host serves.
package manifest

import (
	"encoding/json"
	"fmt"

	"trackdeck/internal/fileutil"
	"trackdeck/internal/ident"
	"trackdeck/internal/services"
	"trackdeck/internal/track"
)

// Entry is the answer-key record for one track, keyed by its identifier in
// the manifest. The identifier never appears inside the entry itself.
type Entry struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Year     int    `json:"year"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Cover    string `json:"cover,omitempty"`
}

// Options configure how entries reference the published audio.
type Options struct {
	// URLPrefix is the normalized base URL, always ending in "/".
	URLPrefix string
	// Extension is the published audio extension including the dot.
	Extension string
}

// Build assembles the manifest for tracks and their identifiers. Both slices
// must be index-aligned.
func Build(tracks []track.Track, ids []ident.Identifier, opts Options) (map[string]Entry, error) {
	if len(tracks) != len(ids) {
		return nil, services.Wrap(services.ErrValidation, "manifest", "build",
			fmt.Sprintf("%d tracks but %d identifiers", len(tracks), len(ids)), nil)
	}

	entries := make(map[string]Entry, len(tracks))
	for i, t := range tracks {
		id := string(ids[i])
		entry := Entry{
			Title:    t.Title,
			Artist:   t.Artist,
			Year:     t.Year,
			URL:      opts.URLPrefix + id + opts.Extension,
			Filename: id + opts.Extension,
		}
		if t.CoverPresent {
			entry.Cover = "covers/" + id + ".jpg"
		}
		entries[id] = entry
	}
	return entries, nil
}

// Write stores the manifest at path. Keys come out sorted, so reruns with
// the same library produce byte-identical files.
func Write(path string, entries map[string]Entry) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return services.Wrap(services.ErrRender, "manifest", "write", "encode manifest", err)
	}
	if err := fileutil.WriteAtomic(path, append(data, '\n'), 0o644); err != nil {
		return services.Wrap(services.ErrRender, "manifest", "write", path, err)
	}
	return nil
}
