package track

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"trackdeck/internal/services"
	"trackdeck/internal/services/metaflac"
)

// Loader builds Tracks from a library directory of tagged audio files.
type Loader struct {
	Metaflac *metaflac.Client
	Logger   *slog.Logger
}

// LoadDir loads every supported audio file in dir, sorted into deck order.
// An empty directory is not an error; an unreadable or untagged file is.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "track", "scan",
			fmt.Sprintf("read track directory %q", dir), err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".flac", ".mp3":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	tracks := make([]Track, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := l.Load(ctx, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}

	Sort(tracks)
	if l.Logger != nil {
		l.Logger.Info("loaded track library", slog.String("dir", dir), slog.Int("tracks", len(tracks)))
	}
	return tracks, nil
}

// Load builds one Track from a source file.
func (l *Loader) Load(ctx context.Context, path string) (Track, error) {
	var (
		tags        map[string]string
		contentHash string
		hasPicture  bool
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		result, err := l.Metaflac.Inspect(ctx, path)
		if err != nil {
			return Track{}, err
		}
		tags, contentHash, hasPicture = result.Tags, result.AudioMD5, result.HasPicture
	case ".mp3":
		result, err := inspectMP3(path)
		if err != nil {
			return Track{}, services.Wrap(services.ErrValidation, "track", "load",
				path, err)
		}
		tags, contentHash, hasPicture = result.tags, result.contentHash, result.hasPicture
	default:
		return Track{}, services.Wrap(services.ErrValidation, "track", "load",
			fmt.Sprintf("%s: unsupported audio format", path), nil)
	}

	return FromTags(path, tags, contentHash, hasPicture)
}

// FromTags assembles and validates a Track from uppercased metadata tags.
func FromTags(path string, tags map[string]string, contentHash string, hasPicture bool) (Track, error) {
	date, ok := tags["ORIGINALDATE"]
	if !ok {
		date = tags["DATE"]
	}
	if strings.TrimSpace(date) == "" {
		return Track{}, services.Wrap(services.ErrValidation, "track", "load",
			fmt.Sprintf("%s: no ORIGINALDATE or DATE tag present", path), nil)
	}
	year, err := ParseYear(date)
	if err != nil {
		return Track{}, services.Wrap(services.ErrValidation, "track", "load",
			path, err)
	}

	t := Track{
		SourcePath:   path,
		Title:        tags["TITLE"],
		Artist:       tags["ARTIST"],
		Album:        tags["ALBUM"],
		Year:         year,
		ContentHash:  contentHash,
		CoverPresent: hasPicture,
	}
	if err := t.Validate(); err != nil {
		return Track{}, err
	}
	return t, nil
}
