package track

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"trackdeck/internal/services"
	"trackdeck/internal/testsupport"
)

func testLoader() *Loader {
	return &Loader{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestFromTagsPrefersOriginalDate(t *testing.T) {
	got, err := FromTags("song.flac", map[string]string{
		"TITLE":        "Hurt",
		"ARTIST":       "Johnny Cash",
		"DATE":         "2002-11-04",
		"ORIGINALDATE": "1995-02-14",
	}, "hash", false)
	if err != nil {
		t.Fatalf("FromTags: %v", err)
	}
	if got.Year != 1995 {
		t.Fatalf("year = %d, want 1995 from ORIGINALDATE", got.Year)
	}
}

func TestFromTagsRequiresDate(t *testing.T) {
	_, err := FromTags("song.flac", map[string]string{
		"TITLE":  "Hurt",
		"ARTIST": "Johnny Cash",
	}, "hash", false)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFromTagsRequiresTitleAndArtist(t *testing.T) {
	_, err := FromTags("song.flac", map[string]string{
		"ARTIST": "Johnny Cash",
		"DATE":   "2002",
	}, "hash", false)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLoadDirSortsIntoDeckOrder(t *testing.T) {
	dir := t.TempDir()
	writeMP3(t, dir, "zz.mp3", []byte("audio payload a"), "B Side", "Zeta", "1995")
	writeMP3(t, dir, "aa.mp3", []byte("audio payload b"), "A Side", "Alpha", "2010")
	writeMP3(t, dir, "mm.mp3", []byte("audio payload c"), "M Side", "Mu", "1987")
	// Non-audio entries are skipped.
	testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), 16)

	tracks, err := testLoader().LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("loaded %d tracks, want 3", len(tracks))
	}
	// Deck order is by year, not by filename.
	years := []int{tracks[0].Year, tracks[1].Year, tracks[2].Year}
	if years[0] != 1987 || years[1] != 1995 || years[2] != 2010 {
		t.Fatalf("years = %v", years)
	}
}

func TestLoadDirEmptyIsNotAnError(t *testing.T) {
	tracks, err := testLoader().LoadDir(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("loaded %d tracks from empty dir", len(tracks))
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	_, err := testLoader().LoadDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLoadRejectsUntaggedFile(t *testing.T) {
	dir := t.TempDir()
	writeMP3(t, dir, "untitled.mp3", []byte("audio payload"), "", "", "1990")

	_, err := testLoader().LoadDir(context.Background(), dir)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
