package metaflac

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trackdeck/internal/services"
)

// stubBinary writes an executable shell script to a temp dir, prepends the
// dir to PATH, and returns the script name.
func stubBinary(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "metaflac")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return "metaflac"
}

func TestInspectParsesTagsAndMD5(t *testing.T) {
	bin := stubBinary(t, `#!/bin/sh
case "$1" in
--show-md5sum)
  echo "0123456789abcdef0123456789abcdef"
  echo "TITLE=Old Title"
  echo "title=Take On Me"
  echo "ARTIST=a-ha"
  echo "DATE=1985-10-19"
  ;;
--list)
  echo "METADATA block #3"
  echo "  type: 6 (PICTURE)"
  ;;
esac
exit 0
`)

	client := New(bin, 5*time.Second)
	result, err := client.Inspect(context.Background(), "song.flac")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.AudioMD5 != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("md5 = %q", result.AudioMD5)
	}
	// Repeated tag keeps the last value, key comparison is case-insensitive.
	if result.Tags["TITLE"] != "Take On Me" {
		t.Fatalf("TITLE = %q", result.Tags["TITLE"])
	}
	if result.Tags["ARTIST"] != "a-ha" {
		t.Fatalf("ARTIST = %q", result.Tags["ARTIST"])
	}
	if !result.HasPicture {
		t.Fatal("expected HasPicture")
	}
}

func TestInspectRejectsZeroMD5(t *testing.T) {
	bin := stubBinary(t, `#!/bin/sh
echo "00000000000000000000000000000000"
exit 0
`)
	client := New(bin, 5*time.Second)
	_, err := client.Inspect(context.Background(), "song.flac")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestInspectToolFailure(t *testing.T) {
	bin := stubBinary(t, `#!/bin/sh
echo "song.flac: ERROR, not a FLAC file" >&2
exit 1
`)
	client := New(bin, 5*time.Second)
	_, err := client.Inspect(context.Background(), "song.flac")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestInspectTimeout(t *testing.T) {
	bin := stubBinary(t, `#!/bin/sh
sleep 5
`)
	client := New(bin, 50*time.Millisecond)
	_, err := client.Inspect(context.Background(), "song.flac")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestInspectEmptyPath(t *testing.T) {
	client := New("metaflac", time.Second)
	if _, err := client.Inspect(context.Background(), ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
