package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrCollision, "ident", "reduce", "duplicate identifier", nil)
	if !errors.Is(err, ErrCollision) {
		t.Fatalf("expected ErrCollision, got %v", err)
	}
	if got := Classify(err); got != ErrCollision {
		t.Fatalf("Classify = %v, want ErrCollision", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "ffmpeg", "transcode", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToExternalTool(t *testing.T) {
	err := Wrap(nil, "renderer", "convert", "no marker", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool default, got %v", err)
	}
}

func TestClassifyUnknown(t *testing.T) {
	if got := Classify(errors.New("plain")); got != nil {
		t.Fatalf("Classify(plain) = %v, want nil", got)
	}
}

func TestWrapDetailJoinsParts(t *testing.T) {
	err := Wrap(ErrValidation, "track", "load", "missing TITLE tag", nil)
	want := "validation error: track: load: missing TITLE tag"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}
