package track

import (
	"errors"
	"testing"

	"trackdeck/internal/services"
)

func TestParseYear(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1985-10-19", 1985, false},
		{"1985", 1985, false},
		{" 2005 ", 2005, false},
		{"19", 0, true},
		{"abcd-01-01", 0, true},
		{"", 0, true},
		{"0099", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseYear(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseYear(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseYear(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDecade(t *testing.T) {
	for year, want := range map[int]int{1985: 1980, 1990: 1990, 2009: 2000, 2015: 2010} {
		if got := (Track{Year: year}).Decade(); got != want {
			t.Errorf("Decade(%d) = %d, want %d", year, got, want)
		}
	}
}

func TestValidateMissingFields(t *testing.T) {
	tr := Track{SourcePath: "x.flac", Artist: "a-ha", ContentHash: "ff"}
	err := tr.Validate()
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	tr = Track{SourcePath: "x.flac", Title: "Take On Me", Artist: "a-ha", ContentHash: "ff"}
	if err := tr.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSortOrdersByYearThenArtistThenTitle(t *testing.T) {
	tracks := []Track{
		{Year: 2005, Artist: "B", Title: "x"},
		{Year: 1990, Artist: "Z", Title: "a"},
		{Year: 1990, Artist: "A", Title: "b"},
		{Year: 1990, Artist: "A", Title: "a"},
	}
	Sort(tracks)
	want := []Track{
		{Year: 1990, Artist: "A", Title: "a"},
		{Year: 1990, Artist: "A", Title: "b"},
		{Year: 1990, Artist: "Z", Title: "a"},
		{Year: 2005, Artist: "B", Title: "x"},
	}
	for i := range want {
		if tracks[i] != want[i] {
			t.Fatalf("position %d = %+v, want %+v", i, tracks[i], want[i])
		}
	}
}

func TestFromTagsPrefersOriginalDateOverRemaster(t *testing.T) {
	tags := map[string]string{
		"TITLE":        "Take On Me",
		"ARTIST":       "a-ha",
		"ORIGINALDATE": "1985-10-19",
		"DATE":         "2015-01-01", // remaster date must lose
	}
	tr, err := FromTags("x.flac", tags, "ff", false)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Year != 1985 {
		t.Fatalf("year = %d, want 1985", tr.Year)
	}
}

func TestFromTagsMissingDate(t *testing.T) {
	tags := map[string]string{"TITLE": "t", "ARTIST": "a"}
	_, err := FromTags("x.flac", tags, "ff", false)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
