package stats

import (
	"sort"
	"strings"

	"trackdeck/internal/track"
)

// Bucket is one histogram row.
type Bucket struct {
	Key   int `json:"key"`
	Count int `json:"count"`
}

// Report summarizes the temporal distribution of a track selection. It is
// advisory output for rebalancing the deck before printing and never feeds
// back into the generated files.
type Report struct {
	Years   []Bucket `json:"years"`
	Decades []Bucket `json:"decades"`
	// Unknown counts tracks whose year could not be established. They stay
	// out of both histograms rather than aborting the analysis.
	Unknown int `json:"unknown"`
	Total   int `json:"total"`
}

// Analyze computes year and decade histograms over tracks, sorted ascending
// by key. An empty selection yields an empty report.
func Analyze(tracks []track.Track) Report {
	years := make(map[int]int)
	decades := make(map[int]int)
	unknown := 0

	for _, t := range tracks {
		if t.Year <= 0 {
			unknown++
			continue
		}
		years[t.Year]++
		decades[t.Decade()]++
	}

	return Report{
		Years:   sortBuckets(years),
		Decades: sortBuckets(decades),
		Unknown: unknown,
		Total:   len(tracks),
	}
}

func sortBuckets(counts map[int]int) []Bucket {
	buckets := make([]Bucket, 0, len(counts))
	for key, count := range counts {
		buckets = append(buckets, Bucket{Key: key, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}

// Bar renders a count as a '#' run for terminal histograms.
func Bar(count int) string {
	if count < 0 {
		return ""
	}
	return strings.Repeat("#", count)
}
