package card

import (
	"strings"
	"unicode/utf8"
)

// singleLineLimit is the character count below which text stays on one
// line. Above it we look for the most balanced two-line break.
const singleLineLimit = 24

// BreakLines breaks a title or artist string so it fits on a card. The
// heuristic works on character counts rather than true text width, which is
// good enough for card-sized strings. Counts are in runes, so accented and
// non-Latin titles measure the same as ASCII ones.
func BreakLines(s string) []string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) < singleLineLimit {
		return []string{s}
	}

	words := strings.Fields(s)
	if len(words) < 2 {
		return []string{s}
	}

	// Try every break point and keep the most even split.
	top, bottom := s, ""
	best := utf8.RuneCountInString(s)
	for i := 1; i < len(words); i++ {
		t := strings.Join(words[:i], " ")
		b := strings.Join(words[i:], " ")
		d := utf8.RuneCountInString(t) - utf8.RuneCountInString(b)
		if d < 0 {
			d = -d
		}
		if d < best {
			top, bottom, best = t, b, d
		}
	}
	if bottom == "" {
		return []string{top}
	}
	return []string{top, bottom}
}
