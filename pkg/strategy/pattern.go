package strategy

import (
	"regexp"
	"strings"
)

// idPattern is a single named identifier shape with an optional guard
// evaluated after the regex matches.
type idPattern struct {
	name  string
	re    *regexp.Regexp
	guard func(string) bool
}

// Identifier shapes seen in the archive's call numbers, tried in order.
// All are anchored and case-insensitive.
var idPatterns = []idPattern{
	{"call_number", regexp.MustCompile(`(?i)^[A-Z]+_[A-Z]-\d+$`), nil},
	{"collection_section", regexp.MustCompile(`(?i)^[A-Z]+_[A-Z]$`), nil},
	{"section_item", regexp.MustCompile(`(?i)^[A-Z]-\d+$`), nil},
	// Codes whose section letter survives stop-word stripping only when
	// the segment after the last underscore is a single letter.
	{"stopword_code", regexp.MustCompile(`(?i)^[A-Z]+_[A-Z]+$`), lastSegmentIsSingle},
}

func lastSegmentIsSingle(s string) bool {
	segs := strings.Split(s, "_")
	return len(segs[len(segs)-1]) == 1
}

// MatchID tests whether text is shaped like an archival identifier and
// names the first pattern that matched.
func MatchID(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, p := range idPatterns {
		if !p.re.MatchString(text) {
			continue
		}
		if p.guard != nil && !p.guard(text) {
			continue
		}
		return p.name, true
	}
	return "", false
}

// LooksLikeID reports whether text is shaped like an archival identifier.
func LooksLikeID(text string) bool {
	_, ok := MatchID(text)
	return ok
}
