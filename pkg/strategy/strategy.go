package strategy

import (
	"strings"
	"unicode"
)

// Strategy names one of the four search execution paths.
type Strategy string

const (
	// ExactID matches the whole query literally against indexed text.
	ExactID Strategy = "exact_id"
	// Hybrid runs full-text and per-word literal matching, unioning the
	// results, for queries whose vocabulary defeats the stemmer.
	Hybrid Strategy = "hybrid"
	// FullText runs the engine's stemmed full-text match.
	FullText Strategy = "full_text"
	// WordSplit matches each word literally, for scripts the engine has
	// no stemming configuration for.
	WordSplit Strategy = "word_split"
)

// Classify decides which search strategy applies to a raw query string.
// The rules are ordered: identifier shapes always win, then hybrid
// eligibility, then Latin-script full text; everything else splits words.
func Classify(text string) Strategy {
	switch {
	case LooksLikeID(text):
		return ExactID
	case ShouldUseHybrid(text):
		return Hybrid
	case IsLatin(text):
		return FullText
	default:
		return WordSplit
	}
}

// IsLatin reports whether every rune in text is a Latin-script character,
// punctuation, a number, or whitespace. Queries failing this cannot rely
// on the engine's stemmers and take a literal matching path.
func IsLatin(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Latin, r) || unicode.IsPunct(r) ||
			unicode.IsNumber(r) || unicode.IsSpace(r) {
			continue
		}
		return false
	}
	return true
}

// ShouldUseHybrid reports whether a multi-word query would benefit from
// combining full-text with per-word literal matching. Single words and
// identifier shapes are left to their own paths. The triggers are words
// the engine's dictionary likely lacks: capitalized proper nouns, digits
// mixed into longer queries, symbols, and long uncommon words.
func ShouldUseHybrid(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	words := strings.Fields(text)
	if len(words) <= 1 {
		return false
	}
	if LooksLikeID(text) {
		return false
	}

	var properNoun, digits, symbols, longWord bool
	for _, word := range words {
		runes := []rune(word)
		if len(runes) > 1 && unicode.IsUpper(runes[0]) && isLowerWord(runes[1:]) {
			properNoun = true
		}
		for _, r := range runes {
			if unicode.IsDigit(r) {
				digits = true
			}
			if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' {
				symbols = true
			}
		}
		if len(runes) > 8 {
			longWord = true
		}
	}

	return properNoun || (digits && len(words) > 2) || symbols || longWord
}

// isLowerWord reports whether runes contain at least one cased letter and
// no upper- or titlecase ones.
func isLowerWord(runes []rune) bool {
	cased := false
	for _, r := range runes {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

// Analysis is the full classifier verdict for one query, as exposed by
// the classify endpoint.
type Analysis struct {
	Query     string   `json:"query"`
	Strategy  Strategy `json:"strategy"`
	IDPattern string   `json:"id_pattern,omitempty"`
	IDLike    bool     `json:"id_like"`
	Latin     bool     `json:"latin"`
	Hybrid    bool     `json:"hybrid"`
}

// Analyze runs every classifier rule and reports each verdict alongside
// the final strategy.
func Analyze(text string) Analysis {
	a := Analysis{Query: text, Strategy: Classify(text)}
	a.IDPattern, a.IDLike = MatchID(text)
	a.Latin = IsLatin(text)
	a.Hybrid = ShouldUseHybrid(text)
	return a
}
