// Package fuzzy scores how well two short phrases refer to the same
// thing, used by the extractor to match an anchor candidate's phrase
// ("the second infusion") against a previously discovered event's
// description ("Second Infusion"). Built on agnivade/levenshtein, with
// a token-overlap coefficient kept as an exported fallback helper
// rather than discarded.
package fuzzy

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// stopWords are dropped before scoring so that function words don't
// inflate token overlap between unrelated phrases.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true,
	"in": true, "on": true, "at": true, "for": true, "with": true,
	"by": true,
}

// tokenize lowercases, splits on non-letter/non-digit runes, and drops
// stop words.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !stopWords[f] {
			out = append(out, f)
		}
	}
	return out
}

// tokenSet builds a set out of a token slice.
func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// OverlapCoefficient computes |A ∩ B| / max(|A|, 1) over the
// case-folded, stop-word-stripped token sets of a and b, a conservative
// fallback for when no string-similarity library is available. It is
// asymmetric: a is the candidate phrase, b the description being
// matched against.
func OverlapCoefficient(a, b string) float64 {
	setA := tokenSet(tokenize(a))
	setB := tokenSet(tokenize(b))
	if len(setA) == 0 {
		return 0
	}
	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	return float64(intersection) / float64(len(setA))
}

// Ratio scores the similarity of a and b in [0, 1], 1 meaning
// identical after normalization. It blends token-set overlap (which
// rewards shared distinctive words regardless of order) with a
// Levenshtein ratio over the normalized, space-joined token strings
// (which rewards close spelling when token sets barely overlap, e.g.
// "infusion" vs "infusions"). The extractor (internal/temporal/extractor)
// uses this as its single matching primitive during anchor resolution.
func Ratio(a, b string) float64 {
	normA := strings.Join(tokenize(a), " ")
	normB := strings.Join(tokenize(b), " ")

	overlap := OverlapCoefficient(a, b)

	maxLen := len(normA)
	if len(normB) > maxLen {
		maxLen = len(normB)
	}
	levRatio := 1.0
	if maxLen > 0 {
		dist := levenshtein.ComputeDistance(normA, normB)
		levRatio = 1.0 - float64(dist)/float64(maxLen)
		if levRatio < 0 {
			levRatio = 0
		}
	}

	if overlap > levRatio {
		return overlap
	}
	return levRatio
}
