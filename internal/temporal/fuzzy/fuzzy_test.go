package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapCoefficient_IdenticalAfterFolding(t *testing.T) {
	assert.Equal(t, 1.0, OverlapCoefficient("Second Infusion", "the second infusion"))
}

func TestOverlapCoefficient_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, OverlapCoefficient("second infusion", "unrelated topic"))
}

func TestOverlapCoefficient_EmptyCandidateIsZero(t *testing.T) {
	assert.Equal(t, 0.0, OverlapCoefficient("the of a", "second infusion"))
}

func TestOverlapCoefficient_StopWordsIgnored(t *testing.T) {
	// "the" and "a" are stripped from both sides; only "infusion" remains.
	assert.Equal(t, 1.0, OverlapCoefficient("the infusion", "a infusion"))
}

// TestRatio_DisambiguatesCloserTokenOverlap verifies "second infusion"
// scores higher against "Second Infusion" than against "Third
// Infusion", even though both share the word "infusion".
func TestRatio_DisambiguatesCloserTokenOverlap(t *testing.T) {
	candidate := "the second infusion"
	second := Ratio(candidate, "Second Infusion")
	third := Ratio(candidate, "Third Infusion")
	assert.Greater(t, second, third)
	assert.Equal(t, 1.0, second)
}

func TestRatio_IdenticalStringsScoreOne(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("Initial Consultation", "initial consultation"))
}

func TestRatio_FallsBackToSpellingWhenNoTokenOverlap(t *testing.T) {
	// Singular/plural mismatch: token sets disjoint ("infusion" != "infusions")
	// but Levenshtein distance over the normalized strings is small.
	r := Ratio("infusion", "infusions")
	assert.Greater(t, r, 0.5)
}

func TestRatio_CompletelyUnrelated(t *testing.T) {
	r := Ratio("second infusion", "quarterly budget review")
	assert.Less(t, r, 0.3)
}
