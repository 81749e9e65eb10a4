package dateparser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbsolute_ISODate(t *testing.T) {
	got, err := ParseAbsolute("2024-01-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 10, got.Day())
}

func TestParseAbsolute_RejectsGarbage(t *testing.T) {
	_, err := ParseAbsolute("not a date at all", time.UTC)
	require.Error(t, err)
}

func TestNaturalLanguageParser_NoMatchReturnsEmpty(t *testing.T) {
	p := NewNaturalLanguageParser()
	matches, err := p.Parse("the quick brown fox jumps over the lazy dog", time.Now().UTC(), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestNaturalLanguageParser_FindsRelativePhrase(t *testing.T) {
	p := NewNaturalLanguageParser()
	reference := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	matches, err := p.Parse("the procedure is scheduled for tomorrow", reference, time.UTC)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, 2024, matches[0].Instant.Year())
	assert.Equal(t, time.January, matches[0].Instant.Month())
	assert.Equal(t, 2, matches[0].Instant.Day())
}

func TestNaturalLanguageParser_FallsBackToAbsoluteDate(t *testing.T) {
	p := NewNaturalLanguageParser()
	reference := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	matches, err := p.Parse("the incident was filed on 2024-01-10", reference, time.UTC)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	last := matches[len(matches)-1]
	assert.Equal(t, "2024-01-10", last.Snippet)
	assert.Equal(t, 2024, last.Instant.Year())
	assert.Equal(t, time.January, last.Instant.Month())
	assert.Equal(t, 10, last.Instant.Day())
}

func TestNaturalLanguageParser_MergesRelativeAndAbsoluteInSourceOrder(t *testing.T) {
	p := NewNaturalLanguageParser()
	reference := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	matches, err := p.Parse("filed 2024-01-10, due tomorrow", reference, time.UTC)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "2024-01-10", matches[0].Snippet)
	assert.Equal(t, "tomorrow", matches[1].Snippet)
}

func TestStubParser_ReturnsCannedMatches(t *testing.T) {
	want := []Match{{Snippet: "Jan 10", Instant: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}}
	stub := &StubParser{Matches: want}

	got, err := stub.Parse("irrelevant", time.Now(), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStubParser_ReturnsCannedError(t *testing.T) {
	stub := &StubParser{Err: errors.New("boom")}
	_, err := stub.Parse("irrelevant", time.Now(), time.UTC)
	require.Error(t, err)
}

var _ Parser = (*NaturalLanguageParser)(nil)
var _ Parser = (*StubParser)(nil)
