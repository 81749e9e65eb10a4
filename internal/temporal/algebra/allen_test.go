package algebra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func t_(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestClassify_DecisionTable(t *testing.T) {
	tests := []struct {
		name                   string
		aStart, aEnd           time.Time
		bStart, bEnd           time.Time
		want                   Relation
	}{
		{"before", t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T13:00:00Z"), t_("2024-01-01T14:00:00Z"), Before},
		{"after", t_("2024-01-01T13:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), After},
		{"meets", t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z"), Meets},
		{"met_by", t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), MetBy},
		{"overlaps", t_("2024-01-01T10:00:00Z"), t_("2024-01-01T13:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z"), Overlaps},
		{"overlapped_by", t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T13:00:00Z"), OverlappedBy},
		{"starts", t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), Starts},
		{"started_by", t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), StartedBy},
		{"finishes", t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), Finishes},
		{"finished_by", t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z"), FinishedBy},
		{"during", t_("2024-01-01T11:00:00Z"), t_("2024-01-01T13:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), During},
		{"contains", t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T11:00:00Z"), t_("2024-01-01T13:00:00Z"), Contains},
		{"equals", t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), Equals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_RejectsInvertedInterval(t *testing.T) {
	_, err := Classify(t_("2024-01-01T12:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"))
	require.Error(t, err)
}

func TestClassify_RejectsNaiveInstant(t *testing.T) {
	naive := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	_, err := Classify(naive, naive.Add(time.Hour), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"))
	require.Error(t, err)
}

// TestClassify_Converses verifies that relation(a, b) and relation(b, a)
// are converses.
func TestClassify_Converses(t *testing.T) {
	tests := []struct {
		aStart, aEnd, bStart, bEnd time.Time
	}{
		{t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T13:00:00Z"), t_("2024-01-01T14:00:00Z")},
		{t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z")},
		{t_("2024-01-01T10:00:00Z"), t_("2024-01-01T13:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z")},
		{t_("2024-01-01T10:00:00Z"), t_("2024-01-01T12:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z")},
		{t_("2024-01-01T12:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z")},
		{t_("2024-01-01T11:00:00Z"), t_("2024-01-01T13:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z")},
		{t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z"), t_("2024-01-01T10:00:00Z"), t_("2024-01-01T14:00:00Z")},
	}

	for _, tt := range tests {
		fwd, err := Classify(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
		require.NoError(t, err)
		rev, err := Classify(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
		require.NoError(t, err)
		assert.Equal(t, Converse[fwd], rev, "relation(a,b)=%s should converse to relation(b,a)=%s", fwd, rev)
	}
}

// TestClassify_MicrosecondBoundary verifies the boundary between
// BEFORE and MEETS at microsecond resolution.
func TestClassify_MicrosecondBoundary(t *testing.T) {
	aStart := t_("2024-01-01T12:00:00Z")
	aEnd := t_("2024-01-01T14:00:00Z")

	bStartGap := aEnd.Add(time.Microsecond)
	bEndGap := t_("2024-01-01T15:00:00Z")
	rel, err := Classify(aStart, aEnd, bStartGap, bEndGap)
	require.NoError(t, err)
	assert.Equal(t, Before, rel)

	bStartMeets := aEnd
	rel, err = Classify(aStart, aEnd, bStartMeets, bEndGap)
	require.NoError(t, err)
	assert.Equal(t, Meets, rel)
}

// TestClassify_ZoneEquivalence verifies that equivalent instants
// expressed in different zones classify identically.
func TestClassify_ZoneEquivalence(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	instant := t_("2024-01-01T12:00:00Z")
	aStart := instant.In(ny)
	aEnd := aStart.Add(time.Hour)
	bStart := instant.In(tokyo)
	bEnd := bStart.Add(time.Hour)

	rel, err := Classify(aStart, aEnd, bStart, bEnd)
	require.NoError(t, err)
	assert.Equal(t, Equals, rel)
}
