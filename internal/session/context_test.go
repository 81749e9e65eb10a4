package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InitializesEmptyContext(t *testing.T) {
	c := New()
	require.NotNil(t, c)
	assert.Nil(t, c.GetLastExtraction())
	assert.Empty(t, c.GetRecentExtractions())
	assert.False(t, c.HasRecentErrors())
}

func TestRecordExtraction_UpdatesLastAndRecent(t *testing.T) {
	c := New()
	c.RecordExtraction(120, 3)

	last := c.GetLastExtraction()
	require.NotNil(t, last)
	assert.Equal(t, 120, last.TextLength)
	assert.Equal(t, 3, last.EventCount)

	assert.Len(t, c.GetRecentExtractions(), 1)
	assert.Equal(t, 1, c.GetStats()["call_count"])
}

func TestRecordExtraction_BoundsRecentEntries(t *testing.T) {
	c := New()
	for i := 0; i < 15; i++ {
		c.RecordExtraction(i, i)
	}
	assert.Len(t, c.GetRecentExtractions(), 10)
}

func TestRecordError_TracksRecentErrors(t *testing.T) {
	c := New()
	c.RecordError("extract_events", "parse failure")

	assert.True(t, c.HasRecentErrors())
	errs := c.GetRecentErrors()
	require.Len(t, errs, 1)
	assert.Equal(t, "extract_events", errs[0].Operation)
	assert.Equal(t, "parse failure", errs[0].Message)
}

func TestClear_ResetsState(t *testing.T) {
	c := New()
	c.RecordExtraction(10, 1)
	c.RecordError("get_relation", "boom")

	c.Clear()

	assert.Nil(t, c.GetLastExtraction())
	assert.Empty(t, c.GetRecentExtractions())
	assert.False(t, c.HasRecentErrors())
	assert.Equal(t, 0, c.GetStats()["call_count"])
}

func TestSuggestNextOperations_SuggestsRelationAfterMultiEventExtraction(t *testing.T) {
	c := New()
	c.RecordExtraction(200, 2)

	suggestions := c.SuggestNextOperations()
	assert.Contains(t, suggestions, "get_relation")
	assert.Contains(t, suggestions, "is_plausible_cause")
	assert.Contains(t, suggestions, "validate_compliance")
}

func TestSuggestNextOperations_EmptyWithNoActivity(t *testing.T) {
	c := New()
	assert.Empty(t, c.SuggestNextOperations())
}

func TestContext_ConcurrentAccessIsSafe(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.RecordExtraction(n, n%3)
			c.RecordForecast(n, n%5)
			if n%7 == 0 {
				c.RecordError("extract_events", "sporadic")
			}
			_ = c.GetStats()
			_ = c.SuggestNextOperations()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, c.GetStats()["call_count"])
}
