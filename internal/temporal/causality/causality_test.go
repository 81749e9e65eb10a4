package causality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tareqmamari/logs-mcp-server/internal/temporal/algebra"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/model"
)

func event(t *testing.T, start time.Time, minutes int) *model.TemporalEvent {
	t.Helper()
	e, err := model.NewTemporalEvent("e", "", start, model.Precise, &minutes, nil, "")
	require.NoError(t, err)
	return e
}

// TestIsPlausibleCause_Reflexive verifies that an event cannot precede
// itself under a strict ordering, but under EQUALS (identical
// interval) it is treated as its own plausible cause.
func TestIsPlausibleCause_Reflexive(t *testing.T) {
	ref := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	e := event(t, ref, 30)
	assert.True(t, IsPlausibleCause(e, e))
}

func TestIsPlausibleCause_BeforeIsPlausible(t *testing.T) {
	ref := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cause := event(t, ref, 30)
	effect := event(t, ref.Add(2*time.Hour), 30)
	assert.True(t, IsPlausibleCause(cause, effect))
}

func TestIsPlausibleCause_AfterIsImplausible(t *testing.T) {
	ref := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cause := event(t, ref.Add(2*time.Hour), 30)
	effect := event(t, ref, 30)
	assert.False(t, IsPlausibleCause(cause, effect))
}

func TestIsPlausibleCause_DuringIsImplausible(t *testing.T) {
	ref := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	container := event(t, ref, 120)
	inner := event(t, ref.Add(30*time.Minute), 10)
	// inner is DURING container: a cause wholly enclosed by its effect's
	// span is not a plausible cause.
	rel, err := GetRelation(inner, container)
	require.NoError(t, err)
	assert.Equal(t, algebra.During, rel)
	assert.False(t, IsPlausibleCause(inner, container))
}

func TestGetRelation_TrapsNaiveInstant(t *testing.T) {
	minutes := 10
	a := &model.TemporalEvent{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), DurationMinutes: &minutes}
	b := event(t, time.Now().UTC(), 10)
	_, err := GetRelation(a, b)
	require.Error(t, err)
	assert.False(t, IsPlausibleCause(a, b))
}

func TestIsPlausibleCause_MeetsIsPlausible(t *testing.T) {
	ref := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cause := event(t, ref, 30)
	effect := event(t, ref.Add(30*time.Minute), 30)
	rel, err := GetRelation(cause, effect)
	require.NoError(t, err)
	assert.Equal(t, algebra.Meets, rel)
	assert.True(t, IsPlausibleCause(cause, effect))
}
