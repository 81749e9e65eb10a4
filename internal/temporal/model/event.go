// Package model defines the core entities of the temporal reasoning
// engine: the TemporalEvent produced by extraction, and the half-open
// Interval it resolves to for interval-algebra classification.
//
// Events are produced once by the extractor and never mutated; every
// constructor validates its invariants up front and returns a typed
// error (internal/errors) on violation.
package model

import (
	"fmt"
	"time"

	domerrors "github.com/tareqmamari/logs-mcp-server/internal/errors"
)

// Granularity indicates how much of an event's timestamp was actually
// specified in the source text.
type Granularity string

const (
	// Precise means the timestamp carries a specific time-of-day.
	Precise Granularity = "PRECISE"
	// DateOnly means only a calendar date was specified; the time
	// component is a parser default (midnight).
	DateOnly Granularity = "DATE_ONLY"
	// Fuzzy marks a loosely specified timestamp. The extractor never
	// assigns it: anchor-derived events inherit the granularity of the
	// event they are anchored to.
	Fuzzy Granularity = "FUZZY"
)

// epsilon is the minimum interval width used to keep point events total
// under the interval algebra (spec: "epsilon interval").
const epsilon = time.Microsecond

// TemporalEvent is a single discovered point (or span) on the timeline.
type TemporalEvent struct {
	ID              string
	Description     string
	Timestamp       time.Time
	Granularity     Granularity
	DurationMinutes *int
	EndsAt          *time.Time
	SourceSnippet   string
}

// NewTemporalEvent validates and constructs a TemporalEvent. All four
// invariants are enforced here:
//   - Timestamp must be timezone-aware (normalized to UTC for storage).
//   - If both DurationMinutes and EndsAt are given, Timestamp +
//     DurationMinutes == EndsAt.
//   - EndsAt, if present, is strictly later than Timestamp.
//   - DurationMinutes, if present, is >= 0.
func NewTemporalEvent(id, description string, timestamp time.Time, granularity Granularity, durationMinutes *int, endsAt *time.Time, sourceSnippet string) (*TemporalEvent, error) {
	if IsNaive(timestamp) {
		return nil, domerrors.NewInvalidTimezone("event timestamp has no time zone")
	}
	ts := timestamp.UTC()

	if durationMinutes != nil && *durationMinutes < 0 {
		return nil, domerrors.NewInvalidEventConfig(fmt.Sprintf("duration_minutes must be >= 0, got %d", *durationMinutes))
	}

	var ea *time.Time
	if endsAt != nil {
		e := endsAt.UTC()
		if !e.After(ts) {
			return nil, domerrors.NewInvalidEventConfig("ends_at must be strictly later than timestamp")
		}
		ea = &e
	}

	if durationMinutes != nil && ea != nil {
		expected := ts.Add(time.Duration(*durationMinutes) * time.Minute)
		if !expected.Equal(*ea) {
			return nil, domerrors.NewInvalidEventConfig("timestamp + duration_minutes must equal ends_at")
		}
	}

	return &TemporalEvent{
		ID:              id,
		Description:     description,
		Timestamp:       ts,
		Granularity:     granularity,
		DurationMinutes: durationMinutes,
		EndsAt:          ea,
		SourceSnippet:   sourceSnippet,
	}, nil
}

// Interval returns the half-open [start, end) interval this event
// resolves to for algebra classification:
//   - end = EndsAt if set;
//   - else Timestamp + DurationMinutes, if set and later than Timestamp;
//   - else Timestamp + epsilon.
//
// Point events always become epsilon intervals so the algebra stays total.
func (e *TemporalEvent) Interval() (time.Time, time.Time) {
	start := e.Timestamp
	if e.EndsAt != nil {
		return start, *e.EndsAt
	}
	if e.DurationMinutes != nil {
		end := start.Add(time.Duration(*e.DurationMinutes) * time.Minute)
		if end.After(start) {
			return start, end
		}
	}
	return start, start.Add(epsilon)
}
