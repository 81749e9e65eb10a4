package model

import (
	"encoding/json"
	"time"
)

// temporalEventJSON mirrors TemporalEvent's wire shape: ISO-8601
// timestamps with offset, ends_at omitted when nil, granularity as its
// literal enum string, duration_minutes as a plain integer.
type temporalEventJSON struct {
	ID              string      `json:"id"`
	Description     string      `json:"description"`
	Timestamp       time.Time   `json:"timestamp"`
	Granularity     Granularity `json:"granularity"`
	DurationMinutes *int        `json:"duration_minutes,omitempty"`
	EndsAt          *time.Time  `json:"ends_at,omitempty"`
	SourceSnippet   string      `json:"source_snippet"`
}

// MarshalJSON implements json.Marshaler. time.Time already renders as
// RFC 3339 (ISO-8601 with offset) via encoding/json, the wire format
// this engine's external interfaces standardize on.
func (e TemporalEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(temporalEventJSON{
		ID:              e.ID,
		Description:     e.Description,
		Timestamp:       e.Timestamp,
		Granularity:     e.Granularity,
		DurationMinutes: e.DurationMinutes,
		EndsAt:          e.EndsAt,
		SourceSnippet:   e.SourceSnippet,
	})
}

// UnmarshalJSON implements json.Unmarshaler. It intentionally bypasses
// NewTemporalEvent's invariant checks: a value that round-trips through
// JSON was already validated once at construction.
func (e *TemporalEvent) UnmarshalJSON(data []byte) error {
	var raw temporalEventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ID = raw.ID
	e.Description = raw.Description
	e.Timestamp = raw.Timestamp.UTC()
	e.Granularity = raw.Granularity
	e.DurationMinutes = raw.DurationMinutes
	if raw.EndsAt != nil {
		ea := raw.EndsAt.UTC()
		e.EndsAt = &ea
	} else {
		e.EndsAt = nil
	}
	e.SourceSnippet = raw.SourceSnippet
	return nil
}
