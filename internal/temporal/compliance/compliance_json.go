package compliance

import (
	"encoding/json"
	"time"
)

// resultJSON serializes Drift as total seconds (a float), chosen over
// an ISO-8601 duration string: a float round-trips exactly via
// time.Duration's nanosecond resolution divided by 1e9, and avoids
// pulling in an ISO-8601 duration formatter for a single field.
type resultJSON struct {
	IsCompliant      bool    `json:"is_compliant"`
	DriftSeconds     float64 `json:"drift_seconds"`
	ViolationMessage string  `json:"violation_message,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		IsCompliant:      r.IsCompliant,
		DriftSeconds:     r.Drift.Seconds(),
		ViolationMessage: r.ViolationMessage,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.IsCompliant = raw.IsCompliant
	r.Drift = time.Duration(raw.DriftSeconds * float64(time.Second))
	r.ViolationMessage = raw.ViolationMessage
	return nil
}
