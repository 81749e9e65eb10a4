// Package errors defines the typed error taxonomy for the temporal
// reasoning engine's API boundary. Every contract violation raised by
// event construction, the interval algebra, the extractor's reference
// date check, and the compliance validator is one of these codes;
// nothing else escapes the core as a typed error.
package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCategory classifies the type of error.
type ErrorCategory string

const (
	// ClientError indicates the error was caused by the caller violating
	// a contract (a naive timestamp, an inverted interval, and so on).
	// Every code below is, by construction, a ClientError: the temporal
	// core has no server-side or external-dependency failure modes.
	ClientError ErrorCategory = "CLIENT_ERROR"
)

// ErrorCode represents a structured error code.
type ErrorCode string

const (
	// CodeInvalidTimezone: a datetime lacks zone information at an API
	// boundary that requires awareness.
	CodeInvalidTimezone ErrorCode = "INVALID_TIMEZONE"
	// CodeInvalidInterval: start >= end on an interval passed to the algebra.
	CodeInvalidInterval ErrorCode = "INVALID_INTERVAL"
	// CodeInvalidEventConfig: ends_at <= timestamp, negative duration, or
	// timestamp + duration != ends_at.
	CodeInvalidEventConfig ErrorCode = "INVALID_EVENT_CONFIG"
	// CodeInvalidForecastRequest: empty history, non-finite value in
	// history, non-positive horizon, or confidence outside (0, 1).
	CodeInvalidForecastRequest ErrorCode = "INVALID_FORECAST_REQUEST"
	// CodeInvalidReference: a naive reference date was passed to extraction.
	CodeInvalidReference ErrorCode = "INVALID_REFERENCE"
)

// StructuredError represents a detailed error with category, code, and
// recovery suggestion.
type StructuredError struct {
	Code       ErrorCode     `json:"code"`
	Category   ErrorCategory `json:"category"`
	Message    string        `json:"message"`
	Details    interface{}   `json:"details,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Category, e.Message)
}

// ToJSON converts the error to a JSON string.
func (e *StructuredError) ToJSON() string {
	bytes, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"code":"%s","category":"%s","message":"%s"}`, e.Code, e.Category, e.Message)
	}
	return string(bytes)
}

// New creates a new structured error.
func New(code ErrorCode, category ErrorCategory, message string) *StructuredError {
	return &StructuredError{
		Code:     code,
		Category: category,
		Message:  message,
	}
}

// WithDetails adds details to the error.
func (e *StructuredError) WithDetails(details interface{}) *StructuredError {
	e.Details = details
	return e
}

// WithSuggestion adds a recovery suggestion to the error.
func (e *StructuredError) WithSuggestion(suggestion string) *StructuredError {
	e.Suggestion = suggestion
	return e
}

// NewInvalidTimezone reports a datetime missing zone information.
func NewInvalidTimezone(message string) *StructuredError {
	return New(CodeInvalidTimezone, ClientError, message).
		WithSuggestion("Attach a time zone (UTC if unknown) before passing a timestamp across this boundary")
}

// NewInvalidInterval reports start >= end on an algebra interval.
func NewInvalidInterval(message string) *StructuredError {
	return New(CodeInvalidInterval, ClientError, message).
		WithSuggestion("Ensure interval start is strictly before interval end")
}

// NewInvalidEventConfig reports an inconsistent TemporalEvent.
func NewInvalidEventConfig(message string) *StructuredError {
	return New(CodeInvalidEventConfig, ClientError, message).
		WithSuggestion("Check duration_minutes, ends_at, and timestamp are mutually consistent")
}

// NewInvalidForecastRequest reports a malformed ForecastRequest.
func NewInvalidForecastRequest(message string) *StructuredError {
	return New(CodeInvalidForecastRequest, ClientError, message).
		WithSuggestion("Provide a non-empty finite history, a positive horizon, and a confidence level in (0, 1)")
}

// NewInvalidReference reports a naive reference date passed to extraction.
func NewInvalidReference(message string) *StructuredError {
	return New(CodeInvalidReference, ClientError, message).
		WithSuggestion("Attach a time zone to the reference date before calling extraction")
}

// AsStructured reports whether err is a *StructuredError, so callers can
// branch on its Code without a type switch at every call site.
func AsStructured(err error) (*StructuredError, bool) {
	se, ok := err.(*StructuredError)
	return se, ok
}
