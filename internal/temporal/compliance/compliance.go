// Package compliance evaluates deadline compliance against a reference
// time plus an allowed delay. The rule family is modeled as a small
// interface with a single Validate method, not a class hierarchy.
package compliance

import (
	"fmt"
	"time"

	domerrors "github.com/tareqmamari/logs-mcp-server/internal/errors"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/model"
)

// Result is the outcome of evaluating a compliance Rule.
type Result struct {
	IsCompliant bool
	// Drift is the signed offset of target from the rule's boundary.
	// For MaxDelayRule it is target minus deadline (positive means
	// late); for WindowRule see WindowRule.Validate.
	Drift            time.Duration
	ViolationMessage string
}

// Rule is the open family of compliance rules. MaxDelayRule and
// WindowRule are two concrete variants exercising the same interface.
type Rule interface {
	Validate(target, reference time.Time) (*Result, error)
}

// MaxDelayRule checks target <= reference + MaxDelay.
type MaxDelayRule struct {
	MaxDelay time.Duration
}

// NewMaxDelayRule constructs a MaxDelayRule. Construction fails if
// maxDelay is negative.
func NewMaxDelayRule(maxDelay time.Duration) (*MaxDelayRule, error) {
	if maxDelay < 0 {
		return nil, domerrors.NewInvalidEventConfig("max_delay must be >= 0")
	}
	return &MaxDelayRule{MaxDelay: maxDelay}, nil
}

// Validate evaluates target against reference + MaxDelay. Arithmetic is
// on absolute instants, not wall-clock fields, so a delay spanning a
// leap day or a DST transition yields the correct absolute-time result.
func (r *MaxDelayRule) Validate(target, reference time.Time) (*Result, error) {
	if model.IsNaive(target) || model.IsNaive(reference) {
		return nil, domerrors.NewInvalidTimezone("target and reference must both carry an explicit time zone")
	}
	target, reference = target.UTC(), reference.UTC()

	deadline := reference.Add(r.MaxDelay)
	drift := target.Sub(deadline)
	res := &Result{
		IsCompliant: drift <= 0,
		Drift:       drift,
	}
	if !res.IsCompliant {
		res.ViolationMessage = fmt.Sprintf("Violation: target exceeded deadline by %s (drift=%s)", drift, drift)
	}
	return res, nil
}

// WindowRule checks reference <= target <= reference + Window,
// demonstrating the open rule family without altering MaxDelayRule's
// contract.
type WindowRule struct {
	Window time.Duration
}

// NewWindowRule constructs a WindowRule. Construction fails if window is
// negative, mirroring MaxDelayRule's constructor contract.
func NewWindowRule(window time.Duration) (*WindowRule, error) {
	if window < 0 {
		return nil, domerrors.NewInvalidEventConfig("window must be >= 0")
	}
	return &WindowRule{Window: window}, nil
}

// Validate evaluates target against [reference, reference + Window].
// Drift is target minus reference when target precedes or falls inside
// the window, and target minus the window end when target is past it.
func (r *WindowRule) Validate(target, reference time.Time) (*Result, error) {
	if model.IsNaive(target) || model.IsNaive(reference) {
		return nil, domerrors.NewInvalidTimezone("target and reference must both carry an explicit time zone")
	}
	target, reference = target.UTC(), reference.UTC()

	windowEnd := reference.Add(r.Window)
	switch {
	case target.Before(reference):
		drift := target.Sub(reference)
		return &Result{
			IsCompliant:      false,
			Drift:            drift,
			ViolationMessage: fmt.Sprintf("Violation: target preceded the window by %s (drift=%s)", -drift, drift),
		}, nil
	case target.After(windowEnd):
		drift := target.Sub(windowEnd)
		return &Result{
			IsCompliant:      false,
			Drift:            drift,
			ViolationMessage: fmt.Sprintf("Violation: target exceeded the window by %s (drift=%s)", drift, drift),
		}, nil
	default:
		return &Result{IsCompliant: true, Drift: target.Sub(reference)}, nil
	}
}
