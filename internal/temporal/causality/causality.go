// Package causality converts TemporalEvents to intervals, classifies
// their Allen relation, and decides causal plausibility: a thin
// algorithmic layer over algebra.
package causality

import (
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/algebra"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/model"
)

// plausibleCauseRelations is the fixed subset of Allen relations under
// which cause.start <= effect.start holds.
var plausibleCauseRelations = map[algebra.Relation]bool{
	algebra.Before:     true,
	algebra.Meets:      true,
	algebra.Overlaps:   true,
	algebra.FinishedBy: true,
	algebra.Contains:   true,
	algebra.Starts:     true,
	algebra.StartedBy:  true,
	algebra.Equals:     true,
}

// GetRelation exposes the Allen relation between two events' resolved
// intervals for inspection.
func GetRelation(a, b *model.TemporalEvent) (algebra.Relation, error) {
	aStart, aEnd := a.Interval()
	bStart, bEnd := b.Interval()
	return algebra.Classify(aStart, aEnd, bStart, bEnd)
}

// IsPlausibleCause reports whether cause could plausibly precede effect:
// true iff GetRelation(cause, effect) is one of
// {BEFORE, MEETS, OVERLAPS, FINISHED_BY, CONTAINS, STARTS, STARTED_BY, EQUALS}.
// Algebra errors (e.g. a naive timestamp slipping through) are trapped
// and yield false; they are never raised to the caller.
func IsPlausibleCause(cause, effect *model.TemporalEvent) bool {
	rel, err := GetRelation(cause, effect)
	if err != nil {
		return false
	}
	return plausibleCauseRelations[rel]
}
