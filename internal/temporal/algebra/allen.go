// Package algebra classifies ordered pairs of closed-open time intervals
// into one of the thirteen Allen relations. This is a closed
// enumeration dispatched with a single total function, not a class
// family, not virtual calls.
package algebra

import (
	"time"

	domerrors "github.com/tareqmamari/logs-mcp-server/internal/errors"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/model"
)

// Relation is one of the thirteen Allen interval relations.
type Relation string

const (
	Before       Relation = "BEFORE"
	After        Relation = "AFTER"
	Meets        Relation = "MEETS"
	MetBy        Relation = "MET_BY"
	Overlaps     Relation = "OVERLAPS"
	OverlappedBy Relation = "OVERLAPPED_BY"
	Starts       Relation = "STARTS"
	StartedBy    Relation = "STARTED_BY"
	Finishes     Relation = "FINISHES"
	FinishedBy   Relation = "FINISHED_BY"
	During       Relation = "DURING"
	Contains     Relation = "CONTAINS"
	Equals       Relation = "EQUALS"
)

// Converse maps each Allen relation to its converse.
var Converse = map[Relation]Relation{
	Before:       After,
	After:        Before,
	Meets:        MetBy,
	MetBy:        Meets,
	Overlaps:     OverlappedBy,
	OverlappedBy: Overlaps,
	Starts:       StartedBy,
	StartedBy:    Starts,
	Finishes:     FinishedBy,
	FinishedBy:   Finishes,
	During:       Contains,
	Contains:     During,
	Equals:       Equals,
}

// Classify implements relation(a_start, a_end, b_start, b_end) ->
// AllenRelation.
//
// Preconditions: all four instants are timezone-aware (model.IsNaive);
// aStart < aEnd and bStart < bEnd strictly. Violations return
// InvalidTimezone / InvalidInterval. All comparisons happen on absolute
// instants after normalizing to UTC, never on wall-clock fields, so
// equivalent instants expressed in different zones compare equal.
func Classify(aStart, aEnd, bStart, bEnd time.Time) (Relation, error) {
	for _, t := range []time.Time{aStart, aEnd, bStart, bEnd} {
		if model.IsNaive(t) {
			return "", domerrors.NewInvalidTimezone("all four interval endpoints must carry an explicit time zone")
		}
	}

	aStart, aEnd = aStart.UTC(), aEnd.UTC()
	bStart, bEnd = bStart.UTC(), bEnd.UTC()

	if !aStart.Before(aEnd) {
		return "", domerrors.NewInvalidInterval("interval A: start must be strictly before end")
	}
	if !bStart.Before(bEnd) {
		return "", domerrors.NewInvalidInterval("interval B: start must be strictly before end")
	}

	switch {
	case aEnd.Before(bStart):
		return Before, nil
	case aStart.After(bEnd):
		return After, nil
	case aEnd.Equal(bStart):
		return Meets, nil
	case aStart.Equal(bEnd):
		return MetBy, nil
	case aStart.Before(bStart) && bStart.Before(aEnd) && aEnd.Before(bEnd):
		return Overlaps, nil
	case bStart.Before(aStart) && aStart.Before(bEnd) && bEnd.Before(aEnd):
		return OverlappedBy, nil
	case aStart.Equal(bStart) && aEnd.Before(bEnd):
		return Starts, nil
	case aStart.Equal(bStart) && aEnd.After(bEnd):
		return StartedBy, nil
	case aEnd.Equal(bEnd) && aStart.After(bStart):
		return Finishes, nil
	case aEnd.Equal(bEnd) && aStart.Before(bStart):
		return FinishedBy, nil
	case aStart.After(bStart) && aEnd.Before(bEnd):
		return During, nil
	case aStart.Before(bStart) && aEnd.After(bEnd):
		return Contains, nil
	case aStart.Equal(bStart) && aEnd.Equal(bEnd):
		return Equals, nil
	default:
		// Unreachable: the preceding cases are exhaustive over the
		// total order of four distinct comparable instants.
		return "", domerrors.NewInvalidInterval("no Allen relation matched; this indicates a logic error")
	}
}
