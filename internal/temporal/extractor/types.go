// Package extractor implements the timeline extraction pipeline: a
// five-pass process that turns free text into an ordered sequence of
// TemporalEvent values, anchored against a reference date. This is the
// largest single component of the engine; structured around a
// constructor taking its collaborators (a dateparser.Parser and a
// logger), with the pipeline itself broken into one method per pass.
package extractor

import "github.com/tareqmamari/logs-mcp-server/internal/temporal/model"

// span is a half-open character range [start, end) into the source
// text. Internal bookkeeping only: resolvedMeta and anchorCandidate
// records never escape the package.
type span struct {
	start int
	end   int
}

// overlaps reports whether two spans share any character.
func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// gap returns the signed distance between two non-overlapping spans: a
// positive value if s precedes o, negative if o precedes s, and 0 if
// they touch or overlap.
func (s span) gap(o span) int {
	if s.end <= o.start {
		return o.start - s.end
	}
	if o.end <= s.start {
		return -(s.start - o.end)
	}
	return 0
}

// anchorCandidate is a parsed "N unit after/before PHRASE" fragment
// awaiting resolution against the resolved event set.
type anchorCandidate struct {
	value        float64
	unit         string
	direction    string // "after" or "before"
	anchorPhrase string
	fullMatch    string
	span         span
}

// resolvedMeta pairs a resolved event with the character-span
// bookkeeping needed for overlap and proximity decisions during anchor
// resolution.
type resolvedMeta struct {
	event      *model.TemporalEvent
	span       span
	isAnchored bool
}
