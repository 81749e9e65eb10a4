package extractor

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	domerrors "github.com/tareqmamari/logs-mcp-server/internal/errors"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/dateparser"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/model"
)

// contextRadius is the half-width, in characters, of the windows used
// for both context descriptions (Pass 1) and anchor masking (Pass 4).
const contextRadius = 50

// anchorScoreThreshold is the minimum fuzzy score an anchor candidate
// must reach against a resolved event before it is considered a
// resolution target.
const anchorScoreThreshold = 0.5

// pureDurationPattern matches a bare duration phrase ("50 years", "3
// months") with nothing else; such phrases are never events on their
// own.
var pureDurationPattern = regexp.MustCompile(`(?i)^\d+\s+(year|month|week|day|hour|minute|second)s?$`)

// anchorCandidatePattern scans for:
// <value> <unit> (after|before) <anchor_phrase> <terminator>.
// Group 4 (anchor_phrase) ends where the terminator begins; the
// terminator itself is not part of the candidate's span.
var anchorCandidatePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s+(year|month|week|day|hour|minute|second)s?\s+(after|before)\s+([\w\s]+?)([.,;]|$)`)

// durationFragmentPattern matches the optional duration-window
// fragment: "(for|lasting|spanning) <value> <unit>".
var durationFragmentPattern = regexp.MustCompile(`(?i)(?:for|lasting|spanning)\s+(\d+(?:\.\d+)?)\s+(year|month|week|day|hour|minute|second)s?`)

// Extractor turns free text into an ordered timeline of TemporalEvent
// values. It holds its collaborators: the date-phrase parser and a
// logger for best-effort drops.
type Extractor struct {
	parser              dateparser.Parser
	logger              *zap.Logger
	enableDurationSearch bool
}

// Option configures an Extractor at construction time.
type Option func(*Extractor)

// WithDurationSearch toggles the optional ±50-char duration-window
// search performed during Pass 1. Enabled by default.
func WithDurationSearch(enabled bool) Option {
	return func(e *Extractor) { e.enableDurationSearch = enabled }
}

// NewExtractor constructs an Extractor. A nil logger is replaced with
// zap.NewNop().
func NewExtractor(parser dateparser.Parser, logger *zap.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Extractor{parser: parser, logger: logger, enableDurationSearch: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the full extraction pipeline:
// extract_events(text, reference_date) -> ordered sequence of TemporalEvent.
// The only error it raises for caller input is InvalidReference; an
// error from constructing a TemporalEvent is returned as is. Every
// other failure mode (unresolvable anchor, unlocatable snippet,
// rejected duration) is logged and silently dropped.
func (e *Extractor) Extract(ctx context.Context, text string, reference time.Time) ([]*model.TemporalEvent, error) {
	if model.IsNaive(reference) {
		return nil, domerrors.NewInvalidReference("reference_date must carry an explicit time zone")
	}
	reference = reference.UTC()

	resolved, err := e.pass1StandardExtraction(text, reference)
	if err != nil {
		return nil, err
	}

	anchors := e.pass2DetectAnchorCandidates(text)
	resolved = e.pass3PruneOverlapping(resolved, anchors)
	resolved, err = e.pass4ResolveAnchors(text, resolved, anchors)
	if err != nil {
		return nil, err
	}

	return e.pass5OrderOutput(resolved), nil
}

// pass5OrderOutput sorts ascending by timestamp, stable with respect
// to insertion order for ties.
func (e *Extractor) pass5OrderOutput(resolved []resolvedMeta) []*model.TemporalEvent {
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].event.Timestamp.Before(resolved[j].event.Timestamp)
	})
	events := make([]*model.TemporalEvent, len(resolved))
	for i, m := range resolved {
		events[i] = m.event
	}
	return events
}

// contextWindow returns the clamped [start-radius, end+radius) slice
// of text around span s, trimmed, with newlines collapsed to spaces.
func contextWindow(text string, s span, radius int) (string, span) {
	start := s.start - radius
	if start < 0 {
		start = 0
	}
	end := s.end + radius
	if end > len(text) {
		end = len(text)
	}
	raw := text[start:end]
	raw = strings.ReplaceAll(raw, "\n", " ")
	raw = strings.ReplaceAll(raw, "\r", " ")
	return strings.TrimSpace(raw), span{start: start, end: end}
}

// maskSpan removes the portion of windowText that corresponds to
// cSpan (translated into window-relative offsets) and joins the
// remaining outer parts with a single space.
func maskSpan(windowText string, window, cSpan span) string {
	relStart := cSpan.start - window.start
	relEnd := cSpan.end - window.start
	if relStart < 0 {
		relStart = 0
	}
	if relEnd > len(windowText) {
		relEnd = len(windowText)
	}
	if relStart >= relEnd || relStart > len(windowText) {
		return strings.TrimSpace(windowText)
	}
	left := strings.TrimSpace(windowText[:relStart])
	right := strings.TrimSpace(windowText[relEnd:])
	switch {
	case left == "":
		return right
	case right == "":
		return left
	default:
		return left + " " + right
	}
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// describeAnchorLink builds the derived-event description: "Derived
// from anchor '<full match>' linked to <first 20 chars of
// description>...". The ellipsis is literal and always present,
// independent of whether truncation occurred.
func describeAnchorLink(fullMatch string, anchorEventDescription string) string {
	return fmt.Sprintf("Derived from anchor '%s' linked to %s…", fullMatch, truncate(anchorEventDescription, 20))
}
