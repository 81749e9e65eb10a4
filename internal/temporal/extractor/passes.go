package extractor

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tareqmamari/logs-mcp-server/internal/temporal/duration"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/fuzzy"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/model"
)

// pass1StandardExtraction invokes the date-phrase parser once over the
// full text and builds one resolvedMeta per accepted (snippet,
// datetime) pair.
func (e *Extractor) pass1StandardExtraction(text string, reference time.Time) ([]resolvedMeta, error) {
	matches, err := e.parser.Parse(text, reference, time.UTC)
	if err != nil {
		e.logger.Warn("date-phrase parser failed; proceeding with no Pass 1 events", zap.Error(err))
		matches = nil
	}

	var resolved []resolvedMeta
	cursor := 0

	for i, m := range matches {
		if pureDurationPattern.MatchString(strings.TrimSpace(m.Snippet)) {
			continue
		}

		ts := m.Instant.UTC()

		start := strings.Index(text[cursor:], m.Snippet)
		if start == -1 {
			start = strings.Index(text, m.Snippet)
			if start == -1 {
				e.logger.Debug("snippet not locatable in source text; dropping event", zap.String("snippet", m.Snippet))
				continue
			}
		} else {
			start += cursor
		}
		end := start + len(m.Snippet)
		cursor = end
		sp := span{start: start, end: end}

		description, _ := contextWindow(text, sp, contextRadius)
		granularity := assignGranularity(ts, m.Snippet)

		var durationMinutes *int
		var endsAt *time.Time
		if e.enableDurationSearch {
			durationMinutes, endsAt = e.findDurationWindow(text, sp, ts, resolved, nil)
		}

		event, err := model.NewTemporalEvent(eventID("std", i), description, ts, granularity, durationMinutes, endsAt, m.Snippet)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, resolvedMeta{event: event, span: sp, isAnchored: false})
	}

	return resolved, nil
}

// assignGranularity downgrades a midnight timestamp to date-only
// granularity unless the source snippet spells out "00:00" explicitly.
func assignGranularity(ts time.Time, snippet string) model.Granularity {
	isMidnight := ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 && ts.Nanosecond() == 0
	if isMidnight && !strings.Contains(snippet, "00:00") {
		return model.DateOnly
	}
	return model.Precise
}

// findDurationWindow scans a ±50-char window around sp for a duration
// fragment, excluding any match overlapping or separated by a known
// span (forbidden ranges), and picks the closest surviving match.
func (e *Extractor) findDurationWindow(text string, sp span, ts time.Time, resolved []resolvedMeta, anchors []anchorCandidate) (*int, *time.Time) {
	window, windowSpan := contextWindowRaw(text, sp, contextRadius)

	locs := durationFragmentPattern.FindAllStringSubmatchIndex(window, -1)
	if len(locs) == 0 {
		return nil, nil
	}

	var forbidden []span
	for _, m := range resolved {
		if m.span != sp {
			forbidden = append(forbidden, m.span)
		}
	}
	for _, a := range anchors {
		forbidden = append(forbidden, a.span)
	}

	type candidate struct {
		sp       span
		value    float64
		unit     string
		distance int
	}
	var best *candidate

	for _, loc := range locs {
		fragSpan := span{start: windowSpan.start + loc[0], end: windowSpan.start + loc[1]}
		if isForbidden(fragSpan, sp, forbidden) {
			continue
		}
		value, err := strconv.ParseFloat(window[loc[2]:loc[3]], 64)
		if err != nil {
			continue
		}
		unit := window[loc[4]:loc[5]]
		dist := sp.gap(fragSpan)
		if dist < 0 {
			dist = -dist
		}
		if best == nil || dist < best.distance {
			best = &candidate{sp: fragSpan, value: value, unit: unit, distance: dist}
		}
	}
	if best == nil {
		return nil, nil
	}

	unit, err := duration.ParseUnit(best.unit)
	if err != nil {
		return nil, nil
	}
	minutes, err := duration.TotalMinutes(best.value, unit, ts)
	if err != nil {
		return nil, nil
	}
	ea, err := duration.Apply(ts, best.value, unit)
	if err != nil {
		return nil, nil
	}
	if !ea.After(ts) {
		return nil, nil
	}
	return &minutes, &ea
}

// isForbidden reports whether fragSpan overlaps any forbidden span, or
// is separated from owner by one (the "intervening range" check).
func isForbidden(fragSpan, owner span, forbidden []span) bool {
	for _, f := range forbidden {
		if fragSpan.overlaps(f) {
			return true
		}
		if between(owner, fragSpan, f) {
			return true
		}
	}
	return false
}

// between reports whether span f lies entirely between a and b on the
// text, i.e. f intervenes between owner a and candidate fragment b.
func between(a, b, f span) bool {
	lo, hi := a, b
	if lo.start > hi.start {
		lo, hi = hi, lo
	}
	return f.start >= lo.end && f.end <= hi.start
}

// contextWindowRaw is contextWindow without trimming or newline
// collapsing, used where byte offsets into the window must map back
// onto the original text (duration-fragment search).
func contextWindowRaw(text string, s span, radius int) (string, span) {
	start := s.start - radius
	if start < 0 {
		start = 0
	}
	end := s.end + radius
	if end > len(text) {
		end = len(text)
	}
	return text[start:end], span{start: start, end: end}
}

// pass2DetectAnchorCandidates scans the full text for relative-offset
// anchor phrases ("N unit after/before <phrase>").
func (e *Extractor) pass2DetectAnchorCandidates(text string) []anchorCandidate {
	locs := anchorCandidatePattern.FindAllStringSubmatchIndex(text, -1)
	candidates := make([]anchorCandidate, 0, len(locs))
	for _, loc := range locs {
		value, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		if err != nil {
			continue
		}
		unit := strings.ToLower(text[loc[4]:loc[5]])
		direction := strings.ToLower(text[loc[6]:loc[7]])
		phraseStart, phraseEnd := loc[8], loc[9]
		anchorPhrase := strings.TrimSpace(text[phraseStart:phraseEnd])
		if anchorPhrase == "" {
			continue
		}

		candidates = append(candidates, anchorCandidate{
			value:        value,
			unit:         unit,
			direction:    direction,
			anchorPhrase: anchorPhrase,
			fullMatch:    text[loc[0]:phraseEnd],
			span:         span{start: loc[0], end: phraseEnd},
		})
	}
	return candidates
}

// pass3PruneOverlapping removes any Pass-1 event whose span overlaps
// an anchor candidate span.
func (e *Extractor) pass3PruneOverlapping(resolved []resolvedMeta, anchors []anchorCandidate) []resolvedMeta {
	kept := make([]resolvedMeta, 0, len(resolved))
	for _, m := range resolved {
		overlapsAnchor := false
		for _, a := range anchors {
			if m.span.overlaps(a.span) {
				overlapsAnchor = true
				break
			}
		}
		if !overlapsAnchor {
			kept = append(kept, m)
		}
	}
	return kept
}

// pass4ResolveAnchors runs a bounded fixed-point loop that links each
// anchor candidate to the best-matching resolved event and derives a
// new TemporalEvent from it.
func (e *Extractor) pass4ResolveAnchors(text string, resolved []resolvedMeta, anchors []anchorCandidate) ([]resolvedMeta, error) {
	unresolved := make([]anchorCandidate, len(anchors))
	copy(unresolved, anchors)

	maxIterations := len(anchors) + 1
	for iter := 0; iter < maxIterations; iter++ {
		progress := false
		var stillUnresolved []anchorCandidate

		for i := range unresolved {
			c := unresolved[i]
			best, _, found := bestMatch(text, c, resolved)
			if !found {
				stillUnresolved = append(stillUnresolved, c)
				continue
			}

			delta, err := duration.ParseUnit(c.unit)
			if err != nil {
				stillUnresolved = append(stillUnresolved, c)
				continue
			}

			value := c.value
			if c.direction == "before" {
				value = -value
			}
			newTime, err := duration.Apply(best.event.Timestamp, value, delta)
			if err != nil {
				stillUnresolved = append(stillUnresolved, c)
				continue
			}

			description := describeAnchorLink(c.fullMatch, best.event.Description)
			event, err := model.NewTemporalEvent(eventID("anchor", len(resolved)), description, newTime, best.event.Granularity, nil, nil, c.fullMatch)
			if err != nil {
				return nil, err
			}

			resolved = append(resolved, resolvedMeta{event: event, span: c.span, isAnchored: true})
			progress = true
		}

		unresolved = stillUnresolved
		if !progress {
			break
		}
	}

	for _, c := range unresolved {
		e.logger.Debug("anchor candidate unresolved after fixed-point loop; dropping",
			zap.String("anchor_phrase", c.anchorPhrase))
	}

	return resolved, nil
}

// bestMatch scores every resolved event against the candidate's
// anchor phrase, keeps those at or above the threshold, and returns
// the one with the highest score (ties broken by smallest distance).
func bestMatch(text string, c anchorCandidate, resolved []resolvedMeta) (resolvedMeta, float64, bool) {
	type scored struct {
		meta     resolvedMeta
		score    float64
		distance int
	}
	var candidates []scored

	for _, m := range resolved {
		rawWindow, rawSpan := contextWindowRaw(text, m.span, contextRadius)
		var maskedContext string
		if rawSpan.overlaps(c.span) {
			maskedContext = maskSpan(rawWindow, rawSpan, c.span)
		} else {
			maskedContext = m.event.Description
		}

		score := fuzzy.Ratio(c.anchorPhrase, maskedContext)
		if s := fuzzy.Ratio(c.anchorPhrase, m.event.SourceSnippet); s > score {
			score = s
		}
		if score < anchorScoreThreshold {
			continue
		}

		// Distance counts the characters from the end of m to the start
		// of c; an event overlapping or following c counts as 0.
		dist := m.span.gap(c.span)
		if dist < 0 {
			dist = 0
		}
		candidates = append(candidates, scored{meta: m, score: score, distance: dist})
	}

	if len(candidates) == 0 {
		return resolvedMeta{}, 0, false
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.score > best.score || (cand.score == best.score && cand.distance < best.distance) {
			best = cand
		}
	}
	return best.meta, best.score, true
}

// eventID assigns a deterministic, human-inspectable identifier; the
// core never needs global uniqueness beyond a single extraction call.
func eventID(kind string, index int) string {
	return kind + "-" + strconv.Itoa(index)
}
