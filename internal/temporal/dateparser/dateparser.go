// Package dateparser wraps two date-phrase parsing libraries behind a
// single abstract capability: Parse(text, reference, zone) ->
// [(snippet, instant)]. Kept behind an interface so the extractor can
// be tested with a stub instead of real text.
package dateparser

import (
	"regexp"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// absoluteDateToken matches numeric absolute-date formats (ISO, US
// slash-separated, dot-separated) that when's ruleset does not parse:
// when targets natural-language phrasing, not bare numeric dates.
var absoluteDateToken = regexp.MustCompile(`\b\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}\b`)

// Match is one recognized date phrase: the verbatim source snippet and
// the instant it resolves to, anchored against the reference time and
// zone supplied to Parse.
type Match struct {
	Snippet string
	Instant time.Time
}

// Parser is the abstract date-phrase parsing capability. Implementations
// must be safe to reuse across calls.
type Parser interface {
	// Parse scans text for date phrases and returns every non-
	// overlapping match found, in source order. Instants are resolved
	// relative to reference and normalized into zone; reference and
	// the returned instants are always timezone-aware.
	Parse(text string, reference time.Time, zone *time.Location) ([]Match, error)
}

// NaturalLanguageParser implements Parser over olebedev/when (natural-
// language phrases: "two days after", "next Monday") with
// araddon/dateparse as a fallback for absolute formats when's ruleset
// does not cover.
type NaturalLanguageParser struct {
	w *when.Parser
}

// NewNaturalLanguageParser builds a Parser preloaded with the common
// and English rule sets, the combination the ecosystem's MCP time
// servers standardize on.
func NewNaturalLanguageParser() *NaturalLanguageParser {
	w := when.New(nil)
	w.Add(common.All...)
	w.Add(en.All...)
	return &NaturalLanguageParser{w: w}
}

// Parse repeatedly asks the underlying when.Parser for the next match,
// advancing past each one found, until no further match exists. when
// reports at most one match per call, so scanning for all occurrences
// in a longer passage requires this drive loop. Spans when's ruleset
// leaves untouched are then rescanned for bare numeric absolute dates
// via ParseAbsolute, and the two match sets are merged in source order.
func (p *NaturalLanguageParser) Parse(text string, reference time.Time, zone *time.Location) ([]Match, error) {
	if zone == nil {
		zone = time.UTC
	}
	reference = reference.In(zone)

	type located struct {
		Match
		start, end int
	}

	var found []located
	offset := 0
	remaining := text

	for {
		res, err := p.w.Parse(remaining, reference)
		if err != nil || res == nil {
			break
		}

		start := offset + res.Index
		end := start + len(res.Text)
		instant := res.Time.In(zone)
		found = append(found, located{
			Match: Match{Snippet: res.Text, Instant: instant},
			start: start,
			end:   end,
		})

		advance := res.Index + len(res.Text)
		if advance <= 0 || advance > len(remaining) {
			break
		}
		offset += advance
		remaining = text[offset:]
		if remaining == "" {
			break
		}
	}

	for _, loc := range absoluteDateToken.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		overlaps := false
		for _, f := range found {
			if start < f.end && end > f.start {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		token := text[start:end]
		instant, err := ParseAbsolute(token, zone)
		if err != nil {
			continue
		}
		found = append(found, located{
			Match: Match{Snippet: token, Instant: instant},
			start: start,
			end:   end,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].start < found[j].start
	})

	matches := make([]Match, len(found))
	for i, f := range found {
		matches[i] = f.Match
	}

	return matches, nil
}

// ParseAbsolute parses a single standalone date/time string of
// unspecified format (not embedded in a longer passage) using
// araddon/dateparse's format-guessing parser. NaturalLanguageParser.Parse
// uses it as the fallback for numeric date tokens that when leaves
// unmatched.
func ParseAbsolute(s string, zone *time.Location) (time.Time, error) {
	if zone == nil {
		zone = time.UTC
	}
	return dateparse.ParseIn(s, zone)
}
