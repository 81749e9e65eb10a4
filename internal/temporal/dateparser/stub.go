package dateparser

import "time"

// StubParser is a canned Parser for exercising the extractor without
// depending on the real natural-language parser's behavior.
type StubParser struct {
	Matches []Match
	Err     error
}

// Parse ignores text, reference, and zone and returns the canned
// matches or error.
func (s *StubParser) Parse(text string, reference time.Time, zone *time.Location) ([]Match, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Matches, nil
}
