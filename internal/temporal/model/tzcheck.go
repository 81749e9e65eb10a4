package model

import "time"

// IsNaive reports whether t should be treated as timezone-naive.
//
// Go's time.Time has no representation of a tz-naive instant the way
// Python's datetime does: every time.Time carries a *Location, and the
// zero value reports UTC. The one Location that is genuinely ambiguous
// is time.Local: it resolves to whatever zone the host process happens
// to be running in, an implicit, environment-dependent offset silently
// applied to a timestamp. So this package treats "located in
// time.Local" as naive and requires every timestamp crossing the
// temporal engine's API boundary to carry an explicit, deterministic
// zone (UTC or a loaded IANA location).
func IsNaive(t time.Time) bool {
	return t.Location() == time.Local
}
