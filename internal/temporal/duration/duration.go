// Package duration interprets "<value> <unit>" fragments into calendar
// deltas. Fixed units (day, hour, minute, second, week) produce an
// exact delta and admit fractional values. Variable units (month,
// year) are integer-valued, truncating fractional values toward zero,
// and respect calendar arithmetic (month lengths, leap years) via
// time.AddDate rather than a fixed-width approximation.
package duration

import (
	"fmt"
	"math"
	"strings"
	"time"

	domerrors "github.com/tareqmamari/logs-mcp-server/internal/errors"
)

// Unit is one of the seven recognized duration units.
type Unit string

const (
	Year   Unit = "year"
	Month  Unit = "month"
	Week   Unit = "week"
	Day    Unit = "day"
	Hour   Unit = "hour"
	Minute Unit = "minute"
	Second Unit = "second"
)

// ParseUnit normalizes a unit token: case-insensitive, optional
// trailing "s" for the plural form.
func ParseUnit(raw string) (Unit, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, "s")
	switch Unit(s) {
	case Year, Month, Week, Day, Hour, Minute, Second:
		return Unit(s), nil
	default:
		return "", fmt.Errorf("unrecognized duration unit %q", raw)
	}
}

// IsVariable reports whether unit requires calendar-aware arithmetic
// (month lengths, leap years) rather than a fixed-width duration.
func IsVariable(unit Unit) bool {
	return unit == Month || unit == Year
}

// Apply adds value units to reference and returns the resulting
// instant. For fixed units the delta is exact and value may be
// fractional. For variable units value is truncated toward zero before
// being applied via time.AddDate, so "2.9 months" behaves as "2 months".
func Apply(reference time.Time, value float64, unit Unit) (time.Time, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return time.Time{}, domerrors.NewInvalidEventConfig("duration value must be finite")
	}

	switch unit {
	case Second:
		return reference.Add(time.Duration(value * float64(time.Second))), nil
	case Minute:
		return reference.Add(time.Duration(value * float64(time.Minute))), nil
	case Hour:
		return reference.Add(time.Duration(value * float64(time.Hour))), nil
	case Day:
		return reference.Add(time.Duration(value * 24 * float64(time.Hour))), nil
	case Week:
		return reference.Add(time.Duration(value * 7 * 24 * float64(time.Hour))), nil
	case Month:
		months := int(math.Trunc(value))
		return reference.AddDate(0, months, 0), nil
	case Year:
		years := int(math.Trunc(value))
		return reference.AddDate(years, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unrecognized duration unit %q", unit)
	}
}

// TotalMinutes returns an integer minute count for value units of unit:
// for variable units, compute by subtracting reference from (reference
// + delta) and flooring total seconds over 60. reference matters for
// variable units because month/year lengths vary with the calendar
// position; for fixed units the result is reference-independent.
func TotalMinutes(value float64, unit Unit, reference time.Time) (int, error) {
	end, err := Apply(reference, value, unit)
	if err != nil {
		return 0, err
	}
	seconds := end.Sub(reference).Seconds()
	return int(math.Floor(seconds / 60)), nil
}
