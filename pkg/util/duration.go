package util

import (
	"time"

	iso8601 "github.com/senseyeio/duration"
)

// LookbackStart returns the instant that lies the given ISO 8601 duration
// before now. Calendar components (months, years) are evaluated relative to
// now.
func LookbackStart(now time.Time, window iso8601.Duration) time.Time {
	return now.Add(-window.Shift(now).Sub(now))
}

// ParseLookback parses an ISO 8601 duration, falling back to a default when
// the value is empty or unparseable.
func ParseLookback(value string, fallback string) iso8601.Duration {
	if value == "" {
		value = fallback
	}

	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		parsed, _ = iso8601.ParseISO8601(fallback)
	}

	return parsed
}
