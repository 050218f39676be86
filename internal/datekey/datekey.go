// Package datekey turns instants into local calendar-day identifiers.
//
// Every daily record (completion log entries, reset markers) is keyed by the
// local date of the instant, never the UTC date, so that late-night and
// early-morning activity lands on the day the user experienced it.
package datekey

import (
	"fmt"
	"time"
)

const (
	// Layout is the YYYY-MM-DD layout used for completion log keys.
	Layout = "2006-01-02"

	// DayLayout is the day-granularity marker layout used for reset markers.
	// It matches the shape of a browser Date.toDateString() value.
	DayLayout = "Mon Jan 02 2006"
)

// Key returns the zero-padded YYYY-MM-DD key of t's local calendar date.
func Key(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// Day returns the reset marker string for t's local calendar date.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// Yesterday returns the key for the local calendar day before t.
func Yesterday(t time.Time) string {
	return Key(StartOfDay(t).AddDate(0, 0, -1))
}

// StartOfDay returns local midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMidnight returns the first instant of the calendar day after t.
func NextMidnight(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// Parse parses a YYYY-MM-DD key as local midnight in loc.
func Parse(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("datekey: invalid key %q: %w", key, err)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar date in a's location.
func SameDay(a, b time.Time) bool {
	return Key(a) == Key(b.In(a.Location()))
}
