// Package timekey parses the feed's locale-formatted date/time strings into
// comparable instants and bucket keys.
package timekey

import (
	"fmt"
	"time"
)

// Keyer parses "DD/MM/YYYY" dates and "HH:MM:SS" times in a fixed location.
// The zero Keyer is not usable; construct with New.
type Keyer struct {
	loc *time.Location
}

func New(loc *time.Location) Keyer {
	if loc == nil {
		loc = time.UTC
	}
	return Keyer{loc: loc}
}

// Parse combines a date and time string into a single instant. Seconds are
// optional and default to :00. ok is false when either part is malformed;
// callers drop such records instead of aggregating them.
func (k Keyer) Parse(date, timeStr string) (t time.Time, ok bool) {
	for _, layout := range []string{"02/01/2006 15:04:05", "02/01/2006 15:04"} {
		t, err := time.ParseInLocation(layout, date+" "+timeStr, k.loc)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayKey returns the sortable day-bucket key for t, e.g. "2025-01-02".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// HourLabel returns the minute-truncated display label for t, e.g. "08:30".
func HourLabel(t time.Time) string {
	return t.Format("15:04")
}

// DayLabel returns the human-readable label for a day key, e.g. "2 Jan".
// The key is expected to come from DayKey; malformed keys are returned as-is.
func DayLabel(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%d %s", t.Day(), t.Format("Jan"))
}
