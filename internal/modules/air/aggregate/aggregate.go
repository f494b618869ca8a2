// Package aggregate derives the presentation-ready statistics from the two
// stations' reading streams: daily averages, hourly rolling averages, the
// merged time series and the summary values. Every computation is a pure
// function of its inputs plus "now"; nothing in here holds state between
// poll cycles.
package aggregate

import (
	"sort"
	"time"

	"campusair-server/internal/modules/air/types"
)

const (
	// HourlyWindow is how far back from a station's latest reading the
	// rolling average reaches.
	HourlyWindow = 60 * time.Minute
	// HourlyMaxGap stops the backward scan once two consecutive considered
	// readings are further apart than this.
	HourlyMaxGap = 120 * time.Minute
	// SeriesLimit caps the merged time series after sorting.
	SeriesLimit = 50
)

// SplitByStation partitions readings into the two per-station streams.
// Readings from unknown devices belong to neither; they stay only in the raw
// log.
func SplitByStation(readings []types.Reading) (a, b []types.Reading) {
	for _, r := range readings {
		switch r.Station {
		case types.StationA:
			a = append(a, r)
		case types.StationB:
			b = append(b, r)
		}
	}
	return a, b
}

// Latest returns the most recent reading by parsed timestamp, or nil when the
// stream is empty. The feed is only roughly chronological, so this scans
// rather than trusting the final row.
func Latest(readings []types.Reading) *types.Reading {
	var latest *types.Reading
	for i := range readings {
		if latest == nil || readings[i].Timestamp.After(latest.Timestamp) {
			latest = &readings[i]
		}
	}
	if latest == nil {
		return nil
	}
	cp := *latest
	return &cp
}

// sortedByTime returns a copy of readings in ascending timestamp order. The
// source feed usually appends chronologically but does not guarantee it, so
// the windowing code sorts explicitly instead of trusting input order.
func sortedByTime(readings []types.Reading) []types.Reading {
	out := make([]types.Reading, len(readings))
	copy(out, readings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
