package aggregate

import (
	"time"

	"campusair-server/internal/modules/air/types"
)

// HourlyAverage computes the rolling mean PM2.5 over the window ending at the
// station's own latest reading (not wall-clock now). The scan walks backward
// from the latest reading and stops at the window edge, or early when a gap
// between consecutive considered readings exceeds maxGap. Returns nil when
// the stream is empty or no in-window reading carries a PM2.5 value.
func HourlyAverage(readings []types.Reading, window, maxGap time.Duration) *float64 {
	if len(readings) == 0 {
		return nil
	}

	sorted := sortedByTime(readings)
	latest := sorted[len(sorted)-1]
	cutoff := latest.Timestamp.Add(-window)

	var (
		sum   float64
		count int
	)
	prev := latest.Timestamp
	for i := len(sorted) - 1; i >= 0; i-- {
		r := sorted[i]
		if r.Timestamp.Before(cutoff) {
			break
		}
		if prev.Sub(r.Timestamp) > maxGap {
			break
		}
		prev = r.Timestamp
		if r.PM25 != nil {
			sum += *r.PM25
			count++
		}
	}

	if count == 0 {
		// Only the latest reading (or nothing) contributed; its own value,
		// missing or not, is the answer.
		return latest.PM25
	}
	avg := sum / float64(count)
	return &avg
}
