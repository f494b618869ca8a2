package aggregate

import (
	"math"
	"sort"

	"campusair-server/internal/modules/air/timekey"
	"campusair-server/internal/modules/air/types"
)

type dailyAccum struct {
	sumA   float64
	countA int
	sumB   float64
	countB int
}

// DailyStats groups both stations' readings by day and returns the per-day
// mean PM2.5 for each, restricted to the most recent window day-buckets,
// ascending by date. A station with no readings on a day reports 0 for that
// day. Missing PM2.5 values are excluded from both sum and count.
func DailyStats(a, b []types.Reading, window int) []types.DailyStat {
	if window <= 0 {
		return nil
	}

	buckets := make(map[string]*dailyAccum)
	accumulate := func(readings []types.Reading, isA bool) {
		for _, r := range readings {
			if r.PM25 == nil {
				continue
			}
			key := timekey.DayKey(r.Timestamp)
			acc := buckets[key]
			if acc == nil {
				acc = &dailyAccum{}
				buckets[key] = acc
			}
			if isA {
				acc.sumA += *r.PM25
				acc.countA++
			} else {
				acc.sumB += *r.PM25
				acc.countB++
			}
		}
	}
	accumulate(a, true)
	accumulate(b, false)

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > window {
		keys = keys[len(keys)-window:]
	}

	stats := make([]types.DailyStat, 0, len(keys))
	for _, key := range keys {
		acc := buckets[key]
		stats = append(stats, types.DailyStat{
			DayKey: key,
			Label:  timekey.DayLabel(key),
			PM25A:  roundedMean(acc.sumA, acc.countA),
			PM25B:  roundedMean(acc.sumB, acc.countB),
		})
	}
	return stats
}

func roundedMean(sum float64, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}
