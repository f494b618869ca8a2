package aggregate

import (
	"sort"

	"campusair-server/internal/modules/air/timekey"
	"campusair-server/internal/modules/air/types"
)

// MergeSeries unions both stations' readings by exact timestamp. Two stations
// reporting at the same instant share a single point; the result is ascending
// by timestamp and truncated to the most recent limit points.
func MergeSeries(a, b []types.Reading, limit int) []types.TimeSeriesPoint {
	points := make(map[int64]*types.TimeSeriesPoint)

	add := func(readings []types.Reading, isA bool) {
		for _, r := range readings {
			key := r.Timestamp.UnixNano()
			p := points[key]
			if p == nil {
				p = &types.TimeSeriesPoint{
					Timestamp: r.Timestamp,
					TimeLabel: timekey.HourLabel(r.Timestamp),
					Date:      r.Date,
				}
				points[key] = p
			}
			slot := &types.SeriesSlot{
				PM25:        r.PM25,
				PM10:        r.PM10,
				Temperature: r.Temperature,
				Humidity:    r.Humidity,
			}
			if isA {
				p.StationA = slot
			} else {
				p.StationB = slot
			}
		}
	}
	add(a, true)
	add(b, false)

	out := make([]types.TimeSeriesPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
