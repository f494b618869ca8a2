package aggregate

import (
	"campusair-server/internal/modules/air/types"
)

// AveragePM25 is the mean of the stations' current representative PM2.5
// values: the hourly average when one exists, else the instantaneous latest.
// Stations without data are absent from the mean, not counted as zero.
func AveragePM25(a, b *types.DeviceSnapshot) float64 {
	var (
		sum   float64
		count int
	)
	for _, s := range []*types.DeviceSnapshot{a, b} {
		if v := representativePM25(s); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func representativePM25(s *types.DeviceSnapshot) *float64 {
	if s == nil {
		return nil
	}
	if s.HourlyAverage != nil {
		return s.HourlyAverage
	}
	return s.Reading.PM25
}

// Best returns the station with the lower instantaneous latest PM2.5.
// A tie goes to station A so the outcome is deterministic; with only one
// station reporting, that station wins by default. Nil when neither station
// has an instantaneous value.
func Best(a, b *types.DeviceSnapshot) *types.BestLocation {
	av := instantPM25(a)
	bv := instantPM25(b)
	switch {
	case av != nil && bv != nil:
		if *av <= *bv {
			return &types.BestLocation{Station: types.StationA, Value: *av}
		}
		return &types.BestLocation{Station: types.StationB, Value: *bv}
	case av != nil:
		return &types.BestLocation{Station: types.StationA, Value: *av}
	case bv != nil:
		return &types.BestLocation{Station: types.StationB, Value: *bv}
	default:
		return nil
	}
}

func instantPM25(s *types.DeviceSnapshot) *float64 {
	if s == nil {
		return nil
	}
	return s.Reading.PM25
}
