// Package types holds the data model shared by the air module's feed,
// aggregation and HTTP layers.
package types

import "time"

// Station is one of the two fixed monitoring locations on campus.
type Station string

const (
	StationUnknown Station = ""
	StationA       Station = "station_a" // Learning Building 1
	StationB       Station = "station_b" // Library
)

// StationInfo is the static metadata for a station, served to the map view.
type StationInfo struct {
	ID        Station `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Reading is one measurement row from a feed. Measurement fields are nil when
// the source field did not parse as a number; they are never coerced to zero.
type Reading struct {
	Date        string    `json:"date"` // as received, DD/MM/YYYY
	Time        string    `json:"time"` // as received, HH:MM:SS
	DeviceID    string    `json:"deviceId"`
	Station     Station   `json:"station,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	PM25        *float64  `json:"pm25"`
	PM10        *float64  `json:"pm10"`
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
}

// DeviceSnapshot is the latest valid reading for a station plus derived state.
type DeviceSnapshot struct {
	Reading       Reading  `json:"reading"`
	HourlyAverage *float64 `json:"hourlyAverage"`
	Offline       bool     `json:"offline"`
	AlertActive   bool     `json:"alertActive"`
}

// DailyStat is the per-day mean PM2.5 for both stations. A value of 0 means
// the station contributed no readings that day.
type DailyStat struct {
	DayKey string `json:"dayKey"` // YYYY-MM-DD
	Label  string `json:"label"`  // display label, e.g. "2 Jan"
	PM25A  int    `json:"pm25A"`
	PM25B  int    `json:"pm25B"`
}

// SeriesSlot holds one station's measurements at a time-series point.
type SeriesSlot struct {
	PM25        *float64 `json:"pm25,omitempty"`
	PM10        *float64 `json:"pm10,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
}

// TimeSeriesPoint is one entry per distinct timestamp observed across both
// stations' reading streams.
type TimeSeriesPoint struct {
	Timestamp time.Time   `json:"timestamp"`
	TimeLabel string      `json:"timeLabel"` // HH:MM
	Date      string      `json:"date"`      // DD/MM/YYYY as received
	StationA  *SeriesSlot `json:"stationA,omitempty"`
	StationB  *SeriesSlot `json:"stationB,omitempty"`
}

// BestLocation names the station with the lower instantaneous PM2.5.
type BestLocation struct {
	Station Station `json:"station"`
	Value   float64 `json:"value"`
}

// Snapshot is the published application state, replaced wholesale after every
// successful poll cycle and read freely by the view layer.
type Snapshot struct {
	StationA           *DeviceSnapshot   `json:"stationA"`
	StationB           *DeviceSnapshot   `json:"stationB"`
	DailyStats         []DailyStat       `json:"dailyStats"`
	TimeSeries         []TimeSeriesPoint `json:"timeSeries"`
	RawReadings        []Reading         `json:"rawReadings"`
	AveragePM25        float64           `json:"averagePM25"`
	BestLocation       *BestLocation     `json:"bestLocation"`
	Cycle              uint64            `json:"cycle"`
	LastError          string            `json:"lastError,omitempty"`
	LastSuccessfulPoll time.Time         `json:"lastSuccessfulPoll"`
}
