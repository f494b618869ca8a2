// Package feed fetches the remote CSV exports and turns them into typed
// readings. Individual malformed rows never fail a parse; only transport
// failures surface as errors.
package feed

import (
	"strconv"
	"strings"

	"campusair-server/internal/modules/air/classify"
	"campusair-server/internal/modules/air/timekey"
	"campusair-server/internal/modules/air/types"
)

// ParseStats counts data-quality events in one parse. The counters feed the
// Prometheus collectors; none of them is an error condition.
type ParseStats struct {
	Rows            int // data rows seen (header and blanks excluded)
	Dropped         int // rows dropped for unparsable date/time
	MalformedFields int // numeric fields that failed to parse
	UnknownDevices  int // rows whose device id matched no station
}

// Parser turns a raw CSV payload into an ordered sequence of readings,
// enriched with parsed timestamps and canonical stations.
type Parser struct {
	schema     Schema
	keyer      timekey.Keyer
	classifier *classify.Classifier
}

func NewParser(schema Schema, keyer timekey.Keyer, classifier *classify.Classifier) *Parser {
	return &Parser{schema: schema, keyer: keyer, classifier: classifier}
}

// Parse splits raw on line breaks, discards the header row and blank lines,
// and maps the remaining rows positionally through the schema. Rows with an
// unparsable date or time are dropped: they cannot be time-ordered, so they
// cannot be aggregated. Numeric fields that fail to parse become nil.
func (p *Parser) Parse(raw string) ([]types.Reading, ParseStats) {
	var stats ParseStats
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var readings []types.Reading
	header := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		stats.Rows++

		cols := strings.Split(line, ",")
		if len(cols) < p.schema.minWidth() {
			stats.Dropped++
			continue
		}

		date := strings.TrimSpace(cols[p.schema.Date])
		timeStr := strings.TrimSpace(cols[p.schema.Time])
		ts, ok := p.keyer.Parse(date, timeStr)
		if !ok {
			stats.Dropped++
			continue
		}

		deviceID := strings.TrimSpace(cols[p.schema.DeviceID])
		station := p.classifier.Classify(deviceID)
		if station == types.StationUnknown {
			stats.UnknownDevices++
		}

		readings = append(readings, types.Reading{
			Date:        date,
			Time:        timeStr,
			DeviceID:    deviceID,
			Station:     station,
			Timestamp:   ts,
			PM25:        p.field(cols, p.schema.PM25, &stats),
			PM10:        p.field(cols, p.schema.PM10, &stats),
			Temperature: p.field(cols, p.schema.Temperature, &stats),
			Humidity:    p.field(cols, p.schema.Humidity, &stats),
		})
	}
	return readings, stats
}

// field reads a numeric column defensively: out-of-range offsets and
// unparsable values both yield nil.
func (p *Parser) field(cols []string, off int, stats *ParseStats) *float64 {
	if off >= len(cols) {
		stats.MalformedFields++
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cols[off]), 64)
	if err != nil {
		stats.MalformedFields++
		return nil
	}
	return &v
}
