package feed

import "fmt"

// Schema describes the positional column layout of one feed revision. The
// sheet export has changed layout between revisions, so offsets live in
// configuration instead of being hard-coded at the call sites.
type Schema struct {
	Date        int `yaml:"date"`
	Time        int `yaml:"time"`
	DeviceID    int `yaml:"deviceId"`
	PM25        int `yaml:"pm25"`
	PM10        int `yaml:"pm10"`
	Temperature int `yaml:"temperature"`
	Humidity    int `yaml:"humidity"`
}

// DefaultSchema matches the current feed revision: date, time, device id,
// one unused column, then the four measurements.
func DefaultSchema() Schema {
	return Schema{
		Date:        0,
		Time:        1,
		DeviceID:    2,
		PM25:        4,
		PM10:        5,
		Temperature: 6,
		Humidity:    7,
	}
}

// Validate rejects schemas with negative or colliding offsets.
func (s Schema) Validate() error {
	offsets := []int{s.Date, s.Time, s.DeviceID, s.PM25, s.PM10, s.Temperature, s.Humidity}
	seen := make(map[int]bool, len(offsets))
	for _, off := range offsets {
		if off < 0 {
			return fmt.Errorf("schema: negative column offset %d", off)
		}
		if seen[off] {
			return fmt.Errorf("schema: column offset %d used twice", off)
		}
		seen[off] = true
	}
	return nil
}

// minWidth is the row width needed to address the identity columns
// (date, time, device id). Measurement columns beyond a short row are treated
// as missing instead of failing the row.
func (s Schema) minWidth() int {
	w := s.Date
	if s.Time > w {
		w = s.Time
	}
	if s.DeviceID > w {
		w = s.DeviceID
	}
	return w + 1
}
