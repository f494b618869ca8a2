package feed

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"campusair-server/internal/modules/air/types"
)

// Config is the feeds YAML file: where the CSV exports live, which column
// layout each one uses, the station metadata and the device-id alias table.
type Config struct {
	Timezone     string         `yaml:"timezone"`
	FetchTimeout time.Duration  `yaml:"fetchTimeout"`
	Sources      []SourceConfig `yaml:"sources"`
	// Aliases maps extra raw device ids to a station id ("station_a" or
	// "station_b"), extending the built-in historical alias table.
	Aliases  map[string]string   `yaml:"aliases"`
	Stations []types.StationInfo `yaml:"stations"`
}

// SourceConfig is one feed entry. Schema may be omitted to use the current
// feed revision's layout.
type SourceConfig struct {
	Name   string  `yaml:"name"`
	URL    string  `yaml:"url"`
	Schema *Schema `yaml:"schema"`
}

// LoadConfig reads and validates the feeds YAML file.
func LoadConfig(filename string) (*Config, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading feeds file: %w", err)
	}

	c := &Config{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("parsing feeds yaml: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("feeds config: at least one source required")
	}
	for i, src := range c.Sources {
		if src.URL == "" {
			return fmt.Errorf("feeds config: source %d (%s) has no url", i, src.Name)
		}
		if src.Schema != nil {
			if err := src.Schema.Validate(); err != nil {
				return fmt.Errorf("feeds config: source %s: %w", src.Name, err)
			}
		}
	}
	for id, station := range c.Aliases {
		if _, ok := parseStation(station); !ok {
			return fmt.Errorf("feeds config: alias %q maps to unknown station %q", id, station)
		}
	}
	return nil
}

// Location resolves the configured timezone, defaulting to the source feed's
// locale (Asia/Bangkok) when unset.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Timezone
	if tz == "" {
		tz = "Asia/Bangkok"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("feeds config: timezone %q: %w", tz, err)
	}
	return loc, nil
}

// AliasTable converts the raw alias entries into typed station mappings.
func (c *Config) AliasTable() map[string]types.Station {
	out := make(map[string]types.Station, len(c.Aliases))
	for id, station := range c.Aliases {
		if s, ok := parseStation(station); ok {
			out[id] = s
		}
	}
	return out
}

// SchemaFor returns the source's schema, falling back to the default layout.
func (s SourceConfig) SchemaFor() Schema {
	if s.Schema != nil {
		return *s.Schema
	}
	return DefaultSchema()
}

func parseStation(s string) (types.Station, bool) {
	switch types.Station(s) {
	case types.StationA:
		return types.StationA, true
	case types.StationB:
		return types.StationB, true
	default:
		return types.StationUnknown, false
	}
}
