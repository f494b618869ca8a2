package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"campusair-server/internal/modules/air/types"
)

func writeFeedsFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing feeds file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a full config", func(t *testing.T) {
		path := writeFeedsFile(t, `
timezone: Asia/Bangkok
fetchTimeout: 15s
sources:
  - name: learning-building
    url: https://example.com/a.csv
    schema:
      date: 0
      time: 1
      deviceId: 2
      pm25: 4
      pm10: 5
      temperature: 6
      humidity: 7
  - name: library
    url: https://example.com/b.csv
aliases:
  NODE-07: station_b
stations:
  - id: station_a
    name: Learning Building 1
    latitude: 14.881556
    longitude: 102.016861
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if len(cfg.Sources) != 2 {
			t.Fatalf("expected 2 sources, got %d", len(cfg.Sources))
		}
		if cfg.FetchTimeout != 15*time.Second {
			t.Errorf("expected fetchTimeout 15s, got %v", cfg.FetchTimeout)
		}
		if got := cfg.Sources[0].SchemaFor(); got.PM25 != 4 {
			t.Errorf("expected explicit schema, got %+v", got)
		}
		if got := cfg.Sources[1].SchemaFor(); got != DefaultSchema() {
			t.Errorf("expected default schema for source without one, got %+v", got)
		}
		aliases := cfg.AliasTable()
		if aliases["NODE-07"] != types.StationB {
			t.Errorf("expected NODE-07 alias to map to station_b, got %q", aliases["NODE-07"])
		}
		if len(cfg.Stations) != 1 || cfg.Stations[0].ID != types.StationA {
			t.Errorf("unexpected stations metadata: %+v", cfg.Stations)
		}
	})

	t.Run("rejects config without sources", func(t *testing.T) {
		path := writeFeedsFile(t, "timezone: UTC\n")
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected error for config without sources")
		}
	})

	t.Run("rejects source without url", func(t *testing.T) {
		path := writeFeedsFile(t, "sources:\n  - name: broken\n")
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected error for source without url")
		}
	})

	t.Run("rejects alias to unknown station", func(t *testing.T) {
		path := writeFeedsFile(t, `
sources:
  - name: a
    url: https://example.com/a.csv
aliases:
  NODE-07: station_c
`)
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected error for alias to unknown station")
		}
	})

	t.Run("defaults the timezone", func(t *testing.T) {
		path := writeFeedsFile(t, "sources:\n  - name: a\n    url: https://example.com/a.csv\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		loc, err := cfg.Location()
		if err != nil {
			t.Fatalf("Location: %v", err)
		}
		if loc.String() != "Asia/Bangkok" {
			t.Errorf("expected Asia/Bangkok default, got %s", loc)
		}
	})
}
