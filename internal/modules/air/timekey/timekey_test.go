package timekey

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	k := New(time.UTC)

	t.Run("full date and time", func(t *testing.T) {
		got, ok := k.Parse("01/01/2025", "08:30:15")
		if !ok {
			t.Fatal("Parse returned ok=false")
		}
		want := time.Date(2025, 1, 1, 8, 30, 15, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("Parse = %v; want %v", got, want)
		}
	})

	t.Run("seconds optional", func(t *testing.T) {
		got, ok := k.Parse("15/06/2025", "23:59")
		if !ok {
			t.Fatal("Parse returned ok=false")
		}
		want := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("Parse = %v; want %v", got, want)
		}
	})

	t.Run("day-first ordering", func(t *testing.T) {
		got, ok := k.Parse("02/03/2025", "00:00:00")
		if !ok {
			t.Fatal("Parse returned ok=false")
		}
		if got.Day() != 2 || got.Month() != time.March {
			t.Errorf("Parse = %v; want day=2 month=March", got)
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		cases := []struct{ date, time string }{
			{"2025-01-01", "08:00:00"}, // ISO date not accepted
			{"01/01/2025", "not-a-time"},
			{"", "08:00:00"},
			{"32/01/2025", "08:00:00"},
			{"01/01/2025", ""},
		}
		for _, c := range cases {
			if _, ok := k.Parse(c.date, c.time); ok {
				t.Errorf("Parse(%q, %q) ok=true; want false", c.date, c.time)
			}
		}
	})

	t.Run("respects location", func(t *testing.T) {
		loc := time.FixedZone("ICT", 7*3600)
		got, ok := New(loc).Parse("01/01/2025", "07:00:00")
		if !ok {
			t.Fatal("Parse returned ok=false")
		}
		if got.UTC().Hour() != 0 {
			t.Errorf("UTC hour = %d; want 0", got.UTC().Hour())
		}
	})
}

func TestDayKey(t *testing.T) {
	got := DayKey(time.Date(2025, 3, 7, 14, 2, 0, 0, time.UTC))
	if got != "2025-03-07" {
		t.Errorf("DayKey = %q; want 2025-03-07", got)
	}
}

func TestHourLabel(t *testing.T) {
	got := HourLabel(time.Date(2025, 3, 7, 8, 5, 59, 0, time.UTC))
	if got != "08:05" {
		t.Errorf("HourLabel = %q; want 08:05", got)
	}
}

func TestDayLabel(t *testing.T) {
	if got := DayLabel("2025-01-02"); got != "2 Jan" {
		t.Errorf("DayLabel = %q; want 2 Jan", got)
	}
	if got := DayLabel("garbage"); got != "garbage" {
		t.Errorf("DayLabel passthrough = %q; want garbage", got)
	}
}
