package classify

import (
	"testing"

	"campusair-server/internal/modules/air/types"
)

func TestClassify_HistoricalAliases(t *testing.T) {
	c := New(nil)

	cases := []struct {
		deviceID string
		want     types.Station
	}{
		{"A_Learning_Building_1", types.StationA},
		{"ESP32_02", types.StationA},
		{"B_Library_Building", types.StationB},
		{"ESP32_01", types.StationB},
		{"ESP32_99", types.StationUnknown},
		{"", types.StationUnknown},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.deviceID); got != tc.want {
			t.Errorf("Classify(%q) = %q; want %q", tc.deviceID, got, tc.want)
		}
	}
}

func TestClassify_ExtraAliases(t *testing.T) {
	c := New(map[string]types.Station{
		"NODE-A":   types.StationA,
		"ESP32_01": types.StationA, // config override wins
	})

	if got := c.Classify("NODE-A"); got != types.StationA {
		t.Errorf("Classify(NODE-A) = %q; want %q", got, types.StationA)
	}
	if got := c.Classify("ESP32_01"); got != types.StationA {
		t.Errorf("Classify(ESP32_01) = %q; want override %q", got, types.StationA)
	}
	// defaults still present
	if got := c.Classify("B_Library_Building"); got != types.StationB {
		t.Errorf("Classify(B_Library_Building) = %q; want %q", got, types.StationB)
	}
}
