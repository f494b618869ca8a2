// Package classify maps raw feed device identifiers to canonical stations.
// The feed's device-naming convention changed over the system's lifetime, so
// every historical alias has to keep resolving to the same physical station.
package classify

import (
	"campusair-server/internal/modules/air/types"
)

// Default aliases observed across feed revisions.
var defaultAliases = map[string]types.Station{
	"A_Learning_Building_1": types.StationA,
	"ESP32_02":              types.StationA,
	"B_Library_Building":    types.StationB,
	"ESP32_01":              types.StationB,
}

// Classifier resolves raw device ids to stations via a static lookup table.
type Classifier struct {
	aliases map[string]types.Station
}

// New builds a Classifier from the default alias table plus any extra aliases
// from configuration. Extra entries override defaults on conflict.
func New(extra map[string]types.Station) *Classifier {
	aliases := make(map[string]types.Station, len(defaultAliases)+len(extra))
	for id, s := range defaultAliases {
		aliases[id] = s
	}
	for id, s := range extra {
		aliases[id] = s
	}
	return &Classifier{aliases: aliases}
}

// Classify returns the canonical station for a raw device id, or
// StationUnknown when the id matches no known alias. Unknown ids stay in the
// raw reading log but are excluded from per-station aggregates.
func (c *Classifier) Classify(deviceID string) types.Station {
	return c.aliases[deviceID]
}
