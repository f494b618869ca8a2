package aggregate

import (
	"time"

	"campusair-server/internal/modules/air/types"
)

// DefaultStaleness is the cutoff beyond which a station counts as offline.
const DefaultStaleness = 20 * time.Minute

// Offline reports whether a station should be flagged offline: no reading at
// all, or a latest reading older than the staleness threshold. Once true for
// a fixed reading, it stays true as now advances.
func Offline(latest *types.Reading, now time.Time, threshold time.Duration) bool {
	if latest == nil {
		return true
	}
	return now.Sub(latest.Timestamp) > threshold
}
