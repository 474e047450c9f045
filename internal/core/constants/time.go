package constants

import "time"

const (
	// Watering streak and staleness
	StalenessDays    = 5
	StalenessSeconds = int64(StalenessDays * 24 * 3600)

	SecondsPerDay = int64(24 * 3600)

	// Watch command debounce before re-rendering
	WatchDebounce = 500 * time.Millisecond
)

// AlwaysAlive lists identities that are never shown as dead. It is not
// configurable.
var AlwaysAlive = []string{"horti"}
