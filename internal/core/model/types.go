package model

import (
	"time"
)

// WateringEvent is a single watering of a plant, either recorded by the
// owner in the plant document or left by a guest in the visitor log.
type WateringEvent struct {
	Timestamp int64  `json:"timestamp"`
	Origin    string `json:"origin"`
}

// Time returns the event instant as a time.Time.
func (e WateringEvent) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}

// PlantRecord is the validated, computed view of one user's plant for a
// single render pass. Records are built by the loader and not mutated after.
type PlantRecord struct {
	Identity             string `json:"identity"`
	Owner                string `json:"owner"`
	Description          string `json:"description"`
	RecordedLastWatered  int64  `json:"recorded_last_watered"`
	IsDeadFlag           bool   `json:"is_dead_flag"`
	EffectiveLastWatered int64  `json:"effective_last_watered"`
	IsDead               bool   `json:"is_dead"`
	GuestEvents          int    `json:"guest_events"`
}

// Age returns how long ago the plant was effectively watered.
func (r *PlantRecord) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(r.EffectiveLastWatered, 0))
}

// FileEvent is a filesystem change observed by the watcher.
type FileEvent struct {
	Path      string
	Operation string
}
