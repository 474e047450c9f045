package watering

import (
	"encoding/json"
	"sort"

	"github.com/penwyp/go-horti/internal/core/constants"
	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/util"
)

// EffectiveLastWatered returns the last timestamp of the unbroken watering
// streak that starts at the earliest known watering.
//
// The owner timestamp and every guest event not later than now are sorted
// together. The first gap longer than the staleness window ends the streak;
// anything after it does not count. With no such gap the latest timestamp
// wins. The result is always one of the inputs.
func EffectiveLastWatered(owner int64, guests []model.WateringEvent, now int64) int64 {
	timeline := make([]int64, 0, len(guests)+1)
	timeline = append(timeline, owner)

	for _, g := range PastEvents(guests, now) {
		timeline = append(timeline, g.Timestamp)
	}

	if len(timeline) == 1 {
		return owner
	}

	sort.Slice(timeline, func(i, j int) bool { return timeline[i] < timeline[j] })

	for i := 1; i < len(timeline); i++ {
		gapDays := float64(timeline[i]-timeline[i-1]) / float64(constants.SecondsPerDay)
		if gapDays > constants.StalenessDays {
			util.LogDebugf("Watering streak broken by %.1f day gap after %s",
				gapDays, util.FormatTimestamp(timeline[i-1]))
			return timeline[i-1]
		}
	}

	return timeline[len(timeline)-1]
}

// PastEvents returns the events not later than now. Future waterings are
// invalid and take no part in a streak.
func PastEvents(events []model.WateringEvent, now int64) []model.WateringEvent {
	past := make([]model.WateringEvent, 0, len(events))
	for _, e := range events {
		if e.Timestamp > now {
			util.LogDebugf("Skip future %s watering at %s", e.Origin,
				util.GetTimeProvider().Format(e.Time(), "2006-01-02 15:04:05"))
			continue
		}
		past = append(past, e)
	}
	return past
}

// GuestEvents converts decoded visitor-log entries into watering events.
// Entries that are not objects, or whose timestamp is missing or not an
// integral number, are dropped.
func GuestEvents(entries []any) []model.WateringEvent {
	events := make([]model.WateringEvent, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			util.LogDebugf("Skip visitor entry %d: not an object", i)
			continue
		}
		ts, ok := IntegerField(obj, model.FieldTimestamp)
		if !ok {
			util.LogDebugf("Skip visitor entry %d: invalid timestamp", i)
			continue
		}
		events = append(events, model.WateringEvent{Timestamp: ts, Origin: model.OriginGuest})
	}
	return events
}

// IntegerField reads an integral number from a decoded JSON object. Numbers
// are expected as json.Number (decoder with UseNumber); plain int64 and
// integral float64 values are also accepted.
func IntegerField(obj map[string]any, key string) (int64, bool) {
	raw, ok := obj[key]
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}
