package watering

import (
	"encoding/json"
	"testing"

	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = int64(86400)

func guests(timestamps ...int64) []model.WateringEvent {
	events := make([]model.WateringEvent, 0, len(timestamps))
	for _, ts := range timestamps {
		events = append(events, model.WateringEvent{Timestamp: ts, Origin: model.OriginGuest})
	}
	return events
}

func TestEffectiveLastWatered(t *testing.T) {
	tests := []struct {
		name     string
		owner    int64
		guests   []model.WateringEvent
		now      int64
		expected int64
	}{
		{
			name:     "no guests returns owner timestamp",
			owner:    3 * day,
			guests:   nil,
			now:      10 * day,
			expected: 3 * day,
		},
		{
			name:     "owner timestamp in the future is trusted",
			owner:    30 * day,
			guests:   nil,
			now:      10 * day,
			expected: 30 * day,
		},
		{
			name:     "long gap truncates the streak",
			owner:    0,
			guests:   guests(1*day, 10*day),
			now:      20 * day,
			expected: 1 * day,
		},
		{
			name:     "continuous watering uses the latest",
			owner:    0,
			guests:   guests(1*day, 2*day, 3*day, 4*day),
			now:      20 * day,
			expected: 4 * day,
		},
		{
			name:     "unordered guest events are sorted first",
			owner:    0,
			guests:   guests(4*day, 2*day, 1*day, 3*day),
			now:      20 * day,
			expected: 4 * day,
		},
		{
			name:     "gap of exactly five days keeps the streak",
			owner:    0,
			guests:   guests(5 * day),
			now:      20 * day,
			expected: 5 * day,
		},
		{
			name:     "gap just over five days breaks the streak",
			owner:    0,
			guests:   guests(5*day + 1),
			now:      20 * day,
			expected: 0,
		},
		{
			name:     "first gap wins even when later gaps are short",
			owner:    0,
			guests:   guests(2*day, 9*day, 10*day, 11*day),
			now:      20 * day,
			expected: 2 * day,
		},
		{
			name:     "owner after a long guest gap is not credited",
			owner:    10 * day,
			guests:   guests(1 * day),
			now:      20 * day,
			expected: 1 * day,
		},
		{
			name:     "future guest events are ignored",
			owner:    0,
			guests:   guests(1*day, 3*day),
			now:      2 * day,
			expected: 1 * day,
		},
		{
			name:     "guest at exactly now is valid",
			owner:    0,
			guests:   guests(2 * day),
			now:      2 * day,
			expected: 2 * day,
		},
		{
			name:     "duplicate timestamps",
			owner:    day,
			guests:   guests(day, day),
			now:      20 * day,
			expected: day,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveLastWatered(tt.owner, tt.guests, tt.now)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEffectiveLastWateredIsAnInput(t *testing.T) {
	owner := int64(1_700_000_000)
	events := guests(owner+day/2, owner+3*day, owner+9*day, owner-2*day)
	now := owner + 30*day

	got := EffectiveLastWatered(owner, events, now)

	candidates := []int64{owner}
	for _, e := range events {
		candidates = append(candidates, e.Timestamp)
	}
	assert.Contains(t, candidates, got)
	assert.Equal(t, owner+3*day, got)
}

func TestEffectiveLastWateredFutureNeverChangesResult(t *testing.T) {
	owner := int64(0)
	now := 4 * day
	base := guests(1*day, 2*day)

	withFuture := append(guests(1*day, 2*day), model.WateringEvent{Timestamp: now + 1, Origin: model.OriginGuest})
	withFarFuture := append(guests(1*day, 2*day), model.WateringEvent{Timestamp: 100 * day, Origin: model.OriginGuest})

	expected := EffectiveLastWatered(owner, base, now)
	assert.Equal(t, expected, EffectiveLastWatered(owner, withFuture, now))
	assert.Equal(t, expected, EffectiveLastWatered(owner, withFarFuture, now))
}

func TestGuestEvents(t *testing.T) {
	entries := []any{
		map[string]any{"timestamp": json.Number("1700000000"), "user": "alice"},
		map[string]any{"timestamp": json.Number("1.5")},
		map[string]any{"timestamp": "1700000000"},
		map[string]any{"timestamp": true},
		map[string]any{"user": "bob"},
		"not an object",
		json.Number("42"),
		nil,
		map[string]any{"timestamp": float64(1700000100)},
		map[string]any{"timestamp": float64(1700000100.25)},
		map[string]any{"timestamp": int64(1700000200)},
	}

	events := GuestEvents(entries)

	assert.Equal(t, []model.WateringEvent{
		{Timestamp: 1700000000, Origin: model.OriginGuest},
		{Timestamp: 1700000100, Origin: model.OriginGuest},
		{Timestamp: 1700000200, Origin: model.OriginGuest},
	}, events)
}

func TestGuestEventsEmpty(t *testing.T) {
	assert.Empty(t, GuestEvents(nil))
	assert.Empty(t, GuestEvents([]any{}))
}

func TestIntegerField(t *testing.T) {
	obj := map[string]any{
		"number":   json.Number("12"),
		"negative": json.Number("-3"),
		"exponent": json.Number("1e3"),
		"text":     "12",
	}

	n, ok := IntegerField(obj, "number")
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	n, ok = IntegerField(obj, "negative")
	assert.True(t, ok)
	assert.Equal(t, int64(-3), n)

	_, ok = IntegerField(obj, "exponent")
	assert.False(t, ok)

	_, ok = IntegerField(obj, "text")
	assert.False(t, ok)

	_, ok = IntegerField(obj, "missing")
	assert.False(t, ok)
}

func TestPastEvents(t *testing.T) {
	now := 30 * day
	events := []model.WateringEvent{
		{Timestamp: now - day, Origin: model.OriginGuest},
		{Timestamp: now + 10*day, Origin: model.OriginGuest},
		{Timestamp: now, Origin: model.OriginGuest},
		{Timestamp: now + 1, Origin: model.OriginGuest},
	}

	past := PastEvents(events, now)

	require.Len(t, past, 2)
	assert.Equal(t, now-day, past[0].Timestamp)
	assert.Equal(t, now, past[1].Timestamp)
	assert.Empty(t, PastEvents(nil, now))
}
