package util

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Clock supplies the current instant for a render pass.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// ParseInstant accepts RFC3339 text or integer epoch seconds.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty instant")
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: expected RFC3339 or epoch seconds", s)
	}
	return t, nil
}

// TimeProvider is a global time utility that handles timezone-aware formatting
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	tpMu               sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the specified timezone
func InitializeTimeProvider(timezone string) error {
	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	tpMu.Lock()
	globalTimeProvider = provider
	tpMu.Unlock()
	return nil
}

// GetTimeProvider returns the global time provider, defaulting to Local.
func GetTimeProvider() *TimeProvider {
	tpMu.Lock()
	defer tpMu.Unlock()
	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local}
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Location returns the configured location.
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Format formats a time according to the layout in the configured timezone
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	return t.In(tp.Location()).Format(layout)
}

// FormatTimestamp renders epoch seconds in the configured timezone.
func FormatTimestamp(ts int64) string {
	return GetTimeProvider().Format(time.Unix(ts, 0), "2006-01-02 15:04:05")
}

// FormatAge renders a duration in days and hours, e.g. "3d 4h".
func FormatAge(d time.Duration) string {
	if d < 0 {
		return "in the future"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
