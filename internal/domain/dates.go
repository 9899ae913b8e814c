package domain

import (
	"fmt"
	"sync"
	"time"
)

// DateLayout is the ISO calendar-date form used for day keys and week
// boundaries throughout the model.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// WeekStart normalizes any date to the Monday of its week. Invalid input
// comes back unchanged so callers keep their silent no-op behavior.
func WeekStart(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday rolls back to the previous Monday
	}
	return t.AddDate(0, 0, -offset).Format(DateLayout)
}

// WeekEnd returns startDate+6 days, the Sunday closing the week.
func WeekEnd(startDate string) string {
	t, err := ParseDate(startDate)
	if err != nil {
		return startDate
	}
	return t.AddDate(0, 0, 6).Format(DateLayout)
}

// WeekDates returns the 7 consecutive ISO dates starting at startDate.
func WeekDates(startDate string) []string {
	t, err := ParseDate(startDate)
	if err != nil {
		return nil
	}
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = t.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}

// TimestampLayout is RFC 3339 with fixed-width nanoseconds. The fixed width
// keeps stamps lexicographically ordered, which "newest list" lookups rely
// on.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	stampMu   sync.Mutex
	lastStamp time.Time
)

// Timestamp returns the current time as a creation/modification stamp.
// Stamps are strictly increasing within a process, so back-to-back calls
// never collide even on a coarse clock.
func Timestamp() string {
	stampMu.Lock()
	defer stampMu.Unlock()
	now := time.Now().UTC()
	if !now.After(lastStamp) {
		now = lastStamp.Add(time.Nanosecond)
	}
	lastStamp = now
	return now.Format(TimestampLayout)
}
