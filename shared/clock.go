package shared

import (
	"math"
	"time"
)

// Clock abstracts wall-clock time so streak and reward-cycle date arithmetic is
// deterministic in tests. Production services use SystemClock.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// DateOf truncates t to local midnight. All "same day" checks in the engine
// compare calendar dates, not rolling 24h windows.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b. Rounding
// absorbs DST transitions, where a calendar day is not 24 hours of wall time.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(DateOf(b).Sub(DateOf(a)).Hours() / 24))
}

// WeekStartOf returns the Monday midnight that anchors t's week.
func WeekStartOf(t time.Time) time.Time {
	d := DateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
