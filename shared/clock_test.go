package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
	b := time.Date(2025, 6, 3, 0, 15, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(a, b), "crossing midnight is one calendar day")
	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, -1, DaysBetween(b, a))
	assert.Equal(t, 9, DaysBetween(a, a.AddDate(0, 0, 9)))
}

func TestDaysBetweenAcrossDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Spring forward: Mar 9 2025 is a 23-hour day.
	assert.Equal(t, 1, DaysBetween(
		time.Date(2025, 3, 9, 10, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 10, 0, 0, 0, loc)))
	assert.Equal(t, 2, DaysBetween(
		time.Date(2025, 3, 8, 10, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 10, 0, 0, 0, loc)))

	// Fall back: Nov 2 2025 is a 25-hour day.
	assert.Equal(t, 1, DaysBetween(
		time.Date(2025, 11, 2, 10, 0, 0, 0, loc),
		time.Date(2025, 11, 3, 10, 0, 0, 0, loc)))
	assert.Equal(t, 2, DaysBetween(
		time.Date(2025, 11, 1, 10, 0, 0, 0, loc),
		time.Date(2025, 11, 3, 10, 0, 0, 0, loc)))
}

func TestWeekStartOf(t *testing.T) {
	// Monday anchors its own week.
	monday := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	assert.True(t, WeekStartOf(monday).Equal(DateOf(monday)))

	// Wednesday and Sunday both fold back to that Monday.
	wednesday := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 8, 23, 59, 0, 0, time.UTC)
	assert.True(t, WeekStartOf(wednesday).Equal(DateOf(monday)))
	assert.True(t, WeekStartOf(sunday).Equal(DateOf(monday)))
}
