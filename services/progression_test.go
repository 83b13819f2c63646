package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplierForStreak(t *testing.T) {
	cases := []struct {
		streak   int
		expected int
	}{
		{0, 1},
		{1, 1},
		{6, 1},
		{7, 2},
		{13, 2},
		{14, 3},
		{29, 3},
		{30, 5},
		{365, 5},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, MultiplierForStreak(tc.streak), "streak %d", tc.streak)
	}
}

func TestNextMilestone(t *testing.T) {
	days, multiplier, reached := NextMilestone(0)
	assert.Equal(t, 7, days)
	assert.Equal(t, 2, multiplier)
	assert.False(t, reached)

	days, multiplier, reached = NextMilestone(7)
	assert.Equal(t, 14, days)
	assert.Equal(t, 3, multiplier)
	assert.False(t, reached)

	days, multiplier, reached = NextMilestone(29)
	assert.Equal(t, 30, days)
	assert.Equal(t, 5, multiplier)
	assert.False(t, reached)

	_, _, reached = NextMilestone(30)
	assert.True(t, reached)
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 2, LevelForXP(199))
	assert.Equal(t, 11, LevelForXP(1000))
}

func TestStreakBonusFor(t *testing.T) {
	assert.Equal(t, 5, StreakBonusFor(1))
	assert.Equal(t, 25, StreakBonusFor(5))
	assert.Equal(t, 50, StreakBonusFor(10))
	// Capped past 10 days.
	assert.Equal(t, 50, StreakBonusFor(11))
	assert.Equal(t, 50, StreakBonusFor(100))
}

func TestBaseRewardForScore(t *testing.T) {
	xp, pp := BaseRewardForScore(90)
	assert.Equal(t, 20, xp)
	assert.Equal(t, 9, pp)

	xp, pp = BaseRewardForScore(0)
	assert.Equal(t, 20, xp)
	assert.Equal(t, 0, pp)
}

func TestUpdateStreakFirstCheckIn(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.progression.UpdateStreak("user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CurrentStreak)
	assert.Equal(t, 5, resp.StreakBonus)
}

func TestUpdateStreakSameDayIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.progression.UpdateStreak("user-1")
	require.NoError(t, err)

	env.clock.Advance(4 * time.Hour)

	resp, err := env.progression.UpdateStreak("user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CurrentStreak)
	assert.Equal(t, 0, resp.StreakBonus, "second check-in on the same day grants no bonus")

	// The check-in timestamp still moves to the latest call.
	status, err := env.progression.GetStreakStatus("user-1")
	require.NoError(t, err)
	require.NotNil(t, status.LastPracticeDate)
	assert.True(t, status.LastPracticeDate.Equal(env.clock.Now()))
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	env := newTestEnv(t)

	for day := 1; day <= 3; day++ {
		resp, err := env.progression.UpdateStreak("user-1")
		require.NoError(t, err)
		assert.Equal(t, day, resp.CurrentStreak)
		env.clock.AdvanceDays(1)
	}
}

func TestUpdateStreakGapResets(t *testing.T) {
	env := newTestEnv(t)

	for day := 0; day < 5; day++ {
		_, err := env.progression.UpdateStreak("user-1")
		require.NoError(t, err)
		env.clock.AdvanceDays(1)
	}

	// Skip a full day.
	env.clock.AdvanceDays(1)

	resp, err := env.progression.UpdateStreak("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentStreak)

	status, err := env.progression.GetStreakStatus("user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, status.BestStreak, "best streak survives the reset")
}

func TestApplyPracticeRewardLevelsUp(t *testing.T) {
	env := newTestEnv(t)

	progress, leveledUp, err := env.progression.ApplyPracticeReward("user-1", 60, 5)
	require.NoError(t, err)
	assert.False(t, leveledUp)
	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, 1, progress.PracticeCount)

	progress, leveledUp, err = env.progression.ApplyPracticeReward("user-1", 60, 5)
	require.NoError(t, err)
	assert.True(t, leveledUp)
	assert.Equal(t, 2, progress.Level)
	assert.Equal(t, 120, progress.TotalXP)
	assert.Equal(t, 10, progress.TotalPP)
	assert.Equal(t, 2, progress.PracticeCount)
}

func TestRecordGiftSentAwardsBadge(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.progression.RecordGiftSent("user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.GiftsSent)
	require.Len(t, resp.NewBadges, 1)
	assert.Equal(t, "Generous Heart", resp.NewBadges[0].Name)

	// A second gift doesn't re-award the first-gift badge.
	resp, err = env.progression.RecordGiftSent("user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.GiftsSent)
	assert.Empty(t, resp.NewBadges)
}

func TestGetProgressMilestone(t *testing.T) {
	env := newTestEnv(t)

	progress, err := env.progression.GetProgress("user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, 100, progress.XPToNextLevel)
	require.NotNil(t, progress.NextMilestone)
	assert.Equal(t, 7, progress.NextMilestone.Days)
	assert.Equal(t, 2, progress.NextMilestone.Multiplier)
}
