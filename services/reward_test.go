package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/services/repositories"
	"github.com/poise-app/poise_api/shared"
)

func (env *testEnv) hasBadge(t *testing.T, userID, name string) bool {
	t.Helper()

	catalog, err := env.badge.GetBadgeCatalog(userID)
	require.NoError(t, err)
	for _, entry := range catalog.Badges {
		if entry.Name == name {
			return entry.Earned
		}
	}
	t.Fatalf("badge %q not in catalog", name)
	return false
}

func TestLoginRewardStatusFreshUser(t *testing.T) {
	env := newTestEnv(t)

	status, err := env.reward.GetLoginRewardStatus("user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, status.CurrentDay)
	assert.True(t, status.CanClaimToday)
	assert.Empty(t, status.ClaimedDays)
	assert.Nil(t, status.CycleStartDate)
	require.Len(t, status.Calendar, 7)
	assert.Equal(t, shared.RewardTypeXP, status.Calendar[0].RewardType)
	assert.Equal(t, 10, status.Calendar[0].RewardValue)
	assert.False(t, status.Calendar[0].Claimed)
}

func TestClaimDailyRewardFirstDay(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.reward.ClaimDailyReward("user-1")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Claim.Day)
	assert.Equal(t, shared.RewardTypeXP, resp.Reward.RewardType)
	assert.Equal(t, 10, resp.Reward.RewardValue)
	assert.Equal(t, 1, resp.Reward.Multiplier)
	assert.Equal(t, 10, resp.Reward.XPEarned)
	assert.Equal(t, 0, resp.Reward.PPEarned)
	assert.False(t, resp.CanClaimToday)
	assert.Equal(t, []int{1}, resp.ClaimedDays)

	progress, err := env.progression.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, progress.TotalXP)

	status, err := env.reward.GetLoginRewardStatus("user-1")
	require.NoError(t, err)
	assert.False(t, status.CanClaimToday)
	assert.True(t, status.Calendar[0].Claimed)
	require.NotNil(t, status.CycleStartDate)
	assert.True(t, status.CycleStartDate.Equal(shared.DateOf(env.clock.Now())))
}

func TestClaimDailyRewardTwiceSameDay(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.reward.ClaimDailyReward("user-1")
	require.NoError(t, err)

	_, err = env.reward.ClaimDailyReward("user-1")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, "Already claimed today's reward", appErr.Message)

	var count int64
	require.NoError(t, env.db.Model(&model.UserLoginReward{}).
		Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestClaimLogRejectsSecondRowPerDay(t *testing.T) {
	env := newTestEnv(t)
	repo := repositories.NewRewardRepository(env.db)

	now := env.clock.Now()
	require.NoError(t, repo.CreateClaim(&model.UserLoginReward{
		UserID:         "user-1",
		ClaimedDay:     1,
		ClaimedAt:      now,
		CycleStartDate: shared.DateOf(now),
	}))

	// A writer that slipped past the service-level check still cannot land a
	// second claim on the same calendar day.
	err := repo.CreateClaim(&model.UserLoginReward{
		UserID:         "user-1",
		ClaimedDay:     2,
		ClaimedAt:      now.Add(time.Minute),
		CycleStartDate: shared.DateOf(now),
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, env.db.Model(&model.UserLoginReward{}).
		Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestClaimDailyRewardFullCycle(t *testing.T) {
	env := newTestEnv(t)

	var ppTotal int
	for day := 1; day <= 7; day++ {
		resp, err := env.reward.ClaimDailyReward("user-1")
		require.NoError(t, err)
		assert.Equal(t, day, resp.Claim.Day)
		ppTotal += resp.Reward.PPEarned
		if day < 7 {
			env.clock.AdvanceDays(1)
		}
	}

	// Day 3 + day 5 + day 7 point payouts.
	assert.Equal(t, 5+10+25, ppTotal)
	assert.True(t, env.hasBadge(t, "user-1", "Full Cycle"))

	// The day after day 7 starts a fresh cycle at day 1.
	env.clock.AdvanceDays(1)
	resp, err := env.reward.ClaimDailyReward("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Claim.Day)
	assert.True(t, resp.CycleStartDate.Equal(shared.DateOf(env.clock.Now())))
	assert.Equal(t, []int{1}, resp.ClaimedDays)
}

func TestClaimDailyRewardMissedDayForfeitsCycle(t *testing.T) {
	env := newTestEnv(t)

	for day := 1; day <= 3; day++ {
		_, err := env.reward.ClaimDailyReward("user-1")
		require.NoError(t, err)
		env.clock.AdvanceDays(1)
	}

	// Skip a day; the cycle resets to day 1.
	env.clock.AdvanceDays(1)

	resp, err := env.reward.ClaimDailyReward("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Claim.Day)
	assert.True(t, resp.CycleStartDate.Equal(shared.DateOf(env.clock.Now())))
	assert.Equal(t, []int{1}, resp.ClaimedDays)
}

func TestClaimDailyRewardStreakMultiplier(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.progression.GetProgress("user-1")
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&model.UserProgress{}).
		Where("user_id = ?", "user-1").
		Update("current_streak", 7).Error)

	resp, err := env.reward.ClaimDailyReward("user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Reward.Multiplier)
	assert.Equal(t, 20, resp.Reward.XPEarned)
	assert.Equal(t, 7, resp.StreakCount)
}
