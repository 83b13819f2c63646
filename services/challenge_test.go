package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
)

func weekChallengeFixtures() []model.WeeklyChallenge {
	return []model.WeeklyChallenge{
		{Title: "Session Spree", ChallengeType: shared.ChallengeTypeCount, GoalValue: 3, XPReward: 40, PPReward: 10},
		{Title: "Top Form", ChallengeType: shared.ChallengeTypeScore, GoalValue: 85, XPReward: 60},
		{Title: "Three In A Row", ChallengeType: shared.ChallengeTypeStreak, GoalValue: 3, XPReward: 50},
	}
}

func TestGetWeeklyChallengesWithProgress(t *testing.T) {
	env := newTestEnv(t)
	env.seedWeekChallenges(t, weekChallengeFixtures()...)

	require.NoError(t, env.challenge.RecordPracticeEvent("user-1", 70, 1))

	resp, err := env.challenge.GetWeeklyChallenges("user-1")
	require.NoError(t, err)
	assert.Equal(t, shared.WeekStartOf(env.clock.Now()), resp.WeekStart)
	require.Len(t, resp.Challenges, 3)

	byTitle := map[string]int{}
	for _, c := range resp.Challenges {
		byTitle[c.Title] = c.Progress
	}
	assert.Equal(t, 1, byTitle["Session Spree"])
	assert.Equal(t, 70, byTitle["Top Form"])
	assert.Equal(t, 1, byTitle["Three In A Row"])
}

func TestRecordPracticeEventSemantics(t *testing.T) {
	env := newTestEnv(t)
	env.seedWeekChallenges(t, weekChallengeFixtures()...)

	require.NoError(t, env.challenge.RecordPracticeEvent("user-1", 80, 2))
	// A worse score and a lower streak don't regress best-so-far challenges.
	require.NoError(t, env.challenge.RecordPracticeEvent("user-1", 50, 1))

	resp, err := env.challenge.GetWeeklyChallenges("user-1")
	require.NoError(t, err)

	for _, c := range resp.Challenges {
		switch c.Title {
		case "Session Spree":
			assert.Equal(t, 2, c.Progress)
		case "Top Form":
			assert.Equal(t, 80, c.Progress)
			assert.False(t, c.Completed)
		case "Three In A Row":
			assert.Equal(t, 2, c.Progress)
		}
	}
}

func TestChallengeCompletionLatches(t *testing.T) {
	env := newTestEnv(t)
	env.seedWeekChallenges(t, weekChallengeFixtures()...)

	for i := 0; i < 4; i++ {
		require.NoError(t, env.challenge.RecordPracticeEvent("user-1", 60, 1))
	}

	resp, err := env.challenge.GetWeeklyChallenges("user-1")
	require.NoError(t, err)

	for _, c := range resp.Challenges {
		if c.Title == "Session Spree" {
			assert.True(t, c.Completed)
			// Progress stops accumulating once the goal is hit.
			assert.Equal(t, 3, c.Progress)
		}
	}
}

func TestClaimChallengeReward(t *testing.T) {
	env := newTestEnv(t)
	env.seedWeekChallenges(t, weekChallengeFixtures()...)

	for i := 0; i < 3; i++ {
		require.NoError(t, env.challenge.RecordPracticeEvent("user-1", 60, 1))
	}

	resp, err := env.challenge.ClaimChallengeReward("user-1", "Session Spree")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 40, resp.XPEarned)
	assert.Equal(t, 10, resp.PPEarned)
	assert.Equal(t, 40, resp.TotalXP)
	assert.Equal(t, 10, resp.TotalPP)

	// Double claim conflicts.
	_, err = env.challenge.ClaimChallengeReward("user-1", "Session Spree")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, "Challenge reward already claimed", appErr.Message)
}

func TestClaimChallengeRewardIncomplete(t *testing.T) {
	env := newTestEnv(t)
	env.seedWeekChallenges(t, weekChallengeFixtures()...)

	_, err := env.challenge.ClaimChallengeReward("user-1", "Top Form")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Challenge is not completed yet", appErr.Message)
}

func TestClaimChallengeRewardWrongWeek(t *testing.T) {
	env := newTestEnv(t)

	lastWeek := shared.WeekStartOf(env.clock.Now()).AddDate(0, 0, -7)
	require.NoError(t, env.db.Create(&model.WeeklyChallenge{
		ID:            "stale",
		Title:         "Stale",
		ChallengeType: shared.ChallengeTypeCount,
		GoalValue:     1,
		WeekStartDate: lastWeek,
	}).Error)

	_, err := env.challenge.ClaimChallengeReward("user-1", "stale")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Challenge is not part of the current week", appErr.Message)
}

func TestClaimChallengeRewardNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.challenge.ClaimChallengeReward("user-1", "missing")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}
