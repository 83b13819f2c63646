package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poise-app/poise_api/dto"
	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
)

func TestSubmitPracticeFirstSession(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.practice.SubmitPractice("user-1", dto.SubmitPracticeRequest{
		Score: 90,
		Mode:  shared.ModeText,
	})
	require.NoError(t, err)

	// First check-in: streak 1, bonus 5, multiplier 1.
	assert.Equal(t, 1, resp.CurrentStreak)
	assert.Equal(t, 5, resp.StreakBonus)
	assert.Equal(t, 1, resp.Multiplier)
	assert.Equal(t, 25, resp.XPEarned)
	assert.Equal(t, 9, resp.PPEarned)
	assert.Equal(t, 25, resp.TotalXP)
	assert.Equal(t, 9, resp.TotalPP)
	assert.False(t, resp.LeveledUp)
	assert.Equal(t, 90, resp.Session.Score)

	names := make([]string, 0, len(resp.NewBadges))
	for _, b := range resp.NewBadges {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "First Steps")
	assert.Contains(t, names, "Sharp Read")

	// Badge payouts land on the progress row after the submission payout.
	progress, err := env.progression.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 25+10+30, progress.TotalXP)
}

func TestSubmitPracticeInvalidMode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.practice.SubmitPractice("user-1", dto.SubmitPracticeRequest{
		Score: 50,
		Mode:  "carrier-pigeon",
	})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "Invalid practice submission", appErr.Message)
}

func TestSubmitPracticeFreeTierLimit(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		_, err := env.practice.SubmitPractice("user-1", dto.SubmitPracticeRequest{
			Score: 60,
			Mode:  shared.ModeText,
		})
		require.NoError(t, err)
	}

	_, err := env.practice.SubmitPractice("user-1", dto.SubmitPracticeRequest{
		Score: 60,
		Mode:  shared.ModeText,
	})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 402, appErr.StatusCode)

	// The rejected attempt leaves no session behind.
	var count int64
	require.NoError(t, env.db.Model(&model.PracticeSession{}).
		Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSubmitPracticeFeedsChallenges(t *testing.T) {
	env := newTestEnv(t)
	env.seedWeekChallenges(t, weekChallengeFixtures()...)

	_, err := env.practice.SubmitPractice("user-1", dto.SubmitPracticeRequest{
		Score: 88,
		Mode:  shared.ModeText,
	})
	require.NoError(t, err)

	challenges, err := env.challenge.GetWeeklyChallenges("user-1")
	require.NoError(t, err)
	for _, c := range challenges.Challenges {
		switch c.Title {
		case "Session Spree":
			assert.Equal(t, 1, c.Progress)
		case "Top Form":
			assert.Equal(t, 88, c.Progress)
			assert.True(t, c.Completed)
		}
	}
}

func TestSubmitPracticeVoiceBadge(t *testing.T) {
	env := newTestEnv(t)
	env.usage.production = false

	var last *dto.PracticeResultResponse
	for i := 0; i < 5; i++ {
		resp, err := env.practice.SubmitPractice("user-1", dto.SubmitPracticeRequest{
			Score: 60,
			Mode:  shared.ModeVoice,
		})
		require.NoError(t, err)
		last = resp
	}

	names := make([]string, 0, len(last.NewBadges))
	for _, b := range last.NewBadges {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "Finding Your Voice")
	assert.True(t, env.hasBadge(t, "user-1", "Finding Your Voice"))
}

func TestGetSessionsNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	scores := []int{40, 55, 70}
	for _, score := range scores {
		_, err := env.practice.SubmitPractice("user-1", dto.SubmitPracticeRequest{
			Score: score,
			Mode:  shared.ModeText,
		})
		require.NoError(t, err)
		env.clock.Advance(time.Hour)
	}

	list, err := env.practice.GetSessions("user-1", 2)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 2)
	assert.Equal(t, 70, list.Sessions[0].Score)
	assert.Equal(t, 55, list.Sessions[1].Score)
}

func TestFavoriteSession(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.practice.SubmitPractice("user-1", dto.SubmitPracticeRequest{
		Score: 75,
		Mode:  shared.ModeText,
	})
	require.NoError(t, err)

	require.NoError(t, env.practice.FavoriteSession("user-1", resp.Session.ID, true))

	list, err := env.practice.GetSessions("user-1", 10)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.True(t, list.Sessions[0].IsFavorite)

	err = env.practice.FavoriteSession("user-1", "missing", true)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}
