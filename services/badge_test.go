package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
)

func TestCheckAndAwardBadgesScoreThreshold(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&model.PracticeSession{
		UserID:    "user-1",
		Score:     95,
		Mode:      shared.ModeText,
		CreatedAt: env.clock.Now(),
	}).Error)

	badges, err := env.badge.CheckAndAwardBadges("user-1", shared.EventPractice)
	require.NoError(t, err)

	require.Len(t, badges, 1)
	assert.Equal(t, "Sharp Read", badges[0].Name)
	assert.False(t, env.hasBadge(t, "user-1", "Perfect Read"), "score 95 misses the perfect-score badge")

	// The badge payout lands on the progress row, flat.
	progress, err := env.progression.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 30, progress.TotalXP)
}

func TestCheckAndAwardBadgesIdempotent(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&model.PracticeSession{
		UserID:    "user-1",
		Score:     95,
		Mode:      shared.ModeText,
		CreatedAt: env.clock.Now(),
	}).Error)

	badges, err := env.badge.CheckAndAwardBadges("user-1", shared.EventPractice)
	require.NoError(t, err)
	require.Len(t, badges, 1)

	badges, err = env.badge.CheckAndAwardBadges("user-1", shared.EventPractice)
	require.NoError(t, err)
	assert.Empty(t, badges)
}

func TestCheckAndAwardBadgesEventFilter(t *testing.T) {
	env := newTestEnv(t)

	// Practice-count requirement satisfied, but a gift event must not touch it.
	_, err := env.progression.GetProgress("user-1")
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&model.UserProgress{}).
		Where("user_id = ?", "user-1").
		Update("practice_count", 5).Error)

	badges, err := env.badge.CheckAndAwardBadges("user-1", shared.EventGiftSent)
	require.NoError(t, err)
	assert.Empty(t, badges)

	badges, err = env.badge.CheckAndAwardBadges("user-1", shared.EventPractice)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "First Steps", badges[0].Name)
}

func TestCheckAndAwardBadgesVoiceCount(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, env.db.Create(&model.PracticeSession{
			UserID:    "user-1",
			Score:     60,
			Mode:      shared.ModeVoice,
			CreatedAt: env.clock.Now(),
		}).Error)
	}

	badges, err := env.badge.CheckAndAwardBadges("user-1", shared.EventVoicePractice)
	require.NoError(t, err)

	names := make([]string, 0, len(badges))
	for _, b := range badges {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "Finding Your Voice")
	assert.NotContains(t, names, "Smooth Talker")
}

func TestGetBadgeCatalog(t *testing.T) {
	env := newTestEnv(t)

	catalog, err := env.badge.GetBadgeCatalog("user-1")
	require.NoError(t, err)
	assert.Equal(t, 14, catalog.Total)
	assert.Equal(t, 0, catalog.Earned)

	_, err = env.progression.RecordGiftSent("user-1")
	require.NoError(t, err)

	catalog, err = env.badge.GetBadgeCatalog("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Earned)

	for _, entry := range catalog.Badges {
		if entry.Name == "Generous Heart" {
			assert.True(t, entry.Earned)
			require.NotNil(t, entry.EarnedAt)
			assert.True(t, entry.EarnedAt.Equal(env.clock.Now()))
		}
	}
}
