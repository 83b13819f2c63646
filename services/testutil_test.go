package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/services/repositories"
	"github.com/poise-app/poise_api/shared"
)

// fixedClock lets tests walk through calendar days deterministically.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *fixedClock) AdvanceDays(days int) {
	c.now = c.now.AddDate(0, 0, days)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Subscription{},
		&model.UserProgress{},
		&model.PracticeSession{},
		&model.DailyLoginReward{},
		&model.UserLoginReward{},
		&model.Badge{},
		&model.UserBadge{},
		&model.WeeklyChallenge{},
		&model.UserWeeklyChallengeProgress{},
	))

	return db
}

// testEnv wires the full service graph onto an in-memory database with a
// fixed clock. Monday 10:00 local time keeps week-anchored tests stable.
type testEnv struct {
	db    *gorm.DB
	sql   *PostgresService
	clock *fixedClock

	billing     *BillingService
	usage       *UsageService
	badge       *BadgeService
	progression *ProgressionService
	challenge   *ChallengeService
	reward      *RewardService
	practice    *PracticeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	sql := &PostgresService{db: db}
	require.NoError(t, sql.seedRewardCalendar())
	require.NoError(t, sql.seedBadges())

	clock := &fixedClock{now: time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)}

	billing := &BillingService{
		sqlSvc:  sql,
		subRepo: repositories.NewSubscriptionRepository(db),
		cache:   newMemoryTierCache(clock),
	}

	usage := &UsageService{
		sqlSvc:       sql,
		billingSvc:   billing,
		practiceRepo: repositories.NewPracticeRepository(db),
		clock:        clock,
		production:   true,
	}

	badge := &BadgeService{
		sqlSvc:       sql,
		badgeRepo:    repositories.NewBadgeRepository(db),
		progressRepo: repositories.NewProgressRepository(db),
		practiceRepo: repositories.NewPracticeRepository(db),
		rewardRepo:   repositories.NewRewardRepository(db),
		clock:        clock,
	}

	progression := &ProgressionService{
		sqlSvc:       sql,
		badgeSvc:     badge,
		progressRepo: repositories.NewProgressRepository(db),
		clock:        clock,
	}

	challenge := &ChallengeService{
		sqlSvc:         sql,
		progressionSvc: progression,
		challengeRepo:  repositories.NewChallengeRepository(db),
		clock:          clock,
	}

	reward := &RewardService{
		sqlSvc:       sql,
		badgeSvc:     badge,
		rewardRepo:   repositories.NewRewardRepository(db),
		progressRepo: repositories.NewProgressRepository(db),
		clock:        clock,
	}

	practice := &PracticeService{
		sqlSvc:         sql,
		usageSvc:       usage,
		progressionSvc: progression,
		badgeSvc:       badge,
		challengeSvc:   challenge,
		practiceRepo:   repositories.NewPracticeRepository(db),
		clock:          clock,
	}

	return &testEnv{
		db:          db,
		sql:         sql,
		clock:       clock,
		billing:     billing,
		usage:       usage,
		badge:       badge,
		progression: progression,
		challenge:   challenge,
		reward:      reward,
		practice:    practice,
	}
}

// seedWeekChallenges inserts this week's challenges relative to the env clock.
func (env *testEnv) seedWeekChallenges(t *testing.T, challenges ...model.WeeklyChallenge) []model.WeeklyChallenge {
	t.Helper()

	weekStart := shared.WeekStartOf(env.clock.Now())
	for i := range challenges {
		challenges[i].ID = challenges[i].Title
		challenges[i].WeekStartDate = weekStart
		challenges[i].CreatedAt = env.clock.Now()
		require.NoError(t, env.db.Create(&challenges[i]).Error)
	}
	return challenges
}

func (env *testEnv) setSubscription(t *testing.T, userID, tier, status string) {
	t.Helper()

	require.NoError(t, env.db.Create(&model.Subscription{
		ID:     "sub-" + userID,
		UserID: userID,
		Tier:   tier,
		Status: status,
	}).Error)
}
