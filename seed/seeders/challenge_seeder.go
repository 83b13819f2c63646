package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
)

// ChallengeSeeder authors weekly challenges for upcoming weeks. Each week gets
// the standard trio; weeks that already have challenges are skipped.
type ChallengeSeeder struct {
	db *gorm.DB
}

func NewChallengeSeeder(db *gorm.DB) *ChallengeSeeder {
	return &ChallengeSeeder{db: db}
}

func (s *ChallengeSeeder) SeedUpcomingWeeks(weeks int) error {
	if weeks < 1 {
		weeks = 1
	}

	thisWeek := shared.WeekStartOf(time.Now())
	seeded := 0

	for i := 0; i < weeks; i++ {
		weekStart := thisWeek.AddDate(0, 0, 7*i)

		var count int64
		if err := s.db.Model(&model.WeeklyChallenge{}).
			Where("week_start_date = ?", weekStart).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := s.seedWeek(weekStart); err != nil {
			return err
		}
		seeded++
	}

	log.Printf("Seeded challenges for %d of %d weeks", seeded, weeks)
	return nil
}

func (s *ChallengeSeeder) seedWeek(weekStart time.Time) error {
	challenges := []model.WeeklyChallenge{
		{Title: "Consistent Practice", Description: "Complete 5 practice sessions this week", ChallengeType: shared.ChallengeTypeCount, GoalValue: 5, XPReward: 50, PPReward: 10},
		{Title: "High Performer", Description: "Score 85 or higher on a session this week", ChallengeType: shared.ChallengeTypeScore, GoalValue: 85, XPReward: 75, PPReward: 15},
		{Title: "Keep It Going", Description: "Reach a 5-day streak this week", ChallengeType: shared.ChallengeTypeStreak, GoalValue: 5, XPReward: 60, PPReward: 10},
	}

	now := time.Now()
	for i := range challenges {
		id, _ := uuid.NewV7()
		challenges[i].ID = id.String()
		challenges[i].WeekStartDate = weekStart
		challenges[i].CreatedAt = now
	}

	return s.db.Create(&challenges).Error
}
