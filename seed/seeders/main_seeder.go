package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders. Each one is idempotent, so reruns are safe.
func (s *MainSeeder) SeedAll(weeks int) error {
	log.Println("Starting database seeding...")

	rewardSeeder := NewRewardSeeder(s.db)
	if err := rewardSeeder.SeedRewardCalendar(); err != nil {
		log.Printf("Reward calendar seeding failed: %v", err)
		return err
	}

	badgeSeeder := NewBadgeSeeder(s.db)
	if err := badgeSeeder.SeedBadges(); err != nil {
		log.Printf("Badge seeding failed: %v", err)
		return err
	}

	challengeSeeder := NewChallengeSeeder(s.db)
	if err := challengeSeeder.SeedUpcomingWeeks(weeks); err != nil {
		log.Printf("Challenge seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedRewardsOnly() error {
	return NewRewardSeeder(s.db).SeedRewardCalendar()
}

func (s *MainSeeder) SeedBadgesOnly() error {
	return NewBadgeSeeder(s.db).SeedBadges()
}

func (s *MainSeeder) SeedChallengesOnly(weeks int) error {
	return NewChallengeSeeder(s.db).SeedUpcomingWeeks(weeks)
}
