package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
)

// RewardSeeder populates the static 7-day login reward calendar.
type RewardSeeder struct {
	db *gorm.DB
}

func NewRewardSeeder(db *gorm.DB) *RewardSeeder {
	return &RewardSeeder{db: db}
}

func (s *RewardSeeder) SeedRewardCalendar() error {
	var count int64
	if err := s.db.Model(&model.DailyLoginReward{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Reward calendar already seeded, skipping")
		return nil
	}

	calendar := []model.DailyLoginReward{
		{Day: 1, RewardType: shared.RewardTypeXP, RewardValue: 10},
		{Day: 2, RewardType: shared.RewardTypeXP, RewardValue: 20},
		{Day: 3, RewardType: shared.RewardTypePP, RewardValue: 5},
		{Day: 4, RewardType: shared.RewardTypeXP, RewardValue: 30},
		{Day: 5, RewardType: shared.RewardTypePP, RewardValue: 10},
		{Day: 6, RewardType: shared.RewardTypeXP, RewardValue: 50},
		{Day: 7, RewardType: shared.RewardTypePP, RewardValue: 25},
	}

	now := time.Now()
	for i := range calendar {
		id, _ := uuid.NewV7()
		calendar[i].ID = id.String()
		calendar[i].CreatedAt = now
	}

	log.Printf("Seeding %d reward calendar entries", len(calendar))
	return s.db.Create(&calendar).Error
}
