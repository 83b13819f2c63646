package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
)

// BadgeSeeder populates the badge catalog. Existing badges (by name) are left
// untouched so re-running never resets live requirements.
type BadgeSeeder struct {
	db *gorm.DB
}

func NewBadgeSeeder(db *gorm.DB) *BadgeSeeder {
	return &BadgeSeeder{db: db}
}

func (s *BadgeSeeder) SeedBadges() error {
	badges := []model.Badge{
		{Name: "First Steps", Icon: "seedling", Description: "Complete your first practice session", RequirementType: shared.RequirementPracticeCount, RequirementValue: 1, XPReward: 10},
		{Name: "Regular", Icon: "calendar", Description: "Complete 10 practice sessions", RequirementType: shared.RequirementPracticeCount, RequirementValue: 10, XPReward: 25},
		{Name: "Dedicated", Icon: "flexed-biceps", Description: "Complete 50 practice sessions", RequirementType: shared.RequirementPracticeCount, RequirementValue: 50, XPReward: 50, PPReward: 10},
		{Name: "Century Club", Icon: "trophy", Description: "Complete 100 practice sessions", RequirementType: shared.RequirementPracticeCount, RequirementValue: 100, XPReward: 100, PPReward: 25},
		{Name: "Finding Your Voice", Icon: "microphone", Description: "Complete 5 voice practice sessions", RequirementType: shared.RequirementVoiceCount, RequirementValue: 5, XPReward: 25},
		{Name: "Smooth Talker", Icon: "speaking-head", Description: "Complete 25 voice practice sessions", RequirementType: shared.RequirementVoiceCount, RequirementValue: 25, XPReward: 50, PPReward: 10},
		{Name: "Sharp Read", Icon: "target", Description: "Score 90 or higher on a session", RequirementType: shared.RequirementScore, RequirementValue: 90, XPReward: 30},
		{Name: "Perfect Read", Icon: "gem", Description: "Score 100 on a session", RequirementType: shared.RequirementScore, RequirementValue: 100, XPReward: 50, PPReward: 10},
		{Name: "Week Streak", Icon: "fire", Description: "Practice 7 days in a row", RequirementType: shared.RequirementStreakDays, RequirementValue: 7, XPReward: 50},
		{Name: "Fortnight Flame", Icon: "lightning", Description: "Practice 14 days in a row", RequirementType: shared.RequirementStreakDays, RequirementValue: 14, XPReward: 100, PPReward: 10},
		{Name: "Monthly Master", Icon: "glowing-star", Description: "Practice 30 days in a row", RequirementType: shared.RequirementStreakDays, RequirementValue: 30, XPReward: 250, PPReward: 50},
		{Name: "Generous Heart", Icon: "gift", Description: "Send your first gift", RequirementType: shared.RequirementGiftCount, RequirementValue: 1, XPReward: 10},
		{Name: "Gift Giver", Icon: "gift-heart", Description: "Send 10 gifts", RequirementType: shared.RequirementGiftCount, RequirementValue: 10, XPReward: 50, PPReward: 10},
		{Name: "Full Cycle", Icon: "rainbow", Description: "Claim all 7 daily login rewards in a row", RequirementType: shared.RequirementCycleComplete, RequirementValue: 1, XPReward: 75, PPReward: 15},
	}

	created := 0
	for _, badge := range badges {
		var count int64
		if err := s.db.Model(&model.Badge{}).Where("name = ?", badge.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		id, _ := uuid.NewV7()
		badge.ID = id.String()
		badge.IsActive = true
		badge.CreatedAt = time.Now()

		if err := s.db.Create(&badge).Error; err != nil {
			return err
		}
		created++
	}

	log.Printf("Seeded %d new badges (%d already present)", created, len(badges)-created)
	return nil
}
