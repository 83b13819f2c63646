package model

import "time"

// Badge is the static catalog. Requirements are a closed set of tagged variants
// (practice_count, voice_count, score_threshold, streak_days, gift_count,
// cycle_complete) evaluated uniformly by the badge service.
type Badge struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"uniqueIndex;not null"`
	Icon             string    `json:"icon"`
	Description      string    `json:"description"`
	RequirementType  string    `json:"requirement_type" gorm:"not null"`
	RequirementValue int       `json:"requirement_value" gorm:"not null"`
	XPReward         int       `json:"xp_reward" gorm:"default:0"`
	PPReward         int       `json:"pp_reward" gorm:"default:0"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
}

// UserBadge records a one-time award. The composite unique index backs the
// at-most-once invariant alongside the evaluator's pre-check.
type UserBadge struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	UserID   string    `json:"user_id" gorm:"uniqueIndex:idx_user_badge;not null"`
	BadgeID  string    `json:"badge_id" gorm:"uniqueIndex:idx_user_badge;not null"`
	EarnedAt time.Time `json:"earned_at"`

	Badge Badge `json:"badge" gorm:"foreignKey:BadgeID"`
}
