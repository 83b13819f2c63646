package model

import "time"

// WeeklyChallenge is a week-scoped goal definition, anchored to Monday midnight.
type WeeklyChallenge struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description"`
	ChallengeType string    `json:"challenge_type" gorm:"not null"` // count, score, streak
	GoalValue     int       `json:"goal_value" gorm:"not null"`
	XPReward      int       `json:"xp_reward" gorm:"default:0"`
	PPReward      int       `json:"pp_reward" gorm:"default:0"`
	WeekStartDate time.Time `json:"week_start_date" gorm:"index;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserWeeklyChallengeProgress tracks a user's progress toward one challenge.
// Completed flips false->true once, RewardClaimed flips false->true once after
// Completed.
type UserWeeklyChallengeProgress struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"uniqueIndex:idx_user_challenge;not null"`
	ChallengeID   string    `json:"challenge_id" gorm:"uniqueIndex:idx_user_challenge;not null"`
	Progress      int       `json:"progress" gorm:"default:0"`
	Completed     bool      `json:"completed" gorm:"default:false"`
	RewardClaimed bool      `json:"reward_claimed" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Challenge WeeklyChallenge `json:"challenge" gorm:"foreignKey:ChallengeID"`
}
