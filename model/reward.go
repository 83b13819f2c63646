package model

import "time"

// DailyLoginReward is the static 7-row reward calendar, seeded once.
type DailyLoginReward struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Day         int       `json:"day" gorm:"uniqueIndex;not null"` // 1-7
	RewardType  string    `json:"reward_type" gorm:"not null"`     // xp, pp
	RewardValue int       `json:"reward_value" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserLoginReward is the append-only claim log. The latest row for a user
// determines the cycle state; the unique index on (user, calendar day)
// enforces at most one claim per day even under concurrent requests.
type UserLoginReward struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"index;uniqueIndex:idx_user_claim_day;not null"`
	ClaimedDay     int       `json:"claimed_day" gorm:"not null"` // 1-7
	ClaimedAt      time.Time `json:"claimed_at" gorm:"not null"`
	ClaimedDate    time.Time `json:"claimed_date" gorm:"uniqueIndex:idx_user_claim_day;not null"`
	CycleStartDate time.Time `json:"cycle_start_date" gorm:"not null"`
}
