package dto

import "time"

type StreakUpdateResponse struct {
	StreakBonus   int `json:"streak_bonus"`
	CurrentStreak int `json:"current_streak"`
}

type StreakStatusResponse struct {
	CurrentStreak    int        `json:"current_streak"`
	BestStreak       int        `json:"best_streak"`
	LastPracticeDate *time.Time `json:"last_practice_date"`
	StreakBonus      int        `json:"streak_bonus"`
}

type MilestoneResponse struct {
	Days       int  `json:"days"`
	Multiplier int  `json:"multiplier"`
	Reached    bool `json:"reached"` // true when no further milestone exists
}

type ProgressResponse struct {
	UserID        string             `json:"user_id"`
	TotalXP       int                `json:"total_xp"`
	TotalPP       int                `json:"total_pp"`
	Level         int                `json:"level"`
	XPToNextLevel int                `json:"xp_to_next_level"`
	CurrentStreak int                `json:"current_streak"`
	BestStreak    int                `json:"best_streak"`
	Multiplier    int                `json:"multiplier"`
	NextMilestone *MilestoneResponse `json:"next_milestone,omitempty"`
	PracticeCount int                `json:"practice_count"`
	GiftsSent     int                `json:"gifts_sent"`
}

type GiftSentResponse struct {
	GiftsSent int             `json:"gifts_sent"`
	NewBadges []BadgeResponse `json:"new_badges"`
}
