// dto/practice.go
package dto

import "time"

type SubmitPracticeRequest struct {
	Score    int    `json:"score" validate:"min=0,max=100"`
	Mode     string `json:"mode" validate:"required,oneof=text voice quick"`
	Category string `json:"category" validate:"max=64"`
	Tone     string `json:"tone" validate:"max=64"`
}

func (r SubmitPracticeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UsageCheckResponse struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"` // -1 when unlimited
	Limit     int    `json:"limit"`     // -1 when unlimited
	Tier      string `json:"tier"`
	UsedToday int    `json:"used_today"`
}

type PracticeSessionResponse struct {
	ID         string    `json:"id"`
	Score      int       `json:"score"`
	Mode       string    `json:"mode"`
	XPEarned   int       `json:"xp_earned"`
	PPEarned   int       `json:"pp_earned"`
	Category   string    `json:"category,omitempty"`
	Tone       string    `json:"tone,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

type PracticeResultResponse struct {
	Session       PracticeSessionResponse `json:"session"`
	XPEarned      int                     `json:"xp_earned"`
	PPEarned      int                     `json:"pp_earned"`
	StreakBonus   int                     `json:"streak_bonus"`
	Multiplier    int                     `json:"multiplier"`
	CurrentStreak int                     `json:"current_streak"`
	TotalXP       int                     `json:"total_xp"`
	TotalPP       int                     `json:"total_pp"`
	Level         int                     `json:"level"`
	LeveledUp     bool                    `json:"leveled_up"`
	NewBadges     []BadgeResponse         `json:"new_badges"`
}

type SessionListResponse struct {
	Sessions []PracticeSessionResponse `json:"sessions"`
	Total    int                       `json:"total"`
}

type FavoriteSessionRequest struct {
	Favorite bool `json:"favorite"`
}
