// model/progression.go
package model

import "time"

// UserProgress is the single per-user progress record every reward path mutates.
// Level is derived from TotalXP (TotalXP/100 + 1) and recomputed on every change;
// BestStreak >= CurrentStreak always holds after an update.
type UserProgress struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	UserID        string     `json:"user_id" gorm:"uniqueIndex;not null"`
	TotalXP       int        `json:"total_xp" gorm:"default:0"`
	TotalPP       int        `json:"total_pp" gorm:"default:0"`
	Level         int        `json:"level" gorm:"default:1"`
	CurrentStreak int        `json:"current_streak" gorm:"default:0"`
	BestStreak    int        `json:"best_streak" gorm:"default:0"`
	LastCheckIn   *time.Time `json:"last_check_in"`
	PracticeCount int        `json:"practice_count" gorm:"default:0"`
	GiftsSent     int        `json:"gifts_sent" gorm:"default:0"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PracticeSession is append-only; one row per scored attempt. Only IsFavorite
// changes after creation. Daily usage counts and badge stats aggregate over it.
type PracticeSession struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	Score      int       `json:"score" gorm:"not null"` // 0-100
	Mode       string    `json:"mode" gorm:"not null"`  // text, voice, quick
	XPEarned   int       `json:"xp_earned"`
	PPEarned   int       `json:"pp_earned"`
	Category   string    `json:"category"`
	Tone       string    `json:"tone"`
	IsFavorite bool      `json:"is_favorite" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}
