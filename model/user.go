package model

import "time"

// User is intentionally thin here; account lifecycle lives in the auth service,
// which is a separate deployment. The engine only needs a stable owner id.
type User struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"unique"`
	Username  string `gorm:"unique;not null"`
	LastLogin time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
