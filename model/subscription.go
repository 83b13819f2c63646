package model

import "time"

// Subscription mirrors the billing provider's subscription for a user. Tier is
// authoritative for usage limits unless a billing customer reference exists, in
// which case the provider's product metadata wins.
type Subscription struct {
	ID                    string    `json:"id" gorm:"primaryKey"`
	UserID                string    `json:"user_id" gorm:"uniqueIndex;not null"`
	Tier                  string    `json:"tier" gorm:"default:free"`     // free, plus, pro
	Status                string    `json:"status" gorm:"default:active"` // active, inactive, cancelled
	BillingCustomerID     string    `json:"billing_customer_id"`
	BillingSubscriptionID string    `json:"billing_subscription_id"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
