package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poise-app/poise_api/model"
	"gorm.io/gorm"
)

// SubscriptionRepository holds the locally mirrored billing subscription.
type SubscriptionRepository struct {
	BaseRepository
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// GetSubscription returns nil, nil when the user has no local record; callers
// treat that as free tier.
func (ds *SubscriptionRepository) GetSubscription(userID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := ds.db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (ds *SubscriptionRepository) UpsertSubscription(sub *model.Subscription) error {
	existing, err := ds.GetSubscription(sub.UserID)
	if err != nil {
		return err
	}
	now := time.Now()
	if existing == nil {
		id, _ := uuid.NewV7()
		sub.ID = id.String()
		sub.CreatedAt = now
		sub.UpdatedAt = now
		return ds.db.Create(sub).Error
	}
	return ds.db.Model(&model.Subscription{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
		"tier":                    sub.Tier,
		"status":                  sub.Status,
		"billing_customer_id":     sub.BillingCustomerID,
		"billing_subscription_id": sub.BillingSubscriptionID,
		"updated_at":              now,
	}).Error
}
