package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/poise-app/poise_api/model"
	"gorm.io/gorm"
)

// BadgeRepository serves the badge catalog and the one-award-per-user log.
type BadgeRepository struct {
	BaseRepository
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *BadgeRepository) GetActiveBadges() ([]model.Badge, error) {
	var badges []model.Badge
	err := ds.db.Where("is_active = ?", true).Order("created_at ASC").Find(&badges).Error
	return badges, err
}

func (ds *BadgeRepository) GetUserBadges(userID string) ([]model.UserBadge, error) {
	var awarded []model.UserBadge
	err := ds.db.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&awarded).Error
	return awarded, err
}

// GetUserBadgeIDs returns the set of badge ids already awarded to the user,
// consulted before every insert so re-evaluation never duplicates an award.
func (ds *BadgeRepository) GetUserBadgeIDs(userID string) (map[string]bool, error) {
	var ids []string
	err := ds.db.Model(&model.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, err
	}

	owned := make(map[string]bool, len(ids))
	for _, id := range ids {
		owned[id] = true
	}
	return owned, nil
}

func (ds *BadgeRepository) CreateUserBadge(userID, badgeID string, earnedAt time.Time) error {
	id, _ := uuid.NewV7()
	return ds.db.Create(&model.UserBadge{
		ID:       id.String(),
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: earnedAt,
	}).Error
}
