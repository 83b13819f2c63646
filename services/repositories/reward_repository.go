package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
	"gorm.io/gorm"
)

// RewardRepository serves the static 7-day calendar and the per-user claim log.
type RewardRepository struct {
	BaseRepository
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *RewardRepository) GetDailyReward(day int) (*model.DailyLoginReward, error) {
	return ds.GetDailyRewardTx(ds.db, day)
}

func (ds *RewardRepository) GetDailyRewardTx(tx *gorm.DB, day int) (*model.DailyLoginReward, error) {
	var reward model.DailyLoginReward
	if err := tx.Where("day = ?", day).First(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (ds *RewardRepository) GetCalendar() ([]model.DailyLoginReward, error) {
	var rewards []model.DailyLoginReward
	err := ds.db.Order("day ASC").Find(&rewards).Error
	return rewards, err
}

// GetLatestClaim returns nil, nil when the user has never claimed.
func (ds *RewardRepository) GetLatestClaim(userID string) (*model.UserLoginReward, error) {
	return ds.GetLatestClaimTx(ds.db, userID)
}

// GetLatestClaimTx is GetLatestClaim on an existing transaction, so claim
// checks can share the caller's lock scope.
func (ds *RewardRepository) GetLatestClaimTx(tx *gorm.DB, userID string) (*model.UserLoginReward, error) {
	var claim model.UserLoginReward
	err := tx.Where("user_id = ?", userID).
		Order("claimed_at DESC").
		First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (ds *RewardRepository) CreateClaim(claim *model.UserLoginReward) error {
	return ds.CreateClaimTx(ds.db, claim)
}

func (ds *RewardRepository) CreateClaimTx(tx *gorm.DB, claim *model.UserLoginReward) error {
	if claim.ID == "" {
		id, _ := uuid.NewV7()
		claim.ID = id.String()
	}
	if claim.ClaimedDate.IsZero() {
		claim.ClaimedDate = shared.DateOf(claim.ClaimedAt)
	}
	return tx.Create(claim).Error
}

// HasCompletedCycle reports whether the user has ever claimed a day-7 reward.
func (ds *RewardRepository) HasCompletedCycle(userID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.UserLoginReward{}).
		Where("user_id = ? AND claimed_day = ?", userID, 7).
		Count(&count).Error
	return count > 0, err
}

// GetClaimsForCycle returns all claims belonging to the cycle identified by its
// start date, ordered by claimed day; the UI renders these as a 7-slot strip.
func (ds *RewardRepository) GetClaimsForCycle(userID string, cycleStart time.Time) ([]model.UserLoginReward, error) {
	var claims []model.UserLoginReward
	err := ds.db.Where("user_id = ? AND cycle_start_date = ?", userID, cycleStart).
		Order("claimed_day ASC").
		Find(&claims).Error
	return claims, err
}
