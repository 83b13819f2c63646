package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poise-app/poise_api/model"
	"gorm.io/gorm"
)

// ChallengeRepository serves week-scoped challenge definitions and per-user
// progress rows.
type ChallengeRepository struct {
	BaseRepository
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ChallengeRepository) GetChallengesForWeek(weekStart time.Time) ([]model.WeeklyChallenge, error) {
	var challenges []model.WeeklyChallenge
	err := ds.db.Where("week_start_date = ?", weekStart).
		Order("created_at ASC").
		Find(&challenges).Error
	return challenges, err
}

func (ds *ChallengeRepository) GetChallenge(challengeID string) (*model.WeeklyChallenge, error) {
	var challenge model.WeeklyChallenge
	if err := ds.db.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// GetProgress returns nil, nil when the user has no progress row yet.
func (ds *ChallengeRepository) GetProgress(userID, challengeID string) (*model.UserWeeklyChallengeProgress, error) {
	var progress model.UserWeeklyChallengeProgress
	err := ds.db.Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (ds *ChallengeRepository) CreateProgress(userID, challengeID string) (*model.UserWeeklyChallengeProgress, error) {
	id, _ := uuid.NewV7()
	now := time.Now()
	progress := &model.UserWeeklyChallengeProgress{
		ID:          id.String(),
		UserID:      userID,
		ChallengeID: challengeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := ds.db.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (ds *ChallengeRepository) UpdateProgress(progress *model.UserWeeklyChallengeProgress) error {
	progress.UpdatedAt = time.Now()
	return ds.db.Save(progress).Error
}

// MarkRewardClaimed flips reward_claimed once; the guarded WHERE makes the
// transition idempotent under concurrent claims.
func (ds *ChallengeRepository) MarkRewardClaimed(progressID string) (bool, error) {
	result := ds.db.Model(&model.UserWeeklyChallengeProgress{}).
		Where("id = ? AND completed = ? AND reward_claimed = ?", progressID, true, false).
		Updates(map[string]interface{}{
			"reward_claimed": true,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
