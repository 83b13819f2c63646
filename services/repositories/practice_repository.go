package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/poise-app/poise_api/model"
	"gorm.io/gorm"
)

// PracticeRepository handles the append-only practice session log.
type PracticeRepository struct {
	BaseRepository
}

func NewPracticeRepository(db *gorm.DB) *PracticeRepository {
	return &PracticeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *PracticeRepository) CreateSession(session *model.PracticeSession) error {
	if session.ID == "" {
		id, _ := uuid.NewV7()
		session.ID = id.String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	return ds.db.Create(session).Error
}

// CountSessionsSince counts scored sessions created at or after the given
// instant; callers pass local midnight to get "today's" usage.
func (ds *PracticeRepository) CountSessionsSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.PracticeSession{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (ds *PracticeRepository) GetRecentSessions(userID string, limit int) ([]model.PracticeSession, error) {
	var sessions []model.PracticeSession
	err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// SetFavorite is the only permitted post-creation mutation of a session.
func (ds *PracticeRepository) SetFavorite(userID, sessionID string, favorite bool) error {
	result := ds.db.Model(&model.PracticeSession{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("is_favorite", favorite)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ds *PracticeRepository) CountByMode(userID, mode string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.PracticeSession{}).
		Where("user_id = ? AND mode = ?", userID, mode).
		Count(&count).Error
	return count, err
}

func (ds *PracticeRepository) BestScore(userID string) (int, error) {
	var best *int
	err := ds.db.Model(&model.PracticeSession{}).
		Where("user_id = ?", userID).
		Select("MAX(score)").
		Scan(&best).Error
	if err != nil || best == nil {
		return 0, err
	}
	return *best, nil
}
