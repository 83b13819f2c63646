package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poise-app/poise_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository owns the UserProgress row. Every mutation goes through
// WithProgressLock so concurrent reward paths for the same user serialize on a
// row lock instead of racing read-modify-write cycles.
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProgressRepository) GetUserProgress(userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	if err := ds.db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetOrCreateUserProgress lazily creates the progress record on first access.
func (ds *ProgressRepository) GetOrCreateUserProgress(userID string) (*model.UserProgress, error) {
	progress, err := ds.GetUserProgress(userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := ds.createProgress(ds.db, userID)
	if err != nil {
		// A concurrent request may have created the row first.
		if existing, getErr := ds.GetUserProgress(userID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

func (ds *ProgressRepository) createProgress(tx *gorm.DB, userID string) (*model.UserProgress, error) {
	id, _ := uuid.NewV7()
	now := time.Now()
	progress := &model.UserProgress{
		ID:        id.String(),
		UserID:    userID,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// WithProgressLock runs fn with the user's progress row locked FOR UPDATE
// inside a transaction, creating the row first if it does not exist. fn may
// mutate the record; it is saved on success.
func (ds *ProgressRepository) WithProgressLock(userID string, fn func(tx *gorm.DB, progress *model.UserProgress) error) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("user_id = ?", userID)
		// SQLite serializes writes on its own and rejects FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var progress model.UserProgress
		err := query.First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created, createErr := ds.createProgress(tx, userID)
			if createErr != nil {
				return createErr
			}
			progress = *created
		} else if err != nil {
			return err
		}

		if err := fn(tx, &progress); err != nil {
			return err
		}

		progress.UpdatedAt = time.Now()
		return tx.Save(&progress).Error
	})
}
