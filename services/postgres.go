package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "poise_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.User{},
		&model.Subscription{},

		// Progression models
		&model.UserProgress{},
		&model.PracticeSession{},

		// Reward models
		&model.DailyLoginReward{},
		&model.UserLoginReward{},
		&model.Badge{},
		&model.UserBadge{},

		// Challenge models
		&model.WeeklyChallenge{},
		&model.UserWeeklyChallengeProgress{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	err = ds.seedInitialData()
	if err != nil {
		log.Printf("Failed to seed initial data: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// seedInitialData is idempotent: each reference table is only populated when
// empty, so restarts and horizontally scaled instances don't duplicate rows.
func (ds *PostgresService) seedInitialData() error {
	if err := ds.seedRewardCalendar(); err != nil {
		return err
	}
	if err := ds.seedBadges(); err != nil {
		return err
	}
	return ds.seedWeeklyChallenges()
}

func (ds *PostgresService) seedRewardCalendar() error {
	var count int64
	if err := ds.db.Model(&model.DailyLoginReward{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	calendar := []model.DailyLoginReward{
		{Day: 1, RewardType: shared.RewardTypeXP, RewardValue: 10},
		{Day: 2, RewardType: shared.RewardTypeXP, RewardValue: 20},
		{Day: 3, RewardType: shared.RewardTypePP, RewardValue: 5},
		{Day: 4, RewardType: shared.RewardTypeXP, RewardValue: 30},
		{Day: 5, RewardType: shared.RewardTypePP, RewardValue: 10},
		{Day: 6, RewardType: shared.RewardTypeXP, RewardValue: 50},
		{Day: 7, RewardType: shared.RewardTypePP, RewardValue: 25},
	}

	now := time.Now()
	for i := range calendar {
		id, _ := uuid.NewV7()
		calendar[i].ID = id.String()
		calendar[i].CreatedAt = now
	}

	log.Println("Seeding 7-day login reward calendar")
	return ds.db.Create(&calendar).Error
}

func (ds *PostgresService) seedBadges() error {
	var count int64
	if err := ds.db.Model(&model.Badge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	badges := []model.Badge{
		{Name: "First Steps", Icon: "seedling", Description: "Complete your first practice session", RequirementType: shared.RequirementPracticeCount, RequirementValue: 1, XPReward: 10},
		{Name: "Regular", Icon: "calendar", Description: "Complete 10 practice sessions", RequirementType: shared.RequirementPracticeCount, RequirementValue: 10, XPReward: 25},
		{Name: "Dedicated", Icon: "flexed-biceps", Description: "Complete 50 practice sessions", RequirementType: shared.RequirementPracticeCount, RequirementValue: 50, XPReward: 50, PPReward: 10},
		{Name: "Century Club", Icon: "trophy", Description: "Complete 100 practice sessions", RequirementType: shared.RequirementPracticeCount, RequirementValue: 100, XPReward: 100, PPReward: 25},
		{Name: "Finding Your Voice", Icon: "microphone", Description: "Complete 5 voice practice sessions", RequirementType: shared.RequirementVoiceCount, RequirementValue: 5, XPReward: 25},
		{Name: "Smooth Talker", Icon: "speaking-head", Description: "Complete 25 voice practice sessions", RequirementType: shared.RequirementVoiceCount, RequirementValue: 25, XPReward: 50, PPReward: 10},
		{Name: "Sharp Read", Icon: "target", Description: "Score 90 or higher on a session", RequirementType: shared.RequirementScore, RequirementValue: 90, XPReward: 30},
		{Name: "Perfect Read", Icon: "gem", Description: "Score 100 on a session", RequirementType: shared.RequirementScore, RequirementValue: 100, XPReward: 50, PPReward: 10},
		{Name: "Week Streak", Icon: "fire", Description: "Practice 7 days in a row", RequirementType: shared.RequirementStreakDays, RequirementValue: 7, XPReward: 50},
		{Name: "Fortnight Flame", Icon: "lightning", Description: "Practice 14 days in a row", RequirementType: shared.RequirementStreakDays, RequirementValue: 14, XPReward: 100, PPReward: 10},
		{Name: "Monthly Master", Icon: "glowing-star", Description: "Practice 30 days in a row", RequirementType: shared.RequirementStreakDays, RequirementValue: 30, XPReward: 250, PPReward: 50},
		{Name: "Generous Heart", Icon: "gift", Description: "Send your first gift", RequirementType: shared.RequirementGiftCount, RequirementValue: 1, XPReward: 10},
		{Name: "Gift Giver", Icon: "gift-heart", Description: "Send 10 gifts", RequirementType: shared.RequirementGiftCount, RequirementValue: 10, XPReward: 50, PPReward: 10},
		{Name: "Full Cycle", Icon: "rainbow", Description: "Claim all 7 daily login rewards in a row", RequirementType: shared.RequirementCycleComplete, RequirementValue: 1, XPReward: 75, PPReward: 15},
	}

	now := time.Now()
	for i := range badges {
		id, _ := uuid.NewV7()
		badges[i].ID = id.String()
		badges[i].IsActive = true
		badges[i].CreatedAt = now
	}

	log.Printf("Seeding %d badges", len(badges))
	return ds.db.Create(&badges).Error
}

// seedWeeklyChallenges covers the boot week only; future weeks come from the
// seed binary or the content pipeline.
func (ds *PostgresService) seedWeeklyChallenges() error {
	weekStart := shared.WeekStartOf(time.Now())

	var count int64
	if err := ds.db.Model(&model.WeeklyChallenge{}).
		Where("week_start_date = ?", weekStart).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	challenges := []model.WeeklyChallenge{
		{Title: "Consistent Practice", Description: "Complete 5 practice sessions this week", ChallengeType: shared.ChallengeTypeCount, GoalValue: 5, XPReward: 50, PPReward: 10},
		{Title: "High Performer", Description: "Score 85 or higher on a session this week", ChallengeType: shared.ChallengeTypeScore, GoalValue: 85, XPReward: 75, PPReward: 15},
		{Title: "Keep It Going", Description: "Reach a 5-day streak this week", ChallengeType: shared.ChallengeTypeStreak, GoalValue: 5, XPReward: 60, PPReward: 10},
	}

	now := time.Now()
	for i := range challenges {
		id, _ := uuid.NewV7()
		challenges[i].ID = id.String()
		challenges[i].WeekStartDate = weekStart
		challenges[i].CreatedAt = now
	}

	log.Printf("Seeding %d weekly challenges for week of %s", len(challenges), weekStart.Format("2006-01-02"))
	return ds.db.Create(&challenges).Error
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	// Already mapped by a service; pass through untouched.
	if _, ok := shared.GetAppError(err); ok {
		return err
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "relation") && strings.Contains(err.Error(), "does not exist") {
			statusCode = http.StatusInternalServerError
			errorType = "SCHEMA_ERROR"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return &shared.AppError{
		StatusCode: statusCode,
		Message:    errorType,
		Err:        err,
	}
}
