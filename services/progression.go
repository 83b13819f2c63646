package services

import (
	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/poise-app/poise_api/dto"
	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/services/repositories"
	"github.com/poise-app/poise_api/shared"
)

// ProgressionService owns the streak, XP and level math. All mutations of the
// per-user progress row run under a row lock so concurrent submissions from
// the same user serialize.
type ProgressionService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	badgeSvc *BadgeService

	progressRepo *repositories.ProgressRepository
	clock        shared.Clock
}

const PROGRESSION_SVC = "progression_svc"

const (
	xpPerLevel     = 100
	streakBonusCap = 50
)

// streakMilestones maps streak length to the XP multiplier unlocked at that
// length, ordered ascending.
var streakMilestones = []struct {
	Days       int
	Multiplier int
}{
	{7, 2},
	{14, 3},
	{30, 5},
}

func (svc ProgressionService) Id() string {
	return PROGRESSION_SVC
}

func (svc *ProgressionService) Configure(ctx *context.Context) error {
	svc.clock = shared.SystemClock{}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressionService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.badgeSvc = svc.Service(BADGE_SVC).(*BadgeService)
	svc.progressRepo = repositories.NewProgressRepository(svc.sqlSvc.Db())
	return nil
}

// MultiplierForStreak returns the XP multiplier earned at the given streak
// length. Streaks below the first milestone multiply by 1.
func MultiplierForStreak(streak int) int {
	multiplier := 1
	for _, m := range streakMilestones {
		if streak >= m.Days {
			multiplier = m.Multiplier
		}
	}
	return multiplier
}

// NextMilestone returns the next unreached milestone. reached reports that the
// final milestone has been passed, in which case days and multiplier are zero.
func NextMilestone(streak int) (days, multiplier int, reached bool) {
	for _, m := range streakMilestones {
		if streak < m.Days {
			return m.Days, m.Multiplier, false
		}
	}
	return 0, 0, true
}

// LevelForXP derives the level from lifetime XP: 100 XP per level, floor 1.
func LevelForXP(totalXP int) int {
	return totalXP/xpPerLevel + 1
}

// StreakBonusFor returns the flat XP bonus for a streak, capped at 50.
func StreakBonusFor(streak int) int {
	bonus := streak * 5
	if bonus > streakBonusCap {
		bonus = streakBonusCap
	}
	return bonus
}

// BaseRewardForScore converts a 0-100 practice score into the base reward
// before streak bonus and multiplier. XP is flat per session; PP scales with
// how well the attempt scored.
func BaseRewardForScore(score int) (xpBase, ppBase int) {
	return 20, score / 10
}

// UpdateStreak advances the user's daily streak. Multiple calls on the same
// calendar day leave the streak untouched and grant no bonus; a call one day
// after the last check-in extends it; anything later resets it to 1.
func (svc *ProgressionService) UpdateStreak(userID string) (*dto.StreakUpdateResponse, error) {
	resp := &dto.StreakUpdateResponse{}

	err := svc.progressRepo.WithProgressLock(userID, func(tx *gorm.DB, progress *model.UserProgress) error {
		now := svc.clock.Now()

		sameDay := false
		if progress.LastCheckIn != nil {
			switch shared.DaysBetween(*progress.LastCheckIn, now) {
			case 0:
				sameDay = true
			case 1:
				progress.CurrentStreak++
			default:
				progress.CurrentStreak = 1
			}
		} else {
			progress.CurrentStreak = 1
		}

		if progress.CurrentStreak > progress.BestStreak {
			progress.BestStreak = progress.CurrentStreak
		}
		// The check-in timestamp moves forward on every call, including
		// repeat check-ins on the same day.
		progress.LastCheckIn = &now

		resp.CurrentStreak = progress.CurrentStreak
		if !sameDay {
			resp.StreakBonus = StreakBonusFor(progress.CurrentStreak)
		}
		return nil
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return resp, nil
}

// ApplyPracticeReward credits a scored session's XP/PP and bumps the lifetime
// practice counter in one locked write. Returns the updated progress and
// whether the user crossed a level boundary.
func (svc *ProgressionService) ApplyPracticeReward(userID string, xp, pp int) (*model.UserProgress, bool, error) {
	return svc.applyReward(userID, xp, pp, true)
}

// ApplyReward credits XP/PP without touching the practice counter. Used by
// login rewards, badges and challenge payouts.
func (svc *ProgressionService) ApplyReward(userID string, xp, pp int) (*model.UserProgress, bool, error) {
	return svc.applyReward(userID, xp, pp, false)
}

func (svc *ProgressionService) applyReward(userID string, xp, pp int, countPractice bool) (*model.UserProgress, bool, error) {
	var result model.UserProgress
	leveledUp := false

	err := svc.progressRepo.WithProgressLock(userID, func(tx *gorm.DB, progress *model.UserProgress) error {
		before := progress.Level

		progress.TotalXP += xp
		progress.TotalPP += pp
		progress.Level = LevelForXP(progress.TotalXP)
		if countPractice {
			progress.PracticeCount++
		}

		leveledUp = progress.Level > before
		result = *progress
		return nil
	})
	if err != nil {
		return nil, false, svc.sqlSvc.HandleError(err)
	}

	if leveledUp {
		// The milestone feed is an external consumer; the log line is the
		// handoff point.
		log.WithFields(log.Fields{
			"user_id": userID,
			"level":   result.Level,
		}).Info("User leveled up")
	}

	return &result, leveledUp, nil
}

// RecordGiftSent bumps the gift counter and re-evaluates gift badges.
func (svc *ProgressionService) RecordGiftSent(userID string) (*dto.GiftSentResponse, error) {
	resp := &dto.GiftSentResponse{NewBadges: []dto.BadgeResponse{}}

	err := svc.progressRepo.WithProgressLock(userID, func(tx *gorm.DB, progress *model.UserProgress) error {
		progress.GiftsSent++
		resp.GiftsSent = progress.GiftsSent
		return nil
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	newBadges, err := svc.badgeSvc.CheckAndAwardBadges(userID, shared.EventGiftSent)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Badge evaluation after gift failed")
	} else {
		resp.NewBadges = newBadges
	}

	return resp, nil
}

func (svc *ProgressionService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	progress, err := svc.progressRepo.GetOrCreateUserProgress(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.ProgressResponse{
		UserID:        progress.UserID,
		TotalXP:       progress.TotalXP,
		TotalPP:       progress.TotalPP,
		Level:         progress.Level,
		XPToNextLevel: progress.Level*xpPerLevel - progress.TotalXP,
		CurrentStreak: progress.CurrentStreak,
		BestStreak:    progress.BestStreak,
		Multiplier:    MultiplierForStreak(progress.CurrentStreak),
		PracticeCount: progress.PracticeCount,
		GiftsSent:     progress.GiftsSent,
	}

	days, multiplier, reached := NextMilestone(progress.CurrentStreak)
	if !reached {
		resp.NextMilestone = &dto.MilestoneResponse{Days: days, Multiplier: multiplier}
	} else {
		resp.NextMilestone = &dto.MilestoneResponse{Reached: true}
	}

	return resp, nil
}

func (svc *ProgressionService) GetStreakStatus(userID string) (*dto.StreakStatusResponse, error) {
	progress, err := svc.progressRepo.GetOrCreateUserProgress(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.StreakStatusResponse{
		CurrentStreak:    progress.CurrentStreak,
		BestStreak:       progress.BestStreak,
		LastPracticeDate: progress.LastCheckIn,
		StreakBonus:      StreakBonusFor(progress.CurrentStreak),
	}, nil
}
