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

// BadgeService evaluates the badge catalog against a user's lifetime stats and
// awards each badge at most once. Evaluation is re-runnable: already-awarded
// badges are skipped and requirements only ever move toward satisfaction.
type BadgeService struct {
	context.DefaultService

	sqlSvc *PostgresService

	badgeRepo    *repositories.BadgeRepository
	progressRepo *repositories.ProgressRepository
	practiceRepo *repositories.PracticeRepository
	rewardRepo   *repositories.RewardRepository
	clock        shared.Clock
}

const BADGE_SVC = "badge_svc"

// eventRequirements narrows which requirement types an event can newly
// satisfy, so a gift doesn't trigger practice-count queries and vice versa.
var eventRequirements = map[string][]string{
	shared.EventPractice:      {shared.RequirementPracticeCount, shared.RequirementScore, shared.RequirementStreakDays},
	shared.EventVoicePractice: {shared.RequirementPracticeCount, shared.RequirementVoiceCount, shared.RequirementScore, shared.RequirementStreakDays},
	shared.EventStreakUpdate:  {shared.RequirementStreakDays, shared.RequirementCycleComplete},
	shared.EventGiftSent:      {shared.RequirementGiftCount},
}

func (svc BadgeService) Id() string {
	return BADGE_SVC
}

func (svc *BadgeService) Configure(ctx *context.Context) error {
	svc.clock = shared.SystemClock{}
	return svc.DefaultService.Configure(ctx)
}

func (svc *BadgeService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	db := svc.sqlSvc.Db()
	svc.badgeRepo = repositories.NewBadgeRepository(db)
	svc.progressRepo = repositories.NewProgressRepository(db)
	svc.practiceRepo = repositories.NewPracticeRepository(db)
	svc.rewardRepo = repositories.NewRewardRepository(db)
	return nil
}

// CheckAndAwardBadges re-evaluates unearned badges whose requirement type the
// event can affect, awards the satisfied ones and credits their XP/PP. Returns
// the newly earned badges in catalog order.
func (svc *BadgeService) CheckAndAwardBadges(userID, event string) ([]dto.BadgeResponse, error) {
	badges, err := svc.badgeRepo.GetActiveBadges()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	owned, err := svc.badgeRepo.GetUserBadgeIDs(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	relevant := map[string]bool{}
	for _, reqType := range eventRequirements[event] {
		relevant[reqType] = true
	}

	newBadges := []dto.BadgeResponse{}
	for _, badge := range badges {
		if owned[badge.ID] {
			continue
		}
		if len(relevant) > 0 && !relevant[badge.RequirementType] {
			continue
		}

		met, err := svc.requirementMet(userID, badge)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id": userID,
				"badge":   badge.Name,
			}).Warn("Badge requirement check failed")
			continue
		}
		if !met {
			continue
		}

		if err := svc.awardBadge(userID, badge); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id": userID,
				"badge":   badge.Name,
			}).Warn("Badge award failed")
			continue
		}

		newBadges = append(newBadges, dto.BadgeResponse{
			Name:        badge.Name,
			Icon:        badge.Icon,
			Description: badge.Description,
		})
	}

	return newBadges, nil
}

func (svc *BadgeService) requirementMet(userID string, badge model.Badge) (bool, error) {
	switch badge.RequirementType {
	case shared.RequirementPracticeCount:
		progress, err := svc.progressRepo.GetOrCreateUserProgress(userID)
		if err != nil {
			return false, err
		}
		return progress.PracticeCount >= badge.RequirementValue, nil

	case shared.RequirementVoiceCount:
		count, err := svc.practiceRepo.CountByMode(userID, shared.ModeVoice)
		if err != nil {
			return false, err
		}
		return count >= int64(badge.RequirementValue), nil

	case shared.RequirementScore:
		best, err := svc.practiceRepo.BestScore(userID)
		if err != nil {
			return false, err
		}
		return best >= badge.RequirementValue, nil

	case shared.RequirementStreakDays:
		progress, err := svc.progressRepo.GetOrCreateUserProgress(userID)
		if err != nil {
			return false, err
		}
		return progress.BestStreak >= badge.RequirementValue, nil

	case shared.RequirementGiftCount:
		progress, err := svc.progressRepo.GetOrCreateUserProgress(userID)
		if err != nil {
			return false, err
		}
		return progress.GiftsSent >= badge.RequirementValue, nil

	case shared.RequirementCycleComplete:
		return svc.rewardRepo.HasCompletedCycle(userID)
	}

	log.WithField("requirement_type", badge.RequirementType).Warn("Unknown badge requirement type")
	return false, nil
}

func (svc *BadgeService) awardBadge(userID string, badge model.Badge) error {
	if err := svc.badgeRepo.CreateUserBadge(userID, badge.ID, svc.clock.Now()); err != nil {
		return err
	}

	RecordBadgeAwarded(badge.RequirementType)

	if badge.XPReward > 0 || badge.PPReward > 0 {
		// Badge payouts are flat; the streak multiplier applies to earned
		// rewards, not recognitions.
		if err := svc.creditBadgeReward(userID, badge.XPReward, badge.PPReward); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"badge":   badge.Name,
	}).Info("Badge awarded")
	return nil
}

func (svc *BadgeService) creditBadgeReward(userID string, xp, pp int) error {
	return svc.progressRepo.WithProgressLock(userID, func(tx *gorm.DB, progress *model.UserProgress) error {
		progress.TotalXP += xp
		progress.TotalPP += pp
		progress.Level = LevelForXP(progress.TotalXP)
		return nil
	})
}

// GetBadgeCatalog returns every active badge annotated with the user's earned
// state.
func (svc *BadgeService) GetBadgeCatalog(userID string) (*dto.BadgeCatalogResponse, error) {
	badges, err := svc.badgeRepo.GetActiveBadges()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	awarded, err := svc.badgeRepo.GetUserBadges(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	earnedAt := make(map[string]model.UserBadge, len(awarded))
	for _, ub := range awarded {
		earnedAt[ub.BadgeID] = ub
	}

	resp := &dto.BadgeCatalogResponse{
		Badges: make([]dto.BadgeCatalogEntry, 0, len(badges)),
		Total:  len(badges),
	}
	for _, badge := range badges {
		entry := dto.BadgeCatalogEntry{
			ID:               badge.ID,
			Name:             badge.Name,
			Icon:             badge.Icon,
			Description:      badge.Description,
			RequirementType:  badge.RequirementType,
			RequirementValue: badge.RequirementValue,
			XPReward:         badge.XPReward,
			PPReward:         badge.PPReward,
		}
		if ub, ok := earnedAt[badge.ID]; ok {
			entry.Earned = true
			t := ub.EarnedAt
			entry.EarnedAt = &t
			resp.Earned++
		}
		resp.Badges = append(resp.Badges, entry)
	}

	return resp, nil
}
