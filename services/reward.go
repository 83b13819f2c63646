package services

import (
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/poise-app/poise_api/dto"
	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/services/repositories"
	"github.com/poise-app/poise_api/shared"
)

// RewardService runs the 7-day login reward cycle. The claim log is
// append-only; the latest claim alone determines where the user sits in the
// cycle. Missing a day forfeits the cycle and restarts at day 1.
type RewardService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	badgeSvc *BadgeService

	rewardRepo   *repositories.RewardRepository
	progressRepo *repositories.ProgressRepository
	clock        shared.Clock
}

const REWARD_SVC = "reward_svc"

const cycleLength = 7

func (svc RewardService) Id() string {
	return REWARD_SVC
}

func (svc *RewardService) Configure(ctx *context.Context) error {
	svc.clock = shared.SystemClock{}
	return svc.DefaultService.Configure(ctx)
}

func (svc *RewardService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.badgeSvc = svc.Service(BADGE_SVC).(*BadgeService)
	db := svc.sqlSvc.Db()
	svc.rewardRepo = repositories.NewRewardRepository(db)
	svc.progressRepo = repositories.NewProgressRepository(db)
	return nil
}

// cycleState is the position derived from the latest claim.
type cycleState struct {
	currentDay    int
	canClaimToday bool
	cycleStart    time.Time
	newCycle      bool
}

// resolveCycleState walks the state machine: no history starts a fresh cycle
// at day 1; a claim today blocks further claims; a claim yesterday advances
// (wrapping to a new cycle after day 7); any longer gap forfeits the cycle.
func (svc *RewardService) resolveCycleState(latest *model.UserLoginReward) cycleState {
	today := shared.DateOf(svc.clock.Now())

	if latest == nil {
		return cycleState{currentDay: 1, canClaimToday: true, cycleStart: today, newCycle: true}
	}

	switch shared.DaysBetween(latest.ClaimedAt, svc.clock.Now()) {
	case 0:
		return cycleState{
			currentDay:    latest.ClaimedDay,
			canClaimToday: false,
			cycleStart:    shared.DateOf(latest.CycleStartDate),
		}
	case 1:
		if latest.ClaimedDay >= cycleLength {
			return cycleState{currentDay: 1, canClaimToday: true, cycleStart: today, newCycle: true}
		}
		return cycleState{
			currentDay:    latest.ClaimedDay + 1,
			canClaimToday: true,
			cycleStart:    shared.DateOf(latest.CycleStartDate),
		}
	default:
		return cycleState{currentDay: 1, canClaimToday: true, cycleStart: today, newCycle: true}
	}
}

// GetLoginRewardStatus returns the 7-slot calendar with the user's position.
func (svc *RewardService) GetLoginRewardStatus(userID string) (*dto.LoginRewardStatusResponse, error) {
	latest, err := svc.rewardRepo.GetLatestClaim(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	state := svc.resolveCycleState(latest)

	claimedDays, err := svc.claimedDays(userID, latest, state)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	calendar, err := svc.rewardRepo.GetCalendar()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	claimed := map[int]bool{}
	for _, day := range claimedDays {
		claimed[day] = true
	}

	resp := &dto.LoginRewardStatusResponse{
		CurrentDay:    state.currentDay,
		CanClaimToday: state.canClaimToday,
		ClaimedDays:   claimedDays,
		Calendar:      make([]dto.DailyRewardInfo, 0, len(calendar)),
	}
	if latest != nil && !state.newCycle {
		start := state.cycleStart
		resp.CycleStartDate = &start
	}

	for _, reward := range calendar {
		resp.Calendar = append(resp.Calendar, dto.DailyRewardInfo{
			Day:         reward.Day,
			RewardType:  reward.RewardType,
			RewardValue: reward.RewardValue,
			Claimed:     claimed[reward.Day],
		})
	}

	return resp, nil
}

// claimedDays returns the days already claimed in the active cycle; a fresh
// cycle has none regardless of history.
func (svc *RewardService) claimedDays(userID string, latest *model.UserLoginReward, state cycleState) ([]int, error) {
	if latest == nil || state.newCycle {
		return []int{}, nil
	}

	claims, err := svc.rewardRepo.GetClaimsForCycle(userID, state.cycleStart)
	if err != nil {
		return nil, err
	}

	days := make([]int, 0, len(claims))
	for _, claim := range claims {
		days = append(days, claim.ClaimedDay)
	}
	return days, nil
}

// ClaimDailyReward claims the current day's reward. XP rewards scale with the
// streak multiplier, point rewards are granted as-is. A second claim on the
// same calendar day is rejected; a day-7 claim completes the cycle and re-runs
// badge evaluation.
//
// The claim check, insert and credit all run under the per-user progress row
// lock so concurrent claims serialize; the unique (user, day) index on the
// claim log backs the same invariant at the storage layer.
func (svc *RewardService) ClaimDailyReward(userID string) (*dto.ClaimLoginRewardResponse, error) {
	var (
		state       cycleState
		claim       *model.UserLoginReward
		grant       dto.LoginRewardGrant
		streakCount int
		leveledUp   bool
		newLevel    int
	)

	now := svc.clock.Now()

	err := svc.progressRepo.WithProgressLock(userID, func(tx *gorm.DB, progress *model.UserProgress) error {
		latest, err := svc.rewardRepo.GetLatestClaimTx(tx, userID)
		if err != nil {
			return err
		}

		state = svc.resolveCycleState(latest)
		if !state.canClaimToday {
			return shared.NewConflictError(nil, "Already claimed today's reward")
		}

		reward, err := svc.rewardRepo.GetDailyRewardTx(tx, state.currentDay)
		if err != nil {
			// The calendar is seeded at boot; a missing row is an operational
			// fault, not a user error.
			return shared.NewInternalError(err, "Reward calendar is missing an entry")
		}

		multiplier := MultiplierForStreak(progress.CurrentStreak)

		claim = &model.UserLoginReward{
			UserID:         userID,
			ClaimedDay:     state.currentDay,
			ClaimedAt:      now,
			CycleStartDate: state.cycleStart,
		}
		if err := svc.rewardRepo.CreateClaimTx(tx, claim); err != nil {
			return err
		}

		grant = dto.LoginRewardGrant{
			RewardType:  reward.RewardType,
			RewardValue: reward.RewardValue,
			Multiplier:  multiplier,
		}
		// XP rewards scale with the streak multiplier; point rewards never do.
		switch reward.RewardType {
		case shared.RewardTypeXP:
			grant.XPEarned = reward.RewardValue * multiplier
		case shared.RewardTypePP:
			grant.PPEarned = reward.RewardValue
			grant.Multiplier = 1
		}

		before := progress.Level
		progress.TotalXP += grant.XPEarned
		progress.TotalPP += grant.PPEarned
		progress.Level = LevelForXP(progress.TotalXP)

		leveledUp = progress.Level > before
		newLevel = progress.Level
		streakCount = progress.CurrentStreak
		return nil
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if leveledUp {
		log.WithFields(log.Fields{
			"user_id": userID,
			"level":   newLevel,
		}).Info("User leveled up")
	}

	RecordLoginRewardClaim(state.currentDay)

	if state.currentDay == cycleLength {
		if _, err := svc.badgeSvc.CheckAndAwardBadges(userID, shared.EventStreakUpdate); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Badge evaluation after cycle completion failed")
		}
	}

	nextState := svc.resolveCycleState(claim)

	claimedDays, err := svc.claimedDays(userID, claim, cycleState{cycleStart: state.cycleStart})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.ClaimLoginRewardResponse{
		Success: true,
		Claim: dto.LoginRewardClaim{
			Day:       state.currentDay,
			ClaimedAt: now,
		},
		Reward:         grant,
		CurrentDay:     nextState.currentDay,
		ClaimedDays:    claimedDays,
		CanClaimToday:  nextState.canClaimToday,
		CycleStartDate: state.cycleStart,
		StreakCount:    streakCount,
	}, nil
}
