package services

import (
	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/poise-app/poise_api/dto"
	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/services/repositories"
	"github.com/poise-app/poise_api/shared"
)

// ChallengeService tracks Monday-anchored weekly challenges. Progress rows are
// created lazily on the first contributing event; completion latches and the
// reward claim flips exactly once.
type ChallengeService struct {
	context.DefaultService

	sqlSvc         *PostgresService
	progressionSvc *ProgressionService

	challengeRepo *repositories.ChallengeRepository
	clock         shared.Clock
}

const CHALLENGE_SVC = "challenge_svc"

func (svc ChallengeService) Id() string {
	return CHALLENGE_SVC
}

func (svc *ChallengeService) Configure(ctx *context.Context) error {
	svc.clock = shared.SystemClock{}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChallengeService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.progressionSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)
	svc.challengeRepo = repositories.NewChallengeRepository(svc.sqlSvc.Db())
	return nil
}

// GetWeeklyChallenges lists this week's challenges with the user's progress.
func (svc *ChallengeService) GetWeeklyChallenges(userID string) (*dto.WeeklyChallengeListResponse, error) {
	weekStart := shared.WeekStartOf(svc.clock.Now())

	challenges, err := svc.challengeRepo.GetChallengesForWeek(weekStart)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.WeeklyChallengeListResponse{
		Challenges: make([]dto.WeeklyChallengeResponse, 0, len(challenges)),
		WeekStart:  weekStart,
	}

	for _, challenge := range challenges {
		entry := dto.WeeklyChallengeResponse{
			ID:            challenge.ID,
			Title:         challenge.Title,
			Description:   challenge.Description,
			ChallengeType: challenge.ChallengeType,
			GoalValue:     challenge.GoalValue,
			XPReward:      challenge.XPReward,
			PPReward:      challenge.PPReward,
			WeekStartDate: challenge.WeekStartDate,
		}

		progress, err := svc.challengeRepo.GetProgress(userID, challenge.ID)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		if progress != nil {
			entry.Progress = progress.Progress
			entry.Completed = progress.Completed
			entry.RewardClaimed = progress.RewardClaimed
		}

		resp.Challenges = append(resp.Challenges, entry)
	}

	return resp, nil
}

// RecordPracticeEvent folds one scored session into every challenge of the
// current week. Count challenges accumulate, score challenges keep the best
// score, streak challenges mirror the current streak.
func (svc *ChallengeService) RecordPracticeEvent(userID string, score, currentStreak int) error {
	weekStart := shared.WeekStartOf(svc.clock.Now())

	challenges, err := svc.challengeRepo.GetChallengesForWeek(weekStart)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	for _, challenge := range challenges {
		if err := svc.applyEvent(userID, challenge, score, currentStreak); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id":   userID,
				"challenge": challenge.Title,
			}).Warn("Challenge progress update failed")
		}
	}
	return nil
}

func (svc *ChallengeService) applyEvent(userID string, challenge model.WeeklyChallenge, score, currentStreak int) error {
	progress, err := svc.challengeRepo.GetProgress(userID, challenge.ID)
	if err != nil {
		return err
	}
	if progress == nil {
		progress, err = svc.challengeRepo.CreateProgress(userID, challenge.ID)
		if err != nil {
			return err
		}
	}
	if progress.Completed {
		return nil
	}

	switch challenge.ChallengeType {
	case shared.ChallengeTypeCount:
		progress.Progress++
	case shared.ChallengeTypeScore:
		if score > progress.Progress {
			progress.Progress = score
		}
	case shared.ChallengeTypeStreak:
		if currentStreak > progress.Progress {
			progress.Progress = currentStreak
		}
	default:
		log.WithField("challenge_type", challenge.ChallengeType).Warn("Unknown challenge type")
		return nil
	}

	if progress.Progress >= challenge.GoalValue {
		progress.Completed = true
		RecordChallengeCompletion(challenge.ChallengeType)
	}

	return svc.challengeRepo.UpdateProgress(progress)
}

// ClaimChallengeReward pays out a completed challenge once. The guarded update
// in the repository makes double claims lose the race cleanly.
func (svc *ChallengeService) ClaimChallengeReward(userID, challengeID string) (*dto.ClaimChallengeRewardResponse, error) {
	challenge, err := svc.challengeRepo.GetChallenge(challengeID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Challenge not found")
	}

	if !challenge.WeekStartDate.Equal(shared.WeekStartOf(svc.clock.Now())) {
		return nil, shared.NewBadRequestError(nil, "Challenge is not part of the current week")
	}

	progress, err := svc.challengeRepo.GetProgress(userID, challengeID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if progress == nil || !progress.Completed {
		return nil, shared.NewBadRequestError(nil, "Challenge is not completed yet")
	}
	if progress.RewardClaimed {
		return nil, shared.NewConflictError(nil, "Challenge reward already claimed")
	}

	claimed, err := svc.challengeRepo.MarkRewardClaimed(progress.ID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if !claimed {
		return nil, shared.NewConflictError(nil, "Challenge reward already claimed")
	}

	updated, _, err := svc.progressionSvc.ApplyReward(userID, challenge.XPReward, challenge.PPReward)
	if err != nil {
		return nil, err
	}

	return &dto.ClaimChallengeRewardResponse{
		Success:  true,
		XPEarned: challenge.XPReward,
		PPEarned: challenge.PPReward,
		TotalXP:  updated.TotalXP,
		TotalPP:  updated.TotalPP,
		Level:    updated.Level,
	}, nil
}
