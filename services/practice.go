package services

import (
	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/poise-app/poise_api/dto"
	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/services/repositories"
	"github.com/poise-app/poise_api/shared"
)

// PracticeService is the submission pipeline: gate on the daily cap, log the
// session, advance the streak, pay out XP/PP with the streak bonus and
// multiplier, then feed challenges and badges. The payout is the transaction
// boundary; challenge and badge side effects are logged on failure, never
// rolled back into the submission.
type PracticeService struct {
	context.DefaultService

	sqlSvc         *PostgresService
	usageSvc       *UsageService
	progressionSvc *ProgressionService
	badgeSvc       *BadgeService
	challengeSvc   *ChallengeService

	practiceRepo *repositories.PracticeRepository
	clock        shared.Clock
}

const PRACTICE_SVC = "practice_svc"

const defaultSessionLimit = 20

func (svc PracticeService) Id() string {
	return PRACTICE_SVC
}

func (svc *PracticeService) Configure(ctx *context.Context) error {
	svc.clock = shared.SystemClock{}
	return svc.DefaultService.Configure(ctx)
}

func (svc *PracticeService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.usageSvc = svc.Service(USAGE_SVC).(*UsageService)
	svc.progressionSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)
	svc.badgeSvc = svc.Service(BADGE_SVC).(*BadgeService)
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)
	svc.practiceRepo = repositories.NewPracticeRepository(svc.sqlSvc.Db())
	return nil
}

// SubmitPractice records a scored attempt and returns everything it earned.
func (svc *PracticeService) SubmitPractice(userID string, req dto.SubmitPracticeRequest) (*dto.PracticeResultResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid practice submission")
	}

	if _, err := svc.usageSvc.CheckCanSubmit(userID); err != nil {
		return nil, err
	}

	streak, err := svc.progressionSvc.UpdateStreak(userID)
	if err != nil {
		return nil, err
	}

	// The multiplier scales XP only; the streak bonus is a flat add-on and PP
	// is never multiplied.
	multiplier := MultiplierForStreak(streak.CurrentStreak)
	xpBase, ppBase := BaseRewardForScore(req.Score)
	xpEarned := xpBase*multiplier + streak.StreakBonus
	ppEarned := ppBase

	session := &model.PracticeSession{
		UserID:    userID,
		Score:     req.Score,
		Mode:      req.Mode,
		XPEarned:  xpEarned,
		PPEarned:  ppEarned,
		Category:  req.Category,
		Tone:      req.Tone,
		CreatedAt: svc.clock.Now(),
	}
	if err := svc.practiceRepo.CreateSession(session); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	progress, leveledUp, err := svc.progressionSvc.ApplyPracticeReward(userID, xpEarned, ppEarned)
	if err != nil {
		return nil, err
	}

	RecordPracticeSubmission(req.Mode)

	if err := svc.challengeSvc.RecordPracticeEvent(userID, req.Score, streak.CurrentStreak); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Challenge update after practice failed")
	}

	event := shared.EventPractice
	if req.Mode == shared.ModeVoice {
		event = shared.EventVoicePractice
	}
	newBadges, err := svc.badgeSvc.CheckAndAwardBadges(userID, event)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Badge evaluation after practice failed")
		newBadges = []dto.BadgeResponse{}
	}

	return &dto.PracticeResultResponse{
		Session:       sessionResponse(session),
		XPEarned:      xpEarned,
		PPEarned:      ppEarned,
		StreakBonus:   streak.StreakBonus,
		Multiplier:    multiplier,
		CurrentStreak: streak.CurrentStreak,
		TotalXP:       progress.TotalXP,
		TotalPP:       progress.TotalPP,
		Level:         progress.Level,
		LeveledUp:     leveledUp,
		NewBadges:     newBadges,
	}, nil
}

func (svc *PracticeService) GetUsage(userID string) (*dto.UsageCheckResponse, error) {
	return svc.usageSvc.GetDailyUsage(userID)
}

// GetSessions returns the user's most recent sessions, newest first.
func (svc *PracticeService) GetSessions(userID string, limit int) (*dto.SessionListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultSessionLimit
	}

	sessions, err := svc.practiceRepo.GetRecentSessions(userID, limit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.SessionListResponse{
		Sessions: make([]dto.PracticeSessionResponse, 0, len(sessions)),
		Total:    len(sessions),
	}
	for i := range sessions {
		resp.Sessions = append(resp.Sessions, sessionResponse(&sessions[i]))
	}
	return resp, nil
}

// FavoriteSession toggles the only mutable flag on a session.
func (svc *PracticeService) FavoriteSession(userID, sessionID string, favorite bool) error {
	if err := svc.practiceRepo.SetFavorite(userID, sessionID, favorite); err != nil {
		return shared.NewNotFoundError(err, "Practice session not found")
	}
	return nil
}

func sessionResponse(session *model.PracticeSession) dto.PracticeSessionResponse {
	return dto.PracticeSessionResponse{
		ID:         session.ID,
		Score:      session.Score,
		Mode:       session.Mode,
		XPEarned:   session.XPEarned,
		PPEarned:   session.PPEarned,
		Category:   session.Category,
		Tone:       session.Tone,
		IsFavorite: session.IsFavorite,
		CreatedAt:  session.CreatedAt,
	}
}
