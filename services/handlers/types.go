package handlers

import (
	"github.com/poise-app/poise_api/dto"
)

type PracticeServiceInterface interface {
	SubmitPractice(userID string, req dto.SubmitPracticeRequest) (*dto.PracticeResultResponse, error)
	GetUsage(userID string) (*dto.UsageCheckResponse, error)
	GetSessions(userID string, limit int) (*dto.SessionListResponse, error)
	FavoriteSession(userID, sessionID string, favorite bool) error
}

type ProgressionServiceInterface interface {
	GetProgress(userID string) (*dto.ProgressResponse, error)
	GetStreakStatus(userID string) (*dto.StreakStatusResponse, error)
	RecordGiftSent(userID string) (*dto.GiftSentResponse, error)
}

type RewardServiceInterface interface {
	GetLoginRewardStatus(userID string) (*dto.LoginRewardStatusResponse, error)
	ClaimDailyReward(userID string) (*dto.ClaimLoginRewardResponse, error)
}

type BadgeServiceInterface interface {
	GetBadgeCatalog(userID string) (*dto.BadgeCatalogResponse, error)
}

type ChallengeServiceInterface interface {
	GetWeeklyChallenges(userID string) (*dto.WeeklyChallengeListResponse, error)
	ClaimChallengeReward(userID, challengeID string) (*dto.ClaimChallengeRewardResponse, error)
}

type BillingServiceInterface interface {
	UpdateLocalSubscription(userID, tier, status, customerID, subscriptionID string) error
}

type JWTServiceInterface interface {
	GenerateTokenPair(userID string) (*dto.TokenPair, error)
}
