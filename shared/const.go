package shared

const (
	UserID = "user_id"

	TierFree = "free"
	TierPlus = "plus"
	TierPro  = "pro"

	ModeText  = "text"
	ModeVoice = "voice"
	ModeQuick = "quick"

	RewardTypeXP = "xp"
	RewardTypePP = "pp"

	EventPractice      = "practice"
	EventVoicePractice = "voice_practice"
	EventStreakUpdate  = "streak_update"
	EventGiftSent      = "gift_sent"

	RequirementPracticeCount = "practice_count"
	RequirementVoiceCount    = "voice_count"
	RequirementScore         = "score_threshold"
	RequirementStreakDays    = "streak_days"
	RequirementGiftCount     = "gift_count"
	RequirementCycleComplete = "cycle_complete"

	ChallengeTypeCount  = "count"
	ChallengeTypeScore  = "score"
	ChallengeTypeStreak = "streak"
)
