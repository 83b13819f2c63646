package dto

import "time"

type WeeklyChallengeResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ChallengeType string    `json:"challenge_type"`
	GoalValue     int       `json:"goal_value"`
	XPReward      int       `json:"xp_reward"`
	PPReward      int       `json:"pp_reward"`
	WeekStartDate time.Time `json:"week_start_date"`
	Progress      int       `json:"progress"`
	Completed     bool      `json:"completed"`
	RewardClaimed bool      `json:"reward_claimed"`
}

type WeeklyChallengeListResponse struct {
	Challenges []WeeklyChallengeResponse `json:"challenges"`
	WeekStart  time.Time                 `json:"week_start"`
}

type ClaimChallengeRewardResponse struct {
	Success  bool `json:"success"`
	XPEarned int  `json:"xp_earned"`
	PPEarned int  `json:"pp_earned"`
	TotalXP  int  `json:"total_xp"`
	TotalPP  int  `json:"total_pp"`
	Level    int  `json:"level"`
}
