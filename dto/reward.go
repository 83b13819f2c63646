package dto

import "time"

type DailyRewardInfo struct {
	Day         int    `json:"day"`
	RewardType  string `json:"reward_type"`
	RewardValue int    `json:"reward_value"`
	Claimed     bool   `json:"claimed"`
}

type LoginRewardStatusResponse struct {
	CurrentDay     int               `json:"current_day"`
	CanClaimToday  bool              `json:"can_claim_today"`
	ClaimedDays    []int             `json:"claimed_days"`
	CycleStartDate *time.Time        `json:"cycle_start_date"`
	Calendar       []DailyRewardInfo `json:"calendar"`
}

type LoginRewardClaim struct {
	Day       int       `json:"day"`
	ClaimedAt time.Time `json:"claimed_at"`
}

type LoginRewardGrant struct {
	RewardType  string `json:"reward_type"`
	RewardValue int    `json:"reward_value"`
	XPEarned    int    `json:"xp_earned"`
	PPEarned    int    `json:"pp_earned"`
	Multiplier  int    `json:"multiplier"`
}

type ClaimLoginRewardResponse struct {
	Success        bool             `json:"success"`
	Claim          LoginRewardClaim `json:"claim"`
	Reward         LoginRewardGrant `json:"reward"`
	CurrentDay     int              `json:"current_day"`
	ClaimedDays    []int            `json:"claimed_days"`
	CanClaimToday  bool             `json:"can_claim_today"`
	CycleStartDate time.Time        `json:"cycle_start_date"`
	StreakCount    int              `json:"streak_count"`
}
