package dto

import "time"

type BadgeResponse struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type BadgeCatalogEntry struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Icon             string     `json:"icon"`
	Description      string     `json:"description"`
	RequirementType  string     `json:"requirement_type"`
	RequirementValue int        `json:"requirement_value"`
	XPReward         int        `json:"xp_reward"`
	PPReward         int        `json:"pp_reward"`
	Earned           bool       `json:"earned"`
	EarnedAt         *time.Time `json:"earned_at,omitempty"`
}

type BadgeCatalogResponse struct {
	Badges []BadgeCatalogEntry `json:"badges"`
	Earned int                 `json:"earned"`
	Total  int                 `json:"total"`
}
