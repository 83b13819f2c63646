package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/poise-app/poise_api/shared"
)

type RewardHandler struct {
	rewardSvc RewardServiceInterface
}

func NewRewardHandler(rewardSvc RewardServiceInterface) *RewardHandler {
	return &RewardHandler{
		rewardSvc: rewardSvc,
	}
}

// @Summary Get login reward status
// @Description Get the 7-day reward calendar and the user's cycle position
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.LoginRewardStatusResponse}
// @Router /api/v1/rewards/daily [get]
func (h *RewardHandler) GetLoginRewardStatus(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	status, err := h.rewardSvc.GetLoginRewardStatus(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", status)
}

// @Summary Claim daily login reward
// @Description Claim today's login reward, scaled by the streak multiplier
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ClaimLoginRewardResponse}
// @Failure 409 {object} shared.Response
// @Router /api/v1/rewards/daily/claim [post]
func (h *RewardHandler) ClaimDailyReward(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	result, err := h.rewardSvc.ClaimDailyReward(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}
