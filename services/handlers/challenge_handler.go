package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/poise-app/poise_api/shared"
)

type ChallengeHandler struct {
	challengeSvc ChallengeServiceInterface
}

func NewChallengeHandler(challengeSvc ChallengeServiceInterface) *ChallengeHandler {
	return &ChallengeHandler{
		challengeSvc: challengeSvc,
	}
}

// @Summary Get weekly challenges
// @Description Get this week's challenges with the user's progress
// @Tags challenges
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.WeeklyChallengeListResponse}
// @Router /api/v1/challenges/weekly [get]
func (h *ChallengeHandler) GetWeeklyChallenges(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	challenges, err := h.challengeSvc.GetWeeklyChallenges(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", challenges)
}

// @Summary Claim challenge reward
// @Description Claim the reward of a completed weekly challenge
// @Tags challenges
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Challenge ID"
// @Success 200 {object} shared.Response{data=dto.ClaimChallengeRewardResponse}
// @Failure 409 {object} shared.Response
// @Router /api/v1/challenges/weekly/{id}/claim [post]
func (h *ChallengeHandler) ClaimChallengeReward(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	challengeID := c.Params("id")

	result, err := h.challengeSvc.ClaimChallengeReward(userID, challengeID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}
