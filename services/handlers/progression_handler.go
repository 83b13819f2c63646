package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/poise-app/poise_api/shared"
)

type ProgressionHandler struct {
	progressionSvc ProgressionServiceInterface
}

func NewProgressionHandler(progressionSvc ProgressionServiceInterface) *ProgressionHandler {
	return &ProgressionHandler{
		progressionSvc: progressionSvc,
	}
}

// @Summary Get progress
// @Description Get XP, level, streak and milestone state
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/progress [get]
func (h *ProgressionHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	progress, err := h.progressionSvc.GetProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", progress)
}

// @Summary Get streak status
// @Description Get the current and best streak with the active bonus
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.StreakStatusResponse}
// @Router /api/v1/progress/streak [get]
func (h *ProgressionHandler) GetStreakStatus(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	status, err := h.progressionSvc.GetStreakStatus(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", status)
}

// @Summary Record gift sent
// @Description Record a gift sent to another user and re-check gift badges
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.GiftSentResponse}
// @Router /api/v1/progress/gift [post]
func (h *ProgressionHandler) RecordGiftSent(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	result, err := h.progressionSvc.RecordGiftSent(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}
