package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/poise-app/poise_api/dto"
	"github.com/poise-app/poise_api/shared"
)

type PracticeHandler struct {
	practiceSvc PracticeServiceInterface
}

func NewPracticeHandler(practiceSvc PracticeServiceInterface) *PracticeHandler {
	return &PracticeHandler{
		practiceSvc: practiceSvc,
	}
}

// @Summary Get daily usage
// @Description Get today's practice usage against the tier's daily cap
// @Tags practice
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UsageCheckResponse}
// @Router /api/v1/practice/usage [get]
func (h *PracticeHandler) GetUsage(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	usage, err := h.practiceSvc.GetUsage(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", usage)
}

// @Summary Submit practice session
// @Description Submit a scored practice session and collect its rewards
// @Tags practice
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param submitRequest body dto.SubmitPracticeRequest true "Scored session"
// @Success 200 {object} shared.Response{data=dto.PracticeResultResponse}
// @Failure 402 {object} shared.Response{data=dto.UsageCheckResponse}
// @Router /api/v1/practice/submit [post]
func (h *PracticeHandler) SubmitPractice(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitPracticeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	result, err := h.practiceSvc.SubmitPractice(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary List practice sessions
// @Description List the user's most recent practice sessions
// @Tags practice
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Max sessions to return" default(20)
// @Success 200 {object} shared.Response{data=dto.SessionListResponse}
// @Router /api/v1/practice/sessions [get]
func (h *PracticeHandler) GetSessions(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	limit := c.QueryInt("limit")

	sessions, err := h.practiceSvc.GetSessions(userID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", sessions)
}

// @Summary Favorite practice session
// @Description Mark or unmark a practice session as favorite
// @Tags practice
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Session ID"
// @Param favoriteRequest body dto.FavoriteSessionRequest true "Favorite flag"
// @Success 200 {object} shared.Response
// @Router /api/v1/practice/sessions/{id}/favorite [post]
func (h *PracticeHandler) FavoriteSession(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	sessionID := c.Params("id")

	var req dto.FavoriteSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := h.practiceSvc.FavoriteSession(userID, sessionID, req.Favorite); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}
