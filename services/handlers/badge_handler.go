package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/poise-app/poise_api/shared"
)

type BadgeHandler struct {
	badgeSvc BadgeServiceInterface
}

func NewBadgeHandler(badgeSvc BadgeServiceInterface) *BadgeHandler {
	return &BadgeHandler{
		badgeSvc: badgeSvc,
	}
}

// @Summary Get badge catalog
// @Description Get every active badge with the user's earned state
// @Tags badges
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.BadgeCatalogResponse}
// @Router /api/v1/badges [get]
func (h *BadgeHandler) GetBadgeCatalog(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	catalog, err := h.badgeSvc.GetBadgeCatalog(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", catalog)
}
