package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poise-app/poise_api/dto"
	"github.com/poise-app/poise_api/shared"
)

type AuthHandler struct {
	jwtSvc JWTServiceInterface
}

func NewAuthHandler(jwtSvc JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		jwtSvc: jwtSvc,
	}
}

// @Summary Mint development token
// @Description Mint a bearer token for a user. Only mounted outside production.
// @Tags auth
// @Accept json
// @Produce json
// @Param tokenRequest body dto.DevTokenRequest true "User to impersonate"
// @Success 200 {object} shared.Response{data=dto.TokenPair}
// @Router /api/v1/auth/dev-token [post]
func (h *AuthHandler) DevToken(c *fiber.Ctx) error {
	var req dto.DevTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}
	if req.UserID == "" {
		return shared.NewBadRequestError(nil, "user_id is required")
	}

	pair, err := h.jwtSvc.GenerateTokenPair(req.UserID)
	if err != nil {
		return shared.NewInternalError(err, "Failed to mint token")
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", pair)
}
