package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/maum-go-api/internal/dto"
	"github.com/noah-isme/maum-go-api/internal/middleware"
	"github.com/noah-isme/maum-go-api/internal/utils"
)

// AuthHandler exposes the session gate: it resolves the authenticated
// identity and its reviewer privilege so the client can route to the right
// screen. Sign-in and sign-out themselves belong to the identity provider.
type AuthHandler struct {
	allowList func() []string
	logger    zerolog.Logger
}

// NewAuthHandler constructs an auth handler. The allow-list is resolved per
// request so privilege checks always see the current configuration.
func NewAuthHandler(allowList func() []string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		allowList: allowList,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires auth routes under the provided router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Get("/session", h.session)
}

func (h *AuthHandler) session(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	payload := dto.SessionResponse{
		UserID:    identity.UserID,
		Name:      identity.Name,
		Email:     identity.Email,
		AvatarURL: identity.AvatarURL,
		IsAdmin:   middleware.IsAdmin(identity.UserID, h.allowList()),
	}

	return utils.SendSuccess(c, "session resolved", payload)
}
