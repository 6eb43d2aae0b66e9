package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/maum-go-api/internal/dto"
	"github.com/noah-isme/maum-go-api/internal/middleware"
	"github.com/noah-isme/maum-go-api/internal/service"
	"github.com/noah-isme/maum-go-api/internal/utils"
)

// ActivityHandler exposes the submission endpoint of the student workflow.
type ActivityHandler struct {
	service   service.ActivityService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityHandler creates an activity handler instance.
func NewActivityHandler(service service.ActivityService, validator *validator.Validate, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register binds activity routes under the provided router group.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *ActivityHandler) submit(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.SubmitActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.Submit(c.UserContext(), identity, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession), errors.Is(err, service.ErrNotInDrawingPhase):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidImageData):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("activity submission failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit activity")
		}
	}

	return utils.SendCreated(c, "activity submitted", response)
}
