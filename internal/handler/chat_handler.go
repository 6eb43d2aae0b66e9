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

// ChatHandler wires the conversation endpoints of the student workflow.
type ChatHandler struct {
	service   service.ChatService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewChatHandler creates a chat handler instance.
func NewChatHandler(service service.ChatService, validator *validator.Validate, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register binds chat routes under the provided router group.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Get("/session", h.session)
	router.Post("/messages", h.sendMessage)
	router.Post("/end", h.endConversation)
}

func (h *ChatHandler) session(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	return utils.SendSuccess(c, "chat session", h.service.Session(identity.UserID, identity.Name))
}

func (h *ChatHandler) sendMessage(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.SendMessage(c.UserContext(), identity.UserID, identity.Name, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrConversationFinished) {
			return utils.SendError(c, fiber.StatusConflict, "conversation already finished")
		}
		h.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("failed to process message")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process message")
	}

	return utils.SendSuccess(c, "message processed", response)
}

func (h *ChatHandler) endConversation(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	response, err := h.service.EndConversation(identity.UserID, identity.Name)
	if err != nil {
		if errors.Is(err, service.ErrCannotEndYet) {
			return utils.SendError(c, fiber.StatusConflict, "conversation cannot be ended yet")
		}
		h.logger.Error().Err(err).Str("user_id", identity.UserID).Msg("failed to end conversation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to end conversation")
	}

	return utils.SendSuccess(c, "conversation ended", response)
}
