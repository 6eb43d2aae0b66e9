package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/maum-go-api/internal/realtime"
	"github.com/noah-isme/maum-go-api/internal/service"
	"github.com/noah-isme/maum-go-api/internal/utils"
)

// AdminActivityHandler exposes the reviewer's browse/inspect/delete endpoints
// plus the live submission feed.
type AdminActivityHandler struct {
	service service.AdminService
	hub     *realtime.Hub
	logger  zerolog.Logger
}

// NewAdminActivityHandler constructs an admin activity handler.
func NewAdminActivityHandler(service service.AdminService, hub *realtime.Hub, logger zerolog.Logger) *AdminActivityHandler {
	return &AdminActivityHandler{
		service: service,
		hub:     hub,
		logger:  logger.With().Str("component", "admin_activity_handler").Logger(),
	}
}

// Register binds admin activity routes under the provided router group.
func (h *AdminActivityHandler) Register(router fiber.Router) {
	router.Get("/dates", h.dates)

	router.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/live", websocket.New(h.live))

	router.Get("", h.list)
	router.Get("/:id", h.detail)
	router.Delete("/:id", h.delete)
}

func (h *AdminActivityHandler) list(c *fiber.Ctx) error {
	// An absent dates parameter returns every record; a present one filters
	// to the union of the selected dates, so "?dates=" is an empty view.
	var dates []string
	if raw, ok := c.Queries()["dates"]; ok {
		dates = parseDates(raw)
	}

	result, err := h.service.List(c.UserContext(), dates)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list activities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activities")
	}

	return utils.SendSuccess(c, "activities retrieved", result)
}

func (h *AdminActivityHandler) dates(c *fiber.Ctx) error {
	result, err := h.service.Dates(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list activity dates")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity dates")
	}

	return utils.SendSuccess(c, "activity dates retrieved", result)
}

func (h *AdminActivityHandler) detail(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	result, err := h.service.Detail(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		h.logger.Error().Err(err).Uint("activity_id", id).Msg("failed to load activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load activity")
	}

	return utils.SendSuccess(c, "activity retrieved", result)
}

func (h *AdminActivityHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		h.logger.Error().Err(err).Uint("activity_id", id).Msg("failed to delete activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete activity")
	}

	return utils.SendSuccess(c, "activity deleted", nil)
}

// live streams newly submitted activity summaries to the reviewer session.
func (h *AdminActivityHandler) live(conn *websocket.Conn) {
	events, cancel := h.hub.Subscribe()
	defer cancel()

	h.logger.Info().Msg("reviewer feed connected")
	defer h.logger.Info().Msg("reviewer feed disconnected")

	// Reader goroutine detects the peer closing the connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func parseDates(raw string) []string {
	parts := strings.Split(raw, ",")
	dates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		dates = append(dates, trimmed)
	}
	return dates
}
