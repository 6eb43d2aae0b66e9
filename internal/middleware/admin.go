package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/maum-go-api/internal/utils"
)

// AdminOnly ensures the authenticated identity appears in the reviewer
// allow-list. The list is re-evaluated on every request; an empty or unset
// list means nobody is privileged, not an error.
func AdminOnly(allowList func() []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromCtx(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		if !IsAdmin(identity.UserID, allowList()) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}

		return c.Next()
	}
}

// IsAdmin reports whether the unique id is a member of the allow-list.
// Membership is independent of entry order.
func IsAdmin(userID string, allowList []string) bool {
	if userID == "" {
		return false
	}

	for _, uid := range allowList {
		if uid == userID {
			return true
		}
	}

	return false
}
