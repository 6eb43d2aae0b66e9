package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/maum-go-api/internal/utils"
)

// Identity is the authenticated user as supplied by the identity provider
// token: a unique id plus display attributes captured at sign-in.
type Identity struct {
	UserID    string
	Name      string
	Email     string
	AvatarURL string
}

// JWTProtected returns a middleware that validates JWT bearer tokens and
// binds the identity claims to the request.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		identity := identityFromClaims(claims)
		if identity.UserID == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "token subject missing")
		}

		c.Locals("identity", identity)

		return c.Next()
	}
}

// IdentityFromCtx returns the identity bound by JWTProtected, if any.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals("identity").(Identity)
	return identity, ok && identity.UserID != ""
}

func identityFromClaims(claims jwt.MapClaims) Identity {
	return Identity{
		UserID:    stringClaim(claims, "sub", "user_id", "uid"),
		Name:      stringClaim(claims, "name"),
		Email:     stringClaim(claims, "email"),
		AvatarURL: stringClaim(claims, "picture", "avatar_url"),
	}
}

func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if str, ok := value.(string); ok {
				trimmed := strings.TrimSpace(str)
				if trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}
