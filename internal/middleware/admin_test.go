package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestIsAdminMembership(t *testing.T) {
	allowList := []string{"uid-b", "uid-a", "uid-c"}

	// membership is independent of entry order
	require.True(t, IsAdmin("uid-a", allowList))
	require.True(t, IsAdmin("uid-c", allowList))
	require.False(t, IsAdmin("uid-z", allowList))
	require.False(t, IsAdmin("uid-a", nil))
	require.False(t, IsAdmin("", allowList))
}

func TestAdminOnlyForbidsNonMembers(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			c.Locals("identity", Identity{UserID: "student-uid"})
			return c.Next()
		},
		AdminOnly(func() []string { return []string{"teacher-uid"} }),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminOnlyAllowsMembers(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			c.Locals("identity", Identity{UserID: "teacher-uid"})
			return c.Next()
		},
		AdminOnly(func() []string { return []string{"other-uid", "teacher-uid"} }),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminOnlyUnsetAllowListIsNeverPrivileged(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			c.Locals("identity", Identity{UserID: "teacher-uid"})
			return c.Next()
		},
		AdminOnly(func() []string { return nil }),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminOnlyRequiresIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		AdminOnly(func() []string { return []string{"teacher-uid"} }),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
