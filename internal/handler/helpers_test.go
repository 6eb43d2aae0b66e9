package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/maum-go-api/internal/middleware"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

var testIdentity = middleware.Identity{
	UserID: "uid-1",
	Name:   "김학생",
	Email:  "student@school.kr",
}

// withIdentity injects an authenticated identity the way the JWT middleware
// would, so handlers can be tested in isolation.
func withIdentity(identity middleware.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("identity", identity)
		return c.Next()
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}
