package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/maum-go-api/internal/dto"
	"github.com/noah-isme/maum-go-api/internal/handler"
	"github.com/noah-isme/maum-go-api/internal/middleware"
	"github.com/noah-isme/maum-go-api/internal/service"
)

type mockActivityService struct {
	resp dto.SubmitActivityResponse
	err  error
	seen dto.SubmitActivityRequest
}

func (m *mockActivityService) Submit(_ context.Context, _ middleware.Identity, req dto.SubmitActivityRequest) (dto.SubmitActivityResponse, error) {
	m.seen = req
	return m.resp, m.err
}

func newActivityApp(svc service.ActivityService, authenticated bool) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/activities")
	if authenticated {
		group.Use(withIdentity(testIdentity))
	}
	handler.NewActivityHandler(svc, validator.New(validator.WithRequiredStructEnabled()), testLogger()).Register(group)
	return app
}

func submitRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/activities", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func TestSubmitActivityCreated(t *testing.T) {
	svc := &mockActivityService{resp: dto.SubmitActivityResponse{
		ID:           1,
		ImageURL:     "https://res.example.com/drawings/uid-1/1.jpg",
		ActivityDate: "2024-03-05",
	}}
	app := newActivityApp(svc, true)

	resp, err := app.Test(submitRequest(`{"image_data":"data:image/jpeg;base64,Zm9v"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "data:image/jpeg;base64,Zm9v", svc.seen.ImageData)

	env := decodeEnvelope(t, resp)
	require.True(t, env.Success)

	var payload dto.SubmitActivityResponse
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, uint(1), payload.ID)
}

func TestSubmitActivityRequiresAuthentication(t *testing.T) {
	app := newActivityApp(&mockActivityService{}, false)

	resp, err := app.Test(submitRequest(`{"image_data":"data:image/jpeg;base64,Zm9v"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitActivityValidatesPayloadShape(t *testing.T) {
	app := newActivityApp(&mockActivityService{}, true)

	for _, body := range []string{
		`{}`,
		`{"image_data":""}`,
		`{"image_data":"https://example.com/image.jpg"}`,
	} {
		resp, err := app.Test(submitRequest(body))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body %s", body)
	}
}

func TestSubmitActivityPhaseErrorsConflict(t *testing.T) {
	for _, svcErr := range []error{service.ErrNoActiveSession, service.ErrNotInDrawingPhase} {
		app := newActivityApp(&mockActivityService{err: svcErr}, true)

		resp, err := app.Test(submitRequest(`{"image_data":"data:image/jpeg;base64,Zm9v"}`))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	}
}

func TestSubmitActivityInvalidImageBadRequest(t *testing.T) {
	app := newActivityApp(&mockActivityService{err: service.ErrInvalidImageData}, true)

	resp, err := app.Test(submitRequest(`{"image_data":"data:image/jpeg;base64,Zm9v"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitActivityUnexpectedFailure(t *testing.T) {
	app := newActivityApp(&mockActivityService{err: errors.New("storage offline")}, true)

	resp, err := app.Test(submitRequest(`{"image_data":"data:image/jpeg;base64,Zm9v"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.False(t, env.Success)
}
