package http

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-service/internal/observability"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

func newMiddlewareApp(t *testing.T, timeout time.Duration, register func(app *fiber.App)) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	RegisterMiddlewares(app, MiddlewareConfig{Metrics: observability.NewMetrics(), RequestTimeout: timeout})
	register(app)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorMiddlewareRecoversPanics(t *testing.T) {
	app := newMiddlewareApp(t, 0, func(app *fiber.App) {
		app.Get("/boom", func(*fiber.Ctx) error { panic("kaboom") })
	})

	status, body := getJSON(t, app, "/boom")

	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body["message"])
}

func TestErrorMiddlewareMergesDetails(t *testing.T) {
	app := newMiddlewareApp(t, 0, func(app *fiber.App) {
		app.Get("/upstream", func(*fiber.Ctx) error {
			return apperrors.NewUpstreamFailure("Failed to fulfill order at factory", map[string]any{"followLinkToEndChaos": "http://chaos"}, nil)
		})
		app.Get("/fiber", func(*fiber.Ctx) error {
			return fiber.NewError(nethttp.StatusTeapot, "short and stout")
		})
	})

	status, body := getJSON(t, app, "/upstream")
	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.Equal(t, map[string]any{"message": "Failed to fulfill order at factory", "followLinkToEndChaos": "http://chaos"}, body)

	status, body = getJSON(t, app, "/fiber")
	assert.Equal(t, nethttp.StatusTeapot, status)
	assert.Equal(t, "short and stout", body["message"])
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	app := newMiddlewareApp(t, time.Minute, func(app *fiber.App) {
		app.Get("/deadline", func(c *fiber.Ctx) error {
			_, ok := c.UserContext().Deadline()
			return c.JSON(fiber.Map{"deadline": ok, "live": c.UserContext().Err() == nil})
		})
	})

	status, body := getJSON(t, app, "/deadline")

	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, true, body["deadline"])
	assert.Equal(t, true, body["live"])
}

func TestErrorHandlerRendersEscapedErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	app.Get("/", func(*fiber.Ctx) error { return context.DeadlineExceeded })

	status, body := getJSON(t, app, "/")

	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.Equal(t, "context deadline exceeded", body["message"])
}
