package presenters

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.Map{"id": "1"}, fiber.StatusOK, "done")
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusConflict, "batch code already used", errors.New("duplicate"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	var ok map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, StatusSuccess, ok["status"])
	assert.Equal(t, map[string]any{"id": "1"}, ok["data"])
	assert.NotContains(t, ok, "error")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	var fail map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fail))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, StatusFail, fail["status"])
	assert.Equal(t, "duplicate", fail["error"])
	assert.NotContains(t, fail, "data")
}
