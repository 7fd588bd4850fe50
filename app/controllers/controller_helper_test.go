package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PennitApp/Pennit/internal/pkg/featuregate"
)

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	now := time.Date(2024, 5, 1, 12, 34, 56, 0, time.Local)
	formatted := formatTimePtr(&now)
	assert.IsType(t, "", formatted)

	expected := now.UTC().Format(time.RFC3339)
	assert.Equal(t, expected, formatted)
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/list", func(c *fiber.Ctx) error {
		offset, limit := parsePagination(c)
		return c.JSON(fiber.Map{"offset": offset, "limit": limit})
	})

	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"defaults", "", 0, defaultPageSize},
		{"explicit", "?offset=40&limit=10", 40, 10},
		{"negative offset clamped", "?offset=-5", 0, defaultPageSize},
		{"oversized limit clamped", "?limit=5000", 0, maxPageSize},
		{"zero limit falls back", "?limit=0", 0, defaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/list"+tt.query, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			var body struct {
				Offset int `json:"offset"`
				Limit  int `json:"limit"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantOffset, body.Offset)
			assert.Equal(t, tt.wantLimit, body.Limit)
		})
	}
}

func TestHandleGetConfig(t *testing.T) {
	prev := appConfig
	defer func() { appConfig = prev }()

	for _, enabled := range []bool{true, false} {
		appConfig = featuregate.FromValue(enabled)

		app := fiber.New()
		app.Get("/api/v1/config", HandleGetConfig)

		req := httptest.NewRequest("GET", "/api/v1/config", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var body map[string]bool
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, enabled, body["monetization_enabled"])
	}
}
