package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/internal/pkg/usercontext"
)

func TestGuardTable(t *testing.T) {
	anonymous := usercontext.UserContext{}
	reader := usercontext.UserContext{UserID: 1, Role: models.ROLE_READER, IsLoggedIn: true}
	writer := usercontext.UserContext{UserID: 2, Role: models.ROLE_WRITER, IsLoggedIn: true}
	admin := usercontext.UserContext{UserID: 3, Role: models.ROLE_ADMIN, IsLoggedIn: true}

	tests := []struct {
		name string
		rule Rule
		uc   usercontext.UserContext
		want bool
	}{
		{"anonymous blocked by login", RuleLoggedIn, anonymous, false},
		{"reader passes login", RuleLoggedIn, reader, true},
		{"reader blocked from writer routes", RuleWriter, reader, false},
		{"writer passes writer routes", RuleWriter, writer, true},
		{"admin passes writer routes", RuleWriter, admin, true},
		{"writer blocked from admin routes", RuleAdmin, writer, false},
		{"admin passes admin routes", RuleAdmin, admin, true},
		{"anonymous blocked from admin routes", RuleAdmin, anonymous, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Allows(tt.uc))
		})
	}
}

// Guard failures must be status codes, never redirects: there is no login
// page to send anyone to.
func TestRequireJSONRespondsWithStatusNotRedirect(t *testing.T) {
	newApp := func(uc usercontext.UserContext) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			usercontext.SetUserContext(c, uc)
			return c.Next()
		})
		app.Get("/admin", RequireAPIAdmin, func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	tests := []struct {
		name       string
		uc         usercontext.UserContext
		wantStatus int
	}{
		{"anonymous gets 401", usercontext.UserContext{}, fiber.StatusUnauthorized},
		{"reader gets 403", usercontext.UserContext{UserID: 1, Role: models.ROLE_READER, IsLoggedIn: true}, fiber.StatusForbidden},
		{"writer gets 403", usercontext.UserContext{UserID: 2, Role: models.ROLE_WRITER, IsLoggedIn: true}, fiber.StatusForbidden},
		{"admin passes", usercontext.UserContext{UserID: 3, Role: models.ROLE_ADMIN, IsLoggedIn: true}, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newApp(tt.uc).Test(httptest.NewRequest("GET", "/admin", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Empty(t, resp.Header.Get("Location"))
		})
	}
}

func TestRuleWithoutRolesAllowsAnyLoggedInRole(t *testing.T) {
	rule := Rule{RequireLogin: true}
	for _, role := range []string{models.ROLE_READER, models.ROLE_WRITER, models.ROLE_ADMIN} {
		assert.True(t, rule.Allows(usercontext.UserContext{UserID: 1, Role: role, IsLoggedIn: true}))
	}
}
