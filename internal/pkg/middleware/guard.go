package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/internal/pkg/usercontext"
)

// Rule describes who may pass a guarded route. The whole routing policy
// lives in this table instead of per-page wrappers, so it can be unit
// tested without rendering anything.
type Rule struct {
	RequireLogin bool
	Roles        []string // empty means any role
}

// Allows evaluates the rule against a request's user context.
func (r Rule) Allows(uc usercontext.UserContext) bool {
	if r.RequireLogin && !uc.IsLoggedIn {
		return false
	}
	if len(r.Roles) == 0 {
		return true
	}
	for _, role := range r.Roles {
		if uc.Role == role {
			return true
		}
	}
	return false
}

// Route guard table. Admins pass the writer guard: the back office covers
// everything writers can do.
var (
	RuleLoggedIn = Rule{RequireLogin: true}
	RuleWriter   = Rule{RequireLogin: true, Roles: []string{models.ROLE_WRITER, models.ROLE_ADMIN}}
	RuleAdmin    = Rule{RequireLogin: true, Roles: []string{models.ROLE_ADMIN}}
)

// RequireJSON builds an API middleware from a rule; failures return JSON.
func RequireJSON(rule Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uc := usercontext.GetUserContext(c)
		if rule.Allows(uc) {
			return c.Next()
		}
		if !uc.IsLoggedIn {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "login required",
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "insufficient role",
		})
	}
}

// Prebuilt guards for route registration. Everything the server speaks is
// JSON, so a guard failure is always a status code, never a redirect.
var (
	RequireAPIAuth   = RequireJSON(RuleLoggedIn)
	RequireAPIWriter = RequireJSON(RuleWriter)
	RequireAPIAdmin  = RequireJSON(RuleAdmin)
)
