package usercontext

import "github.com/gofiber/fiber/v2"

// Locals key under which the user context is stored
const ContextKey = "USER_CONTEXT"

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(ContextKey); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// SetUserContext stores the user context on the fiber context
func SetUserContext(c *fiber.Ctx, ctx UserContext) {
	c.Locals(ContextKey, ctx)
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetRole returns the current user's role, or empty string if not logged in
func GetRole(c *fiber.Ctx) string {
	return GetUserContext(c).Role
}
