package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/internal/pkg/session"
	"github.com/PennitApp/Pennit/internal/pkg/usercontext"
)

// Session keys written by the auth controller on login.
const (
	SessionKeyUserID   = "USER_ID"
	SessionKeyUserName = "USER_NAME"
	SessionKeyUserRole = "USER_ROLE"
)

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes session handling; downstream guards and controllers only
// read usercontext.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	userID, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || userID == 0 {
		// Anonymous user - no session data
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	username, _ := sess.Get(SessionKeyUserName).(string)
	role, _ := sess.Get(SessionKeyUserRole).(string)

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		Role:       role,
		IsLoggedIn: true,
	})

	return c.Next()
}
