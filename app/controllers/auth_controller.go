package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/app/repository"
	"github.com/PennitApp/Pennit/internal/pkg/middleware"
	"github.com/PennitApp/Pennit/internal/pkg/session"
	"github.com/PennitApp/Pennit/internal/pkg/statistics"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PenName  string `json:"pen_name"`
	Writer   bool   `json:"writer"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account. Writers sign up with the writer
// flag set and get the writer role immediately; the works they publish
// still pass through the review queue.
func HandleRegister(c *fiber.Ctx) error {
	if !models.GetAppSettings().IsSignupEnabled() {
		return jsonError(c, fiber.StatusForbidden, "signup_disabled", "Signups are currently disabled")
	}

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Could not parse request body")
	}

	userRepo := repository.GetGlobalRepositories().User
	if existing, err := userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "An account with this email already exists")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if req.Writer {
		user.Role = models.ROLE_WRITER
		user.PenName = req.PenName
	}

	if err := userRepo.Create(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not create account")
	}

	statistics.ResetCacheUpdateTimer()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.DisplayName(),
		"email": user.Email,
		"role":  user.Role,
	})
}

// HandleLogin authenticates by email and password and writes the session.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Could not parse request body")
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := repository.GetGlobalRepositories().User.GetByEmail(req.Email)
	if err != nil || user == nil {
		return jsonError(c, fiber.StatusUnauthorized, "login_failed", "There is a problem with the login process")
	}

	if !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "login_failed", "There is a problem with the login process")
	}

	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "account_inactive", "This account is not active")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not open session")
	}

	sess.Set(middleware.SessionKeyUserID, user.ID)
	sess.Set(middleware.SessionKeyUserName, user.DisplayName())
	sess.Set(middleware.SessionKeyUserRole, user.Role)

	if err := sess.Save(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not save session")
	}

	now := time.Now()
	user.LastLoginAt = &now
	// Best effort; login already succeeded.
	_ = repository.GetGlobalRepositories().User.Update(user)

	return c.JSON(fiber.Map{
		"id":   user.ID,
		"name": user.DisplayName(),
		"role": user.Role,
	})
}

// HandleLogout destroys the session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// No session to destroy, logout is a no-op
		return c.JSON(fiber.Map{"logged_out": true})
	}

	if err := sess.Destroy(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not destroy session")
	}

	return c.JSON(fiber.Map{"logged_out": true})
}

// HandleMe returns the current session identity.
func HandleMe(c *fiber.Ctx) error {
	uc := userContextOf(c)
	if !uc.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Login required")
	}

	user, err := repository.GetGlobalRepositories().User.GetByID(uc.UserID)
	if err != nil || user == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Account no longer exists")
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.DisplayName(),
		"email":    user.Email,
		"role":     user.Role,
		"pen_name": user.PenName,
		"bio":      user.Bio,
	})
}
