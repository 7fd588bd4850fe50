package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/app/repository"
	"github.com/PennitApp/Pennit/internal/pkg/database"
	"github.com/PennitApp/Pennit/internal/pkg/statistics"
)

// HandleAdminPendingWorks lists the review queue, oldest first.
func HandleAdminPendingWorks(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)

	works, err := repository.GetGlobalRepositories().Work.GetPending(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load review queue")
	}

	items := make([]fiber.Map, 0, len(works))
	for i := range works {
		w := &works[i]
		item := workSummary(w)
		item["author"] = w.User.DisplayName()
		items = append(items, item)
	}
	return c.JSON(fiber.Map{"works": items, "offset": offset, "limit": limit})
}

// HandleAdminApproveWork publishes a pending work and stamps PublishedAt.
func HandleAdminApproveWork(c *fiber.Ctx) error {
	work, err := lookupWork(c.Params("uuid"))
	if err != nil || work == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}
	if work.Status != models.WorkStatusPending {
		return jsonError(c, fiber.StatusConflict, "not_pending", "Only pending works can be approved")
	}

	now := time.Now()
	work.Status = models.WorkStatusPublished
	work.PublishedAt = &now

	if err := repository.GetGlobalRepositories().Work.Update(work); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not approve work")
	}
	statistics.ResetCacheUpdateTimer()

	return c.JSON(workSummary(work))
}

// HandleAdminRejectWork sends a pending work back to its writer.
func HandleAdminRejectWork(c *fiber.Ctx) error {
	work, err := lookupWork(c.Params("uuid"))
	if err != nil || work == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}
	if work.Status != models.WorkStatusPending {
		return jsonError(c, fiber.StatusConflict, "not_pending", "Only pending works can be rejected")
	}

	work.Status = models.WorkStatusRejected
	if err := repository.GetGlobalRepositories().Work.Update(work); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not reject work")
	}

	return c.JSON(workSummary(work))
}

// HandleAdminListUsers lists accounts, optionally filtered by a search query.
func HandleAdminListUsers(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	userRepo := repository.GetGlobalRepositories().User

	var (
		users []models.User
		err   error
	)
	if q := c.Query("q"); q != "" {
		users, err = userRepo.Search(q)
	} else {
		users, err = userRepo.List(offset, limit)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load users")
	}

	items := make([]fiber.Map, 0, len(users))
	for i := range users {
		u := &users[i]
		items = append(items, fiber.Map{
			"id":            u.ID,
			"name":          u.Name,
			"pen_name":      u.PenName,
			"email":         u.Email,
			"role":          u.Role,
			"status":        u.Status,
			"last_login_at": formatTimePtr(u.LastLoginAt),
			"created_at":    u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{"users": items, "offset": offset, "limit": limit})
}

type adminUserUpdateRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// HandleAdminUpdateUser changes a user's role or status.
func HandleAdminUpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid user id")
	}

	userRepo := repository.GetGlobalRepositories().User
	user, err := userRepo.GetByID(uint(id))
	if err != nil || user == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
	}

	var req adminUserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Could not parse request body")
	}

	if req.Role != "" {
		switch req.Role {
		case models.ROLE_READER, models.ROLE_WRITER, models.ROLE_ADMIN:
			user.Role = req.Role
		default:
			return jsonError(c, fiber.StatusBadRequest, "invalid_role", "Unknown role")
		}
	}
	if req.Status != "" {
		switch req.Status {
		case models.STATUS_ACTIVE, models.STATUS_INACTIVE, models.STATUS_DISABLED:
			user.Status = req.Status
		default:
			return jsonError(c, fiber.StatusBadRequest, "invalid_status", "Unknown status")
		}
	}

	if err := userRepo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not update user")
	}

	return c.JSON(fiber.Map{"id": user.ID, "role": user.Role, "status": user.Status})
}

// HandleAdminGetSettings returns the editable application settings.
func HandleAdminGetSettings(c *fiber.Ctx) error {
	s := models.GetAppSettings()
	return c.JSON(fiber.Map{
		"site_title":         s.GetSiteTitle(),
		"site_description":   s.GetSiteDescription(),
		"publishing_enabled": s.IsPublishingEnabled(),
		"signup_enabled":     s.IsSignupEnabled(),
	})
}

type adminSettingsRequest struct {
	SiteTitle         string `json:"site_title"`
	SiteDescription   string `json:"site_description"`
	PublishingEnabled bool   `json:"publishing_enabled"`
	SignupEnabled     bool   `json:"signup_enabled"`
}

// HandleAdminSaveSettings persists new application settings.
func HandleAdminSaveSettings(c *fiber.Ctx) error {
	var req adminSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Could not parse request body")
	}

	settings := &models.AppSettings{
		SiteTitle:         req.SiteTitle,
		SiteDescription:   req.SiteDescription,
		PublishingEnabled: req.PublishingEnabled,
		SignupEnabled:     req.SignupEnabled,
	}
	if err := models.SaveSettings(database.GetDB(), settings); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	return HandleAdminGetSettings(c)
}

// HandleAdminStats returns platform totals for the admin dashboard.
func HandleAdminStats(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()

	data := statistics.GetStatisticsData()
	return c.JSON(fiber.Map{
		"total_users": data.TotalUsers,
		"total_works": data.TotalWorks,
		"today_works": data.TodayWorks,
	})
}
