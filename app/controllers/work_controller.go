package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/app/repository"
	"github.com/PennitApp/Pennit/internal/pkg/access"
	"github.com/PennitApp/Pennit/internal/pkg/metrics/counter"
	"github.com/PennitApp/Pennit/internal/pkg/statistics"
	"github.com/PennitApp/Pennit/internal/pkg/usercontext"
)

type workRequest struct {
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

// workSummary is the list-view shape: no body, only metadata.
func workSummary(w *models.Work) fiber.Map {
	return fiber.Map{
		"uuid":         w.UUID,
		"title":        w.Title,
		"synopsis":     w.Synopsis,
		"category":     w.Category,
		"status":       w.Status,
		"share_link":   w.ShareLink,
		"read_count":   w.ReadCount,
		"clap_count":   w.ClapCount,
		"published_at": formatTimePtr(w.PublishedAt),
		"created_at":   w.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// lookupWork resolves a work by UUID first, then by share link slug.
func lookupWork(ref string) (*models.Work, error) {
	repo := repository.GetGlobalRepositories().Work
	if work, err := repo.GetByUUID(ref); err == nil && work != nil {
		return work, nil
	}
	return repo.GetByShareLink(ref)
}

// HandleCreateWork creates a new draft for the logged-in writer.
func HandleCreateWork(c *fiber.Ctx) error {
	uc := userContextOf(c)

	if !models.GetAppSettings().IsPublishingEnabled() {
		return jsonError(c, fiber.StatusForbidden, "publishing_disabled", "Publishing is currently disabled")
	}

	var req workRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Could not parse request body")
	}

	if !models.IsValidCategory(req.Category) {
		return jsonError(c, fiber.StatusBadRequest, "invalid_category", "Category must be poem, short_story or novel")
	}

	work := &models.Work{
		UserID:   uc.UserID,
		Title:    req.Title,
		Synopsis: req.Synopsis,
		Body:     req.Body,
		Category: req.Category,
		Status:   models.WorkStatusDraft,
	}
	if err := work.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalRepositories().Work.Create(work); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not create work")
	}

	return c.Status(fiber.StatusCreated).JSON(workSummary(work))
}

// HandleUpdateWork edits a draft or rejected work owned by the caller.
// Published and pending works are immutable for the writer.
func HandleUpdateWork(c *fiber.Ctx) error {
	uc := userContextOf(c)

	work, err := lookupWork(c.Params("uuid"))
	if err != nil || work == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}
	if work.UserID != uc.UserID {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "You do not own this work")
	}
	if work.Status != models.WorkStatusDraft && work.Status != models.WorkStatusRejected {
		return jsonError(c, fiber.StatusConflict, "not_editable", "Only drafts and rejected works can be edited")
	}

	var req workRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Could not parse request body")
	}

	if req.Title != "" {
		work.Title = req.Title
	}
	if req.Synopsis != "" {
		work.Synopsis = req.Synopsis
	}
	if req.Body != "" {
		work.Body = req.Body
	}
	if req.Category != "" {
		if !models.IsValidCategory(req.Category) {
			return jsonError(c, fiber.StatusBadRequest, "invalid_category", "Category must be poem, short_story or novel")
		}
		work.Category = req.Category
	}
	// Edits to a rejected work go back into the queue as a draft
	work.Status = models.WorkStatusDraft

	if err := work.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := repository.GetGlobalRepositories().Work.Update(work); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not update work")
	}

	return c.JSON(workSummary(work))
}

// HandleSubmitWork moves a draft into the review queue.
func HandleSubmitWork(c *fiber.Ctx) error {
	uc := userContextOf(c)

	work, err := lookupWork(c.Params("uuid"))
	if err != nil || work == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}
	if work.UserID != uc.UserID {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "You do not own this work")
	}
	if work.Status != models.WorkStatusDraft && work.Status != models.WorkStatusRejected {
		return jsonError(c, fiber.StatusConflict, "not_submittable", "Only drafts and rejected works can be submitted")
	}

	work.Status = models.WorkStatusPending
	if err := repository.GetGlobalRepositories().Work.Update(work); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not submit work")
	}

	return c.JSON(workSummary(work))
}

// HandleDeleteWork soft-deletes a work owned by the caller.
func HandleDeleteWork(c *fiber.Ctx) error {
	uc := userContextOf(c)

	work, err := lookupWork(c.Params("uuid"))
	if err != nil || work == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}
	if work.UserID != uc.UserID && uc.Role != models.ROLE_ADMIN {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "You do not own this work")
	}

	if err := repository.GetGlobalRepositories().Work.Delete(work.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not delete work")
	}
	statistics.ResetCacheUpdateTimer()

	return c.JSON(fiber.Map{"deleted": true})
}

// HandleListMyWorks lists the caller's works in every status.
func HandleListMyWorks(c *fiber.Ctx) error {
	uc := userContextOf(c)
	offset, limit := parsePagination(c)

	works, err := repository.GetGlobalRepositories().Work.GetByUserID(uc.UserID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load works")
	}

	items := make([]fiber.Map, 0, len(works))
	for i := range works {
		items = append(items, workSummary(&works[i]))
	}
	return c.JSON(fiber.Map{"works": items, "offset": offset, "limit": limit})
}

// HandleListWorks is the public catalogue: published works only,
// optionally filtered by category.
func HandleListWorks(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repo := repository.GetGlobalRepositories().Work

	var (
		works []models.Work
		err   error
	)
	if category := c.Query("category"); category != "" {
		if !models.IsValidCategory(category) {
			return jsonError(c, fiber.StatusBadRequest, "invalid_category", "Unknown category")
		}
		works, err = repo.GetPublishedByCategory(category, offset, limit)
	} else {
		works, err = repo.GetPublished(offset, limit)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load works")
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

// HandleViewWork is the public read endpoint. Every view counts one
// impression; only views that resolve to full access count a read. The
// response body is exactly what the resolver decided the viewer may see.
func HandleViewWork(c *fiber.Ctx) error {
	work, err := lookupWork(c.Params("uuid"))
	if err != nil || work == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}

	uc := userContextOf(c)
	if !work.IsPublished() && work.UserID != uc.UserID && uc.Role != models.ROLE_ADMIN {
		// Unpublished works do not exist for the public
		return jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}

	if work.IsPublished() {
		if err := counter.AddWorkImpression(work.ID); err != nil {
			log.Printf("[Work] impression count failed for work %d: %v", work.ID, err)
		}
	}

	// Owners and admins always see their own manuscript in full and
	// never consume free-poem quota on it.
	var decision access.Decision
	if work.UserID == uc.UserID || uc.Role == models.ROLE_ADMIN {
		decision = access.Decision{State: access.FullAccess, Body: work.Body}
	} else {
		decision = accessResolver.Resolve(c.Context(), identityOf(uc), work)
	}

	if decision.IsFull() && work.IsPublished() && work.UserID != uc.UserID {
		if err := counter.AddWorkRead(work.ID); err != nil {
			log.Printf("[Work] read count failed for work %d: %v", work.ID, err)
		}
	}

	resp := workSummary(work)
	resp["author"] = work.User.DisplayName()
	resp["access"] = string(decision.State)
	resp["body"] = decision.Body
	resp["truncated"] = decision.Truncated
	return c.JSON(resp)
}

func identityOf(uc usercontext.UserContext) access.Identity {
	return access.Identity{UserID: uc.UserID, Role: uc.Role}
}
