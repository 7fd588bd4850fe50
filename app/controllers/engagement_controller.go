package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/app/repository"
	"github.com/PennitApp/Pennit/internal/pkg/database"
)

// publishedWorkOr404 loads a work that the public may interact with.
func publishedWorkOr404(c *fiber.Ctx) (*models.Work, error) {
	work, err := lookupWork(c.Params("uuid"))
	if err != nil || work == nil || !work.IsPublished() {
		return nil, jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}
	return work, nil
}

// HandleToggleClap flips the caller's clap on a work. The response is
// authoritative: clients reconcile their optimistic state against it.
func HandleToggleClap(c *fiber.Ctx) error {
	work, err := publishedWorkOr404(c)
	if work == nil {
		return err
	}
	uc := userContextOf(c)

	db := database.GetDB()
	clapped, err := models.ToggleClap(db, uc.UserID, work.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not record clap")
	}

	count, err := models.CountClaps(db, work.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not count claps")
	}

	return c.JSON(fiber.Map{"clapped": clapped, "clap_count": count})
}

// HandleToggleSave flips the caller's bookmark on a work.
func HandleToggleSave(c *fiber.Ctx) error {
	work, err := publishedWorkOr404(c)
	if work == nil {
		return err
	}
	uc := userContextOf(c)

	saved, err := models.ToggleSave(database.GetDB(), uc.UserID, work.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not save work")
	}

	return c.JSON(fiber.Map{"saved": saved})
}

// HandleListSaved returns the caller's reading list.
func HandleListSaved(c *fiber.Ctx) error {
	uc := userContextOf(c)
	offset, limit := parsePagination(c)

	works, err := models.ListSavedWorks(database.GetDB(), uc.UserID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load reading list")
	}

	items := make([]fiber.Map, 0, len(works))
	for i := range works {
		items = append(items, workSummary(&works[i]))
	}
	return c.JSON(fiber.Map{"works": items, "offset": offset, "limit": limit})
}

// HandleToggleFollow flips the caller following a writer.
func HandleToggleFollow(c *fiber.Ctx) error {
	uc := userContextOf(c)

	writerID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || writerID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid_id", "Invalid writer id")
	}
	if uint(writerID) == uc.UserID {
		return jsonError(c, fiber.StatusBadRequest, "invalid_target", "You cannot follow yourself")
	}

	writer, err := repository.GetGlobalRepositories().User.GetByID(uint(writerID))
	if err != nil || writer == nil || !writer.IsWriter() {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Writer not found")
	}

	db := database.GetDB()
	following, err := models.ToggleFollow(db, uc.UserID, writer.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not update follow")
	}

	count, err := models.CountFollowers(db, writer.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not count followers")
	}

	return c.JSON(fiber.Map{"following": following, "follower_count": count})
}

type commentRequest struct {
	Content string `json:"content"`
}

// HandleCreateComment adds a comment on a published work.
func HandleCreateComment(c *fiber.Ctx) error {
	work, err := publishedWorkOr404(c)
	if work == nil {
		return err
	}
	uc := userContextOf(c)

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Could not parse request body")
	}

	if req.Content == "" {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "Comment content must not be empty")
	}

	comment := &models.Comment{
		WorkID:  work.ID,
		UserID:  uc.UserID,
		Content: req.Content,
	}
	if err := database.GetDB().Create(comment).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not create comment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         comment.ID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
	})
}

// HandleListComments lists comments on a published work, newest first.
func HandleListComments(c *fiber.Ctx) error {
	work, err := publishedWorkOr404(c)
	if work == nil {
		return err
	}
	offset, limit := parsePagination(c)

	var comments []models.Comment
	if err := database.GetDB().
		Preload("User").
		Where("work_id = ?", work.ID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load comments")
	}

	items := make([]fiber.Map, 0, len(comments))
	for i := range comments {
		cm := &comments[i]
		items = append(items, fiber.Map{
			"id":         cm.ID,
			"content":    cm.Content,
			"author":     cm.User.DisplayName(),
			"created_at": cm.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"comments": items, "offset": offset, "limit": limit})
}
