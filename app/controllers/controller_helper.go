package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/internal/pkg/usercontext"
)

const defaultPageSize = 20
const maxPageSize = 100

// jsonError writes the standard API error envelope
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// parsePagination reads offset/limit query params with sane bounds
func parsePagination(c *fiber.Ctx) (offset, limit int) {
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}

// userContextOf is a short alias used throughout the controllers
func userContextOf(c *fiber.Ctx) usercontext.UserContext {
	return usercontext.GetUserContext(c)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
