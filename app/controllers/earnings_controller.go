package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/app/repository"
	"github.com/PennitApp/Pennit/internal/pkg/earnings"
)

// HandleEarningsDashboard returns the writer's estimated earnings for the
// current period plus the payout history. With monetization disabled it
// returns the static launch message instead of numbers.
func HandleEarningsDashboard(c *fiber.Ctx) error {
	uc := userContextOf(c)

	user, err := repository.GetGlobalRepositories().User.GetByID(uc.UserID)
	if err != nil || user == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Account no longer exists")
	}

	if !appConfig.MonetizationEnabled {
		return c.JSON(fiber.Map{
			"available": false,
			"message":   "Earnings will be available after launch",
		})
	}

	snapshot, err := earningsEstimator.Estimate(c.Context(), user)
	if err != nil {
		if errors.Is(err, earnings.ErrNotWriter) {
			return jsonError(c, fiber.StatusForbidden, "not_writer", "Earnings are only available to writers")
		}
		if errors.Is(err, earnings.ErrStatsUnavailable) {
			log.Printf("[Earnings] stats unavailable for writer %d: %v", user.ID, err)
			// Distinct from a zero estimate: the client shows an
			// "unavailable" state and retries.
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"available": false,
				"error":     "stats_unavailable",
				"message":   "Earnings are temporarily unavailable",
			})
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not estimate earnings")
	}

	history := make([]fiber.Map, 0, len(snapshot.History))
	for _, p := range snapshot.History {
		history = append(history, fiber.Map{
			"month":      p.Month,
			"points":     p.Points,
			"amount_ghs": earnings.Pesewas(p.AmountPesewas).Cedis(),
			"status":     p.Status,
			"paid_at":    formatTimePtr(p.PaidAt),
		})
	}

	return c.JSON(fiber.Map{
		"available":  true,
		"points":     snapshot.Points,
		"amount_ghs": snapshot.AmountDisplay,
		"history":    history,
	})
}

// HandleWorkAnalytics returns the single-work view a writer sees on the
// work detail page: reads, impressions, read-through rate and the flat
// per-read points. Only the owner may read it.
func HandleWorkAnalytics(c *fiber.Ctx) error {
	uc := userContextOf(c)

	work, err := lookupWork(c.Params("uuid"))
	if err != nil || work == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Work not found")
	}
	if work.UserID != uc.UserID && uc.Role != models.ROLE_ADMIN {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "You do not own this work")
	}

	analytics := earnings.AnalyzeWork(work, flatPolicy)
	return c.JSON(fiber.Map{
		"uuid":              work.UUID,
		"title":             work.Title,
		"reads":             analytics.Reads,
		"impressions":       analytics.Impressions,
		"points":            analytics.Points,
		"read_through_rate": analytics.ReadThroughRate,
		"clap_count":        work.ClapCount,
	})
}
