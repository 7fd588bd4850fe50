package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/app/repository"
	"github.com/PennitApp/Pennit/internal/pkg/statistics"
)

// HandleHome returns the site metadata, the platform stats and the latest
// published works for the landing page.
func HandleHome(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()

	settings := models.GetAppSettings()
	data := statistics.GetStatisticsData()

	works, err := repository.GetGlobalRepositories().Work.GetPublished(0, 10)
	if err != nil {
		works = nil
	}
	latest := make([]fiber.Map, 0, len(works))
	for i := range works {
		w := &works[i]
		item := workSummary(w)
		item["author"] = w.User.DisplayName()
		latest = append(latest, item)
	}

	return c.JSON(fiber.Map{
		"site_title":       settings.GetSiteTitle(),
		"site_description": settings.GetSiteDescription(),
		"stats": fiber.Map{
			"total_users": data.TotalUsers,
			"total_works": data.TotalWorks,
			"today_works": data.TodayWorks,
		},
		"latest_works": latest,
	})
}
