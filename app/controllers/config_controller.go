package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleGetConfig returns the public feature configuration. Always 200:
// clients treat anything else as "monetization off", so there is nothing
// useful a failure status could add.
func HandleGetConfig(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"monetization_enabled": appConfig.MonetizationEnabled,
	})
}
