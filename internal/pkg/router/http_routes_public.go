package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Landing page data
	app.Get("/", controllers.HandleHome)

	// Short share URLs resolve to the same reader view as the API,
	// access rules and counters included.
	app.Get("/w/:uuid", controllers.HandleViewWork)
}
