package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/controllers"
	"github.com/PennitApp/Pennit/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAPIAdmin)
	adminGroup.Get("/", controllers.HandleAdminStats)
	adminGroup.Get("/users", controllers.HandleAdminListUsers)
	adminGroup.Post("/users/update/:id", controllers.HandleAdminUpdateUser)

	// Review queue
	adminGroup.Get("/queue", controllers.HandleAdminPendingWorks)
	adminGroup.Post("/queue/approve/:uuid", controllers.HandleAdminApproveWork)
	adminGroup.Post("/queue/reject/:uuid", controllers.HandleAdminRejectWork)

	// Settings management
	adminGroup.Get("/settings", controllers.HandleAdminGetSettings)
	adminGroup.Post("/settings", controllers.HandleAdminSaveSettings)
}
