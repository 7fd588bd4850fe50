package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PennitApp/Pennit/app/controllers"
	"github.com/PennitApp/Pennit/internal/pkg/featuregate"
	"github.com/PennitApp/Pennit/internal/pkg/middleware"
	"github.com/PennitApp/Pennit/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire the access resolver and earnings estimator. The monetization
	// switch is read exactly once here.
	controllers.InitializeEngine(featuregate.Load())

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
