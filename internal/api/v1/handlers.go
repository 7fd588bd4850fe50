package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/PennitApp/Pennit/app/controllers"
	"github.com/PennitApp/Pennit/internal/pkg/middleware"
)

// APIServer groups the v1 handlers.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// RegisterHandlers attaches all v1 routes onto the given group.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/config", controllers.HandleGetConfig)

	// Auth + session
	router.Post("/auth/register", controllers.HandleRegister)
	router.Post("/auth/login", controllers.HandleLogin)
	router.Post("/auth/logout", controllers.HandleLogout)
	router.Get("/me", middleware.RequireAPIAuth, controllers.HandleMe)

	// Public catalogue and reading
	router.Get("/works", controllers.HandleListWorks)
	router.Get("/works/:uuid", controllers.HandleViewWork)
	router.Get("/works/:uuid/comments", controllers.HandleListComments)

	// Engagement (any logged-in account)
	router.Post("/works/:uuid/clap", middleware.RequireAPIAuth, controllers.HandleToggleClap)
	router.Post("/works/:uuid/save", middleware.RequireAPIAuth, controllers.HandleToggleSave)
	router.Post("/works/:uuid/comments", middleware.RequireAPIAuth, controllers.HandleCreateComment)
	router.Get("/saved", middleware.RequireAPIAuth, controllers.HandleListSaved)
	router.Post("/writers/:id/follow", middleware.RequireAPIAuth, controllers.HandleToggleFollow)

	// Writer workspace
	writer := router.Group("/writer", middleware.RequireAPIWriter)
	writer.Get("/works", controllers.HandleListMyWorks)
	writer.Post("/works", controllers.HandleCreateWork)
	writer.Put("/works/:uuid", controllers.HandleUpdateWork)
	writer.Post("/works/:uuid/submit", controllers.HandleSubmitWork)
	writer.Delete("/works/:uuid", controllers.HandleDeleteWork)
	writer.Get("/works/:uuid/analytics", controllers.HandleWorkAnalytics)
	writer.Get("/earnings", controllers.HandleEarningsDashboard)

	// Back office
	admin := router.Group("/admin", middleware.RequireAPIAdmin)
	admin.Get("/works/pending", controllers.HandleAdminPendingWorks)
	admin.Post("/works/:uuid/approve", controllers.HandleAdminApproveWork)
	admin.Post("/works/:uuid/reject", controllers.HandleAdminRejectWork)
	admin.Get("/users", controllers.HandleAdminListUsers)
	admin.Post("/users/update/:id", controllers.HandleAdminUpdateUser)
	admin.Get("/settings", controllers.HandleAdminGetSettings)
	admin.Post("/settings", controllers.HandleAdminSaveSettings)
	admin.Get("/stats", controllers.HandleAdminStats)
}
