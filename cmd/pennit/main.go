package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/app/repository"
	"github.com/PennitApp/Pennit/internal/pkg/cache"
	"github.com/PennitApp/Pennit/internal/pkg/database"
	"github.com/PennitApp/Pennit/internal/pkg/env"
	"github.com/PennitApp/Pennit/internal/pkg/metrics/counter"
	"github.com/PennitApp/Pennit/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	if err := models.LoadSettings(database.GetDB()); err != nil {
		log.Printf("Could not load settings, using defaults: %v", err)
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024, // manuscripts are text, 4 MiB is plenty
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	// Periodically move pending read/impression counters from Redis into
	// the works table.
	go flushCountersLoop()

	return app
}

func flushCountersLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if err := counter.FlushAll(); err != nil {
			log.Printf("[Counter] flush failed: %v", err)
		}
	}
}
