package main

import (
	"log"

	"github.com/instashare-app/backend/internal/router"
	"github.com/instashare-app/backend/pkg/config"
	"github.com/instashare-app/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	jobManager, err := router.SetupRoutes(e, db, cfg)
	if err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	// Start scheduled maintenance jobs
	if err := jobManager.RegisterJobs(); err != nil {
		log.Fatalf("Failed to register cron jobs: %v", err)
	}
	jobManager.Start()
	defer jobManager.Stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
