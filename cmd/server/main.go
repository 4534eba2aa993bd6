package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/adapters/http/routes"
	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/config"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// @title churchhub API
// @version 1.0
// @description Church directory, reviews and donations API

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.AppMode)
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	if !cfg.EnvFileLoaded {
		appLog.Warn("⚠️ .env file not found, using environment variables")
	}
	appLog.Info("✅ Configuration loaded", "mode", cfg.AppMode, "dbDriver", cfg.Database.Driver)

	// Connect to database
	db, err := config.ConnectDatabase(cfg, appLog)
	if err != nil {
		appLog.Fatal("❌ Failed to connect to database", "error", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		appLog.Fatal("❌ Failed to auto migrate", "error", err)
	}
	appLog.Info("✅ Database migration completed")

	if err := config.NewSeeder(db, cfg, appLog).Run(); err != nil {
		appLog.Warn("⚠️ Seeding failed", "error", err)
	}

	// Expire donations stuck in Pending
	donationService := services.NewDonationService(repositories.NewDonationRepository(db), appLog)
	expiryJob, err := services.NewDonationExpiryJob(donationService, cfg.Donations, appLog)
	if err != nil {
		appLog.Fatal("❌ Invalid DONATION_EXPIRY_CRON", "spec", cfg.Donations.ExpiryCron, "error", err)
	}
	expiryJob.Start()
	defer expiryJob.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "churchhub API v1.0",
		ErrorHandler: middleware.NewErrorHandler(cfg, appLog),
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg, appLog, config.HealthCheck)

	go gracefulShutdown(app, appLog)

	appLog.Info("🚀 Server starting", "port", cfg.Port, "mode", cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Error("❌ Failed to start server", "error", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, appLog *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		appLog.Error("❌ Error during shutdown", "error", err)
	}
	appLog.Info("✅ Server stopped gracefully")
}
