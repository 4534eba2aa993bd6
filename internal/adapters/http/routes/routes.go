package routes

import (
	"time"

	"churchhub/internal/adapters/http/apperror"
	"churchhub/internal/adapters/http/handlers"
	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/config"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// publicCacheAge is how long shared caches may keep public directory pages
const publicCacheAge = time.Minute

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *logger.Logger, ping func() error) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	churchRepo := repositories.NewChurchRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	donationRepo := repositories.NewDonationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg, log)
	churchService := services.NewChurchService(churchRepo, log)
	reviewService := services.NewReviewService(reviewRepo, churchRepo, log)
	donationService := services.NewDonationService(donationRepo, log)
	userService := services.NewUserService(userRepo, log)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	errs := apperror.Mapper{Prod: cfg.IsProd()}
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, ping)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	churchHandler := handlers.NewChurchHandler(churchService, errs)
	reviewHandler := handlers.NewReviewHandler(reviewService, errs)
	donationHandler := handlers.NewDonationHandler(donationService, errs)
	userHandler := handlers.NewUserHandler(userService, errs)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, errs)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/health", healthHandler.HealthCheck)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)
	setupChurchRoutes(apiV1.Group("/churches"), churchHandler, reviewHandler, cfg)
	setupReviewRoutes(apiV1.Group("/reviews"), reviewHandler, cfg)
	setupDonationRoutes(apiV1.Group("/donations"), donationHandler, cfg)
	setupUserRoutes(apiV1, userHandler, cfg)
	apiV1.Get("/dashboard/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), dashboardHandler.GetAdminDashboard)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupChurchRoutes configures church directory routes and the nested review routes
func setupChurchRoutes(router fiber.Router, churches *handlers.ChurchHandler, reviews *handlers.ReviewHandler, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	optional := middleware.OptionalAuth(cfg)
	cache := middleware.PublicCache(publicCacheAge)

	// Public routes
	router.Get("/", optional, cache, churches.List)
	router.Get("/slug/:slug", optional, cache, churches.GetBySlug)
	router.Get("/:id", optional, churches.Get)
	router.Get("/:id/reviews", optional, cache, reviews.ListByChurch)

	// Protected routes
	router.Post("/", auth, churches.Create)
	router.Post("/:id/publish", auth, churches.Publish)
	router.Post("/:id/verify", auth, churches.Verify)
	router.Put("/:id/profile", auth, churches.UpdateProfile)
	router.Post("/:id/reviews", auth, reviews.Submit)

	// Admin routes
	router.Delete("/:id", auth, middleware.AdminOnly(), churches.Delete)
}

// setupReviewRoutes configures review moderation routes
func setupReviewRoutes(router fiber.Router, handler *handlers.ReviewHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Post("/:id/moderate", handler.Moderate)
	router.Post("/:id/respond", handler.Respond)
}

// setupDonationRoutes configures donation routes
func setupDonationRoutes(router fiber.Router, handler *handlers.DonationHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	// Donor routes
	router.Post("/", handler.Create)
	router.Get("/me", handler.ListMine)
	router.Get("/:id", handler.Get)

	// Payment bookkeeping (Admin only)
	admin := middleware.AdminOnly()
	router.Post("/payment-intents/:intentId/complete", admin, handler.CompleteByPaymentIntent)
	router.Post("/:id/complete", admin, handler.Complete)
	router.Post("/:id/fail", admin, handler.Fail)
	router.Post("/:id/refund", admin, handler.Refund)
}

// setupUserRoutes configures user management and profile routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)

	router.Put("/profile/password", auth, handler.ChangePassword)

	// Admin routes
	users := router.Group("/users", auth, middleware.AdminOnly())
	users.Get("/", handler.ListUsers)
	users.Put("/:id", handler.UpdateUser)
	users.Delete("/:id", handler.DeleteUser)
}
