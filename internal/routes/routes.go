package routes

import (
	"time"

	"github.com/foodbridge-dev/foodbridge-backend/internal/config"
	"github.com/foodbridge-dev/foodbridge-backend/internal/handlers"
	"github.com/foodbridge-dev/foodbridge-backend/internal/middleware"
	"github.com/foodbridge-dev/foodbridge-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	donationHandler *handlers.DonationHandler,
	claimHandler *handlers.ClaimHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	syncHandler *handlers.SyncHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Health)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware per route so the
	// public routes above stay untouched
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Donations
	api.Post("/donations", middleware.JWTProtected(cfg), donationHandler.Create)
	api.Get("/donations/nearby", middleware.JWTProtected(cfg), donationHandler.Nearby)
	api.Get("/donations/my", middleware.JWTProtected(cfg), donationHandler.ListOwn)
	api.Post("/donations/:id/feedback", middleware.JWTProtected(cfg), donationHandler.AddFeedback)

	// Claims — NGO side of the marketplace
	api.Post("/donations/:id/claim",
		middleware.JWTProtected(cfg),
		middleware.RoleRequired(models.RoleNGO, models.RoleAdmin),
		claimHandler.Create)
	api.Put("/claims/:id/status", middleware.JWTProtected(cfg), claimHandler.UpdateStatus)
	api.Get("/claims", middleware.JWTProtected(cfg), claimHandler.ListOwn)

	// Admin-only surface (protected + admin required)
	api.Get("/analytics",
		middleware.JWTProtected(cfg),
		middleware.AdminRequired(db, cfg),
		analyticsHandler.Overview)
	api.Post("/sync/donation/:id",
		middleware.JWTProtected(cfg),
		middleware.AdminRequired(db, cfg),
		syncHandler.Resync)
}
