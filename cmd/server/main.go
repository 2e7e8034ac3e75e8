package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/foodbridge-dev/foodbridge-backend/internal/config"
	"github.com/foodbridge-dev/foodbridge-backend/internal/database"
	"github.com/foodbridge-dev/foodbridge-backend/internal/events"
	"github.com/foodbridge-dev/foodbridge-backend/internal/handlers"
	"github.com/foodbridge-dev/foodbridge-backend/internal/logging"
	"github.com/foodbridge-dev/foodbridge-backend/internal/middleware"
	"github.com/foodbridge-dev/foodbridge-backend/internal/routes"
	"github.com/foodbridge-dev/foodbridge-backend/internal/safety"
	"github.com/foodbridge-dev/foodbridge-backend/internal/services"
	"github.com/foodbridge-dev/foodbridge-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cleanupDone)

	// Event bus for donation lifecycle notifications
	bus := events.NewBus(256)
	bus.Subscribe(func(e events.Event) {
		slog.Info("event", "name", e.Name, "payload", e.Payload)
	})
	bus.Start()

	// Image storage
	images, err := storage.NewLocalStore(cfg.UploadsDir)
	if err != nil {
		slog.Error("uploads directory init failed", "error", err)
		os.Exit(1)
	}

	// Services
	analyzer := safety.NewAnalyzer(safety.NewRandomSignalProvider())
	authService := services.NewAuthService(db, cfg)
	sheetSyncService := services.NewSheetSyncService(db, cfg)
	donationService := services.NewDonationService(db, analyzer, bus, sheetSyncService, images)
	claimService := services.NewClaimService(db, bus)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db)
	donationHandler := handlers.NewDonationHandler(donationService)
	claimHandler := handlers.NewClaimHandler(claimService)
	analyticsHandler := handlers.NewAnalyticsHandler(donationService)
	syncHandler := handlers.NewSyncHandler(sheetSyncService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxImageSizeMB * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Uploaded food images
	app.Static("/uploads", images.Dir())

	// Routes
	routes.Setup(app, cfg, db, authHandler, healthHandler, donationHandler, claimHandler, analyticsHandler, syncHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	bus.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
