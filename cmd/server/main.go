package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/clinichub/clinic-backend/internal/config"
	"github.com/clinichub/clinic-backend/internal/crypto"
	"github.com/clinichub/clinic-backend/internal/database"
	"github.com/clinichub/clinic-backend/internal/handlers"
	"github.com/clinichub/clinic-backend/internal/identity"
	"github.com/clinichub/clinic-backend/internal/logging"
	"github.com/clinichub/clinic-backend/internal/media"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/push"
	"github.com/clinichub/clinic-backend/internal/routes"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	cipher, err := crypto.NewFieldCipher(cfg.FieldEncryptionKey)
	if err != nil {
		slog.Error("field cipher init failed", "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// DB log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(),
		dbLogHandler,
	)))

	// Log retention
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Outbound clients
	verifier := identity.NewSupabaseVerifier(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	expo := push.NewExpoClient()
	cloudinary := media.NewCloudinaryClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	removeBg := media.NewRemoveBgClient(cfg.RemoveBgAPIKey)

	// Services
	authService := services.NewAuthService(database.DB, cfg, cipher)
	doctorService := services.NewDoctorService(database.DB)
	blogService := services.NewBlogService(database.DB)
	announcementService := services.NewAnnouncementService(database.DB)
	promoService := services.NewPromoService(database.DB)
	appointmentService := services.NewAppointmentService(database.DB, cipher)
	legalService := services.NewLegalService(database.DB)
	notificationService := services.NewNotificationService(database.DB, expo)
	bookmarkService := services.NewBookmarkService(database.DB)
	clinicInfoService := services.NewClinicInfoService(database.DB)
	adminService := services.NewAdminService(database.DB, cipher)

	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, verifier),
		Health:       handlers.NewHealthHandler(),
		Doctor:       handlers.NewDoctorHandler(doctorService),
		Blog:         handlers.NewBlogHandler(blogService),
		Announcement: handlers.NewAnnouncementHandler(announcementService),
		Promo:        handlers.NewPromoHandler(promoService),
		Appointment:  handlers.NewAppointmentHandler(appointmentService),
		Legal:        handlers.NewLegalHandler(legalService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Bookmark:     handlers.NewBookmarkHandler(bookmarkService),
		ClinicInfo:   handlers.NewClinicInfoHandler(clinicInfoService),
		Upload:       handlers.NewUploadHandler(cloudinary, removeBg),
		Admin:        handlers.NewAdminHandler(adminService, authService),
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

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

	routes.Setup(app, cfg, database.DB, cipher, verifier, authService, h)

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
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors, never for 5xx.
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
