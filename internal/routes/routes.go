package routes

import (
	"time"

	"github.com/clinichub/clinic-backend/internal/config"
	"github.com/clinichub/clinic-backend/internal/crypto"
	"github.com/clinichub/clinic-backend/internal/handlers"
	"github.com/clinichub/clinic-backend/internal/identity"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Doctor       *handlers.DoctorHandler
	Blog         *handlers.BlogHandler
	Announcement *handlers.AnnouncementHandler
	Promo        *handlers.PromoHandler
	Appointment  *handlers.AppointmentHandler
	Legal        *handlers.LegalHandler
	Notification *handlers.NotificationHandler
	Bookmark     *handlers.BookmarkHandler
	ClinicInfo   *handlers.ClinicInfoHandler
	Upload       *handlers.UploadHandler
	Admin        *handlers.AdminHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	cipher *crypto.FieldCipher,
	verifier identity.Verifier,
	authService *services.AuthService,
	h *Handlers,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	authed := middleware.Authenticate(db, cfg, verifier, authService)
	admin := middleware.AdminRequired(cfg, cipher.Decrypt)

	api.Get("/health", h.Health.Check)

	// Auth routes get a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/sync", h.Auth.Sync)
	auth.Get("/profile", authed, h.Auth.Profile)
	auth.Put("/profile", authed, h.Auth.UpdateProfile)
	// Password changes only apply to local accounts, so this route takes
	// the locally-issued token only.
	auth.Put("/change-password", middleware.JWTProtected(cfg), h.Auth.ChangePassword)

	// Doctors
	api.Get("/doctors", h.Doctor.List)
	api.Get("/doctors/:id", h.Doctor.Get)

	// Blogs
	api.Get("/blogs", h.Blog.List)
	api.Get("/blogs/:id", h.Blog.Get)
	api.Post("/blogs/:id/like", authed, h.Blog.Like)

	// Announcements
	api.Get("/announcements", h.Announcement.List)

	// Promo surfaces
	api.Get("/promo-cards", h.Promo.ListCards)
	api.Get("/home-promos", h.Promo.ListHome)

	// Appointments
	appts := api.Group("/appointments", authed)
	appts.Get("/my", h.Appointment.MyAppointments)
	appts.Post("/", middleware.RequireKVKKConsent(), h.Appointment.Book)
	appts.Get("/available-slots/:doctorId/:date", h.Appointment.AvailableSlots)
	appts.Get("/:id", h.Appointment.Get)
	appts.Patch("/:id/cancel", h.Appointment.Cancel)

	// Legal documents
	api.Get("/legal/kvkk/current", h.Legal.CurrentKVKK)
	api.Get("/legal/:key", h.Legal.GetActive)

	// Notifications
	api.Get("/notifications", h.Notification.List)
	api.Get("/notifications/:id", h.Notification.Get)

	// Bookmarks
	bookmarks := api.Group("/bookmarks", authed)
	bookmarks.Get("/", h.Bookmark.List)
	bookmarks.Post("/:blogId", h.Bookmark.Add)
	bookmarks.Delete("/:blogId", h.Bookmark.Remove)

	// Clinic profile
	api.Get("/clinic-info", h.ClinicInfo.Get)

	// Device push registration
	api.Post("/push/register", h.Notification.RegisterPushToken)

	setupAdmin(api, db, authed, admin, h)
}

// setupAdmin wires the panel's routes: everything here requires an
// authenticated admin, and mutating routes leave an audit trail.
func setupAdmin(api fiber.Router, db *gorm.DB, authed, admin fiber.Handler, h *Handlers) {
	noPromo := middleware.NoPromotionalWords()

	a := api.Group("/admin", authed, admin)
	a.Get("/me", h.Admin.Me)
	a.Get("/stats", h.Admin.Stats)
	a.Get("/health", h.Admin.Health)

	a.Get("/users", h.Admin.ListUsers)
	a.Get("/users/:id", h.Admin.GetUser)
	a.Patch("/users/:id/toggle-status", middleware.Audit(db, "TOGGLE_USER_STATUS"), h.Admin.ToggleUserStatus)
	a.Patch("/users/:id/role", middleware.Audit(db, "UPDATE_USER_ROLE"), h.Admin.SetUserRole)

	a.Get("/doctors", h.Doctor.AdminList)
	a.Post("/doctors", middleware.Audit(db, "CREATE_DOCTOR"), h.Doctor.Create)
	a.Put("/doctors/:id", middleware.Audit(db, "UPDATE_DOCTOR"), h.Doctor.Update)
	a.Delete("/doctors/:id", middleware.Audit(db, "DELETE_DOCTOR"), h.Doctor.Delete)
	a.Patch("/doctors/:id/toggle-status", middleware.Audit(db, "TOGGLE_DOCTOR_STATUS"), h.Doctor.ToggleStatus)

	a.Get("/blogs", h.Blog.AdminList)
	a.Get("/blogs/:id", h.Blog.AdminGet)
	a.Post("/blogs", middleware.Audit(db, "CREATE_BLOG"), h.Blog.Create)
	a.Put("/blogs/:id", middleware.Audit(db, "UPDATE_BLOG"), h.Blog.Update)
	a.Delete("/blogs/:id", middleware.Audit(db, "DELETE_BLOG"), h.Blog.Delete)
	a.Patch("/blogs/:id/toggle-publish", middleware.Audit(db, "TOGGLE_BLOG_PUBLISH"), h.Blog.TogglePublish)

	a.Get("/announcements", h.Announcement.AdminList)
	a.Post("/announcements", middleware.Audit(db, "CREATE_ANNOUNCEMENT"), h.Announcement.Create)
	a.Put("/announcements/:id", middleware.Audit(db, "UPDATE_ANNOUNCEMENT"), h.Announcement.Update)
	a.Delete("/announcements/:id", middleware.Audit(db, "DELETE_ANNOUNCEMENT"), h.Announcement.Delete)
	a.Patch("/announcements/:id/toggle", middleware.Audit(db, "TOGGLE_ANNOUNCEMENT"), h.Announcement.Toggle)

	a.Get("/promo-cards", h.Promo.AdminListCards)
	a.Post("/promo-cards", noPromo, middleware.Audit(db, "CREATE_PROMO_CARD"), h.Promo.CreateCard)
	a.Put("/promo-cards/reorder", middleware.Audit(db, "REORDER_PROMO_CARDS"), h.Promo.ReorderCards)
	a.Put("/promo-cards/:id", noPromo, middleware.Audit(db, "UPDATE_PROMO_CARD"), h.Promo.UpdateCard)
	a.Delete("/promo-cards/:id", middleware.Audit(db, "DELETE_PROMO_CARD"), h.Promo.DeleteCard)

	a.Get("/home-promos", h.Promo.AdminListHome)
	a.Post("/home-promos", noPromo, middleware.Audit(db, "CREATE_HOME_PROMO"), h.Promo.CreateHome)
	a.Put("/home-promos/reorder", middleware.Audit(db, "REORDER_HOME_PROMOS"), h.Promo.ReorderHome)
	a.Put("/home-promos/:id", noPromo, middleware.Audit(db, "UPDATE_HOME_PROMO"), h.Promo.UpdateHome)
	a.Delete("/home-promos/:id", middleware.Audit(db, "DELETE_HOME_PROMO"), h.Promo.DeleteHome)

	a.Get("/appointments", h.Appointment.AdminList)
	a.Patch("/appointments/:id/status", middleware.Audit(db, "UPDATE_APPOINTMENT_STATUS"), h.Appointment.SetStatus)

	a.Get("/legal", h.Legal.List)
	a.Get("/legal/:id", h.Legal.Get)
	a.Post("/legal", middleware.Audit(db, "CREATE_LEGAL_DOCUMENT"), h.Legal.Create)
	a.Put("/legal/:id", middleware.Audit(db, "UPDATE_LEGAL_DOCUMENT"), h.Legal.Update)
	a.Delete("/legal/:id", middleware.Audit(db, "DELETE_LEGAL_DOCUMENT"), h.Legal.Delete)
	a.Patch("/legal/:id/activate", middleware.Audit(db, "ACTIVATE_LEGAL_DOCUMENT"), h.Legal.Activate)

	a.Get("/notifications", h.Notification.AdminList)
	a.Post("/notifications", middleware.Audit(db, "CREATE_NOTIFICATION"), h.Notification.Create)
	a.Put("/notifications/:id", middleware.Audit(db, "UPDATE_NOTIFICATION"), h.Notification.Update)
	a.Delete("/notifications/:id", middleware.Audit(db, "DELETE_NOTIFICATION"), h.Notification.Delete)
	a.Patch("/notifications/:id/toggle", middleware.Audit(db, "TOGGLE_NOTIFICATION"), h.Notification.Toggle)

	a.Put("/clinic-info", middleware.Audit(db, "UPDATE_CLINIC_INFO"), h.ClinicInfo.Upsert)

	a.Post("/upload", middleware.Audit(db, "UPLOAD_IMAGE"), h.Upload.Image)
	a.Post("/upload/doctor-photo", middleware.Audit(db, "UPLOAD_DOCTOR_PHOTO"), h.Upload.DoctorPhoto)

	a.Get("/logs", h.Admin.Logs)
	a.Delete("/logs/cleanup", middleware.Audit(db, "CLEANUP_LOGS"), h.Admin.CleanupLogs)
	a.Get("/audit-logs", h.Admin.AuditTrail)
	a.Get("/export/:type", h.Admin.Export)
}
