package middleware

import (
	"log/slog"
	"time"

	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Audit records an admin action after the handler succeeds. Failures to
// write the trail are logged and never fail the request.
func Audit(db *gorm.DB, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil || c.Response().StatusCode() >= 400 {
			return err
		}

		adminID := ""
		if user := CurrentUser(c); user != nil {
			adminID = user.ID.String()
		}

		entry := models.AuditLog{
			AdminID:   adminID,
			Action:    action,
			Method:    c.Method(),
			Endpoint:  c.OriginalURL(),
			IP:        c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
			Timestamp: time.Now(),
		}
		if dbErr := db.Create(&entry).Error; dbErr != nil {
			slog.Error("failed to write audit log", "action", action, "error", dbErr)
		}
		return nil
	}
}
