package logging

import (
	"log/slog"
	"time"

	"github.com/clinichub/clinic-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a daily goroutine that deletes system logs older than
// 30 days and audit logs older than 90 (KVKK retention window).
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				systemCutoff := time.Now().AddDate(0, 0, -30)
				result := db.Where("timestamp < ?", systemCutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("system log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("system log cleanup completed", "deleted", result.RowsAffected)
				}

				auditCutoff := time.Now().AddDate(0, 0, -90)
				result = db.Where("timestamp < ?", auditCutoff).Delete(&models.AuditLog{})
				if result.Error != nil {
					slog.Error("audit log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("audit log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
