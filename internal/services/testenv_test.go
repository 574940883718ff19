package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/clinichub/clinic-backend/internal/config"
	"github.com/clinichub/clinic-backend/internal/crypto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database per test keeps state from leaking between
	// tests while still letting gorm's connection pool share it.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Blog{},
		&models.Announcement{},
		&models.PromoCard{},
		&models.HomePromo{},
		&models.Appointment{},
		&models.LegalDocument{},
		&models.Notification{},
		&models.PushToken{},
		&models.Bookmark{},
		&models.ClinicInfo{},
		&models.AuditLog{},
		&models.SystemLog{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-jwt-secret",
		JWTExpiry:          time.Hour,
		FieldEncryptionKey: "test-field-encryption-key",
		AdminEmails:        "admin@clinic.com",
	}
}

func newTestCipher(t *testing.T, cfg *config.Config) *crypto.FieldCipher {
	t.Helper()
	cipher, err := crypto.NewFieldCipher(cfg.FieldEncryptionKey)
	require.NoError(t, err)
	return cipher
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	return NewAuthService(db, cfg, newTestCipher(t, cfg)), db
}
