package handlers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clinichub/clinic-backend/internal/config"
	"github.com/clinichub/clinic-backend/internal/crypto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWTSecret:          "test-jwt-secret",
		JWTExpiry:          time.Hour,
		FieldEncryptionKey: "test-field-encryption-key",
	}
	cipher, err := crypto.NewFieldCipher(cfg.FieldEncryptionKey)
	require.NoError(t, err)

	h := NewAuthHandler(services.NewAuthService(db, cfg, cipher), nil)
	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	return app, db
}

func TestRegisterWithoutConsentIsBadRequest(t *testing.T) {
	app, db := newAuthApp(t)

	body := `{"name":"Ada Lovelace","email":"ada@clinic.com","phone":"+905551112233","password":"s3cret-pass","kvkkConsent":false}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Nothing must be persisted for a consent-less registration attempt.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestRegisterWithConsentIsCreated(t *testing.T) {
	app, db := newAuthApp(t)

	body := `{"name":"Ada Lovelace","email":"ada@clinic.com","phone":"+905551112233","password":"s3cret-pass","kvkkConsent":true}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
