package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Secrets
	JWTSecret          string
	JWTExpiry          time.Duration
	FieldEncryptionKey string

	// Supabase identity provider
	SupabaseURL        string
	SupabaseServiceKey string

	// Cloudinary media storage
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	RemoveBgAPIKey      string

	// Admin
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string
	Environment string
}

// Load reads configuration from the environment. A .env file is honored
// when present so local setups match the deployed env-var contract.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "clinic_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpiry:          parseDuration(getEnv("JWT_EXPIRY", "168h")),
		FieldEncryptionKey: getEnv("FIELD_ENCRYPTION_KEY", ""),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		RemoveBgAPIKey:      getEnv("REMOVE_BG_API_KEY", ""),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		Environment: getEnv("APP_ENV", "development"),
	}
}

// Validate enforces the strict startup posture: the process refuses to boot
// without the secrets that protect stored PII and issued sessions.
func (c *Config) Validate() error {
	required := []struct {
		name string
		val  string
	}{
		{"JWT_SECRET", c.JWTSecret},
		{"FIELD_ENCRYPTION_KEY", c.FieldEncryptionKey},
		{"DB_PASSWORD", c.DBPassword},
		{"SUPABASE_URL", c.SupabaseURL},
		{"SUPABASE_SERVICE_KEY", c.SupabaseServiceKey},
	}
	for _, r := range required {
		if r.val == "" {
			return fmt.Errorf("%s environment variable is required", r.name)
		}
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 168 * time.Hour
	}
	return d
}
