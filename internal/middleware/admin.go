package middleware

import (
	"strings"

	"github.com/clinichub/clinic-backend/internal/config"
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired layers three admin checks, any of which grants access:
// 1. Config allow-list of admin emails
// 2. Role hint on the external identity claim
// 3. DB role on the reconciled local account
// It must run after Authenticate.
func AdminRequired(cfg *config.Config, cipherDecrypt func(string) string) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "authentication required",
			})
		}

		if user.Role == "admin" {
			return c.Next()
		}

		if contains(adminEmails, cipherDecrypt(user.Email)) {
			return c.Next()
		}

		if claim := CurrentClaim(c); claim != nil && claim.HasAdminRole() {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
