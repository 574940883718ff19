package middleware

import (
	"encoding/json"
	"strings"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Turkish health-advertising rules forbid promotional pricing language in
// clinic content. Checked on promo writes before anything is stored.
var promotionalWords = []string{
	"indirim", "kampanya", "ücretsiz", "bedava", "fırsat",
	"promosyon", "hediye", "taksit", "kupon",
}

// NoPromotionalWords rejects write requests whose string fields contain
// banned promotional wording.
func NoPromotionalWords() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload map[string]any
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			// Malformed JSON is the handler's problem, not this check's.
			return c.Next()
		}

		if word := findPromotionalWord(payload); word != "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "content contains forbidden promotional wording: " + word,
			})
		}
		return c.Next()
	}
}

func findPromotionalWord(payload map[string]any) string {
	for _, v := range payload {
		s, ok := v.(string)
		if !ok {
			continue
		}
		lowered := strings.ToLower(s)
		for _, word := range promotionalWords {
			if strings.Contains(lowered, word) {
				return word
			}
		}
	}
	return ""
}

// RequireKVKKConsent blocks accounts that never accepted the KVKK
// disclosure from features that store their personal data.
func RequireKVKKConsent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "authentication required",
			})
		}
		if !user.KVKKConsent {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "KVKK consent is required to use this feature",
			})
		}
		return c.Next()
	}
}
