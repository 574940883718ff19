package middleware

import (
	"log/slog"
	"strings"

	"github.com/clinichub/clinic-backend/internal/config"
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/identity"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/clinichub/clinic-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	localsUser  = "authUser"
	localsClaim = "authClaim"
)

// JWTProtected guards routes that only accept the locally-issued token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "invalid or expired token",
			})
		},
	})
}

// Authenticate accepts either a locally-issued HS256 token or an external
// provider bearer. Local tokens are parsed without a network hop; anything
// else goes to the remote verifier and the verified identity is reconciled
// to a local account. The resolved user lands in c.Locals.
func Authenticate(db *gorm.DB, cfg *config.Config, verifier identity.Verifier, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := bearerToken(c)
		if bearer == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "missing bearer token",
			})
		}

		if user, ok := localUser(db, cfg, bearer); ok {
			// A valid local token settles the request; it never falls
			// through to the remote verifier.
			if !user.IsActive {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: "account is deactivated",
				})
			}
			c.Locals(localsUser, user)
			return c.Next()
		}

		claim, err := verifier.Verify(c.UserContext(), bearer)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "invalid or expired token",
			})
		}

		user, err := auth.SyncExternalUser(claim)
		if err != nil {
			slog.Error("failed to reconcile external identity", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "could not resolve account",
			})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "account is deactivated",
			})
		}

		c.Locals(localsUser, user)
		c.Locals(localsClaim, claim)
		return c.Next()
	}
}

func localUser(db *gorm.DB, cfg *config.Config, bearer string) (*models.User, bool) {
	token, err := jwt.Parse(bearer, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// CurrentUser returns the account Authenticate resolved for this request.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUser).(*models.User)
	return user
}

// CurrentClaim returns the external identity claim, nil for local tokens.
func CurrentClaim(c *fiber.Ctx) *identity.Claim {
	claim, _ := c.Locals(localsClaim).(*identity.Claim)
	return claim
}

// LocalTokenUserID extracts the user id from the token JWTProtected parsed.
func LocalTokenUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	return id, err == nil
}
