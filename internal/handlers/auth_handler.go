package handlers

import (
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/identity"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	verifier    identity.Verifier
}

func NewAuthHandler(authService *services.AuthService, verifier identity.Verifier) *AuthHandler {
	return &AuthHandler{authService: authService, verifier: verifier}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Sync exchanges an external provider bearer for a local session token,
// creating or reconciling the local account along the way.
func (h *AuthHandler) Sync(c *fiber.Ctx) error {
	bearer := c.Get(fiber.HeaderAuthorization)
	if len(bearer) > 7 && bearer[:7] == "Bearer " {
		bearer = bearer[7:]
	} else {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "missing bearer token",
		})
	}

	claim, err := h.verifier.Verify(c.UserContext(), bearer)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "invalid or expired token",
		})
	}

	user, err := h.authService.SyncExternalUser(claim)
	if err != nil {
		return fail(c, err)
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return fail(c, err)
	}

	profile, err := h.authService.GetProfile(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.AuthResponse{
		Success: true,
		Message: "Account synchronized",
		Token:   token,
		User:    *profile,
	})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	profile, err := h.authService.GetProfile(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": profile})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	profile, err := h.authService.UpdateProfile(user.ID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": profile})
}

// ChangePassword only makes sense for local-password accounts, so the route
// sits behind JWTProtected and never accepts an external bearer.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	userID, ok := middleware.LocalTokenUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "invalid or expired token",
		})
	}

	if err := h.authService.ChangePassword(userID, &req); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password changed"})
}
