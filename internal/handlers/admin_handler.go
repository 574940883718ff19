package handlers

import (
	"github.com/clinichub/clinic-backend/internal/database"
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	admin *services.AdminService
	auth  *services.AuthService
}

func NewAdminHandler(admin *services.AdminService, auth *services.AuthService) *AdminHandler {
	return &AdminHandler{admin: admin, auth: auth}
}

// Me confirms admin access and returns the caller's own profile.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	profile, err := h.auth.GetProfile(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": profile})
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	users, pagination, err := h.admin.ListUsers(&q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "users": users, "pagination": pagination})
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	user, err := h.admin.GetUser(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	user, err := h.admin.ToggleUserStatus(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

func (h *AdminHandler) SetUserRole(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.admin.SetUserRole(id, req.Role)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	var q dto.LogQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	logs, pagination, err := h.admin.Logs(&q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "logs": logs, "pagination": pagination})
}

func (h *AdminHandler) CleanupLogs(c *fiber.Ctx) error {
	removed, err := h.admin.CleanupLogs(c.QueryInt("olderThanDays"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "removed": removed})
}

func (h *AdminHandler) AuditTrail(c *fiber.Ctx) error {
	entries, pagination, err := h.admin.AuditTrail(c.QueryInt("page"), c.QueryInt("limit"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "auditLogs": entries, "pagination": pagination})
}

func (h *AdminHandler) Export(c *fiber.Ctx) error {
	data, err := h.admin.Export(c.Params("type"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "type": c.Params("type"), "data": data})
}

// Health is the admin panel's deeper health view with a DB round trip.
func (h *AdminHandler) Health(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false, "database": "unreachable",
		})
	}
	return c.JSON(fiber.Map{"success": true, "database": "ok"})
}
