package handlers

import (
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnnouncementHandler struct {
	announcements *services.AnnouncementService
}

func NewAnnouncementHandler(announcements *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	items, err := h.announcements.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "announcements": items})
}

func (h *AnnouncementHandler) AdminList(c *fiber.Ctx) error {
	items, err := h.announcements.AdminList()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "announcements": items})
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	item, err := h.announcements.Create(&req, user.ID.String())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "announcement": item})
}

func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid announcement id")
	}
	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	item, err := h.announcements.Update(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "announcement": item})
}

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid announcement id")
	}
	if err := h.announcements.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Announcement deleted"})
}

func (h *AnnouncementHandler) Toggle(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid announcement id")
	}
	item, err := h.announcements.Toggle(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "announcement": item})
}
