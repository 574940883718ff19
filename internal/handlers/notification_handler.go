package handlers

import (
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	items, err := h.notifications.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "notifications": items})
}

func (h *NotificationHandler) AdminList(c *fiber.Ctx) error {
	items, err := h.notifications.AdminList()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "notifications": items})
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid notification id")
	}
	item, err := h.notifications.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "notification": item})
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req dto.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	item, err := h.notifications.Create(c.UserContext(), &req, user.ID.String())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "notification": item})
}

func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid notification id")
	}
	var req dto.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	item, err := h.notifications.Update(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "notification": item})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid notification id")
	}
	if err := h.notifications.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Notification deleted"})
}

func (h *NotificationHandler) Toggle(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid notification id")
	}
	item, err := h.notifications.Toggle(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "notification": item})
}

// RegisterPushToken is called by the app on startup with its Expo token.
func (h *NotificationHandler) RegisterPushToken(c *fiber.Ctx) error {
	var req dto.RegisterPushTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.notifications.RegisterPushToken(&req); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Push token registered"})
}
