package handlers

import (
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ClinicInfoHandler struct {
	clinic *services.ClinicInfoService
}

func NewClinicInfoHandler(clinic *services.ClinicInfoService) *ClinicInfoHandler {
	return &ClinicInfoHandler{clinic: clinic}
}

func (h *ClinicInfoHandler) Get(c *fiber.Ctx) error {
	info, err := h.clinic.Get()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "clinicInfo": info})
}

func (h *ClinicInfoHandler) Upsert(c *fiber.Ctx) error {
	var info models.ClinicInfo
	if err := c.BodyParser(&info); err != nil {
		return badRequest(c, "invalid request body")
	}

	saved, err := h.clinic.Upsert(&info)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "clinicInfo": saved})
}
