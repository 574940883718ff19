package handlers

import (
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DoctorHandler struct {
	doctors *services.DoctorService
}

func NewDoctorHandler(doctors *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

func (h *DoctorHandler) List(c *fiber.Ctx) error {
	var q dto.DoctorListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	doctors, pagination, err := h.doctors.List(&q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "doctors": doctors, "pagination": pagination})
}

func (h *DoctorHandler) AdminList(c *fiber.Ctx) error {
	doctors, pagination, err := h.doctors.AdminList(c.QueryInt("page"), c.QueryInt("limit"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "doctors": doctors, "pagination": pagination})
}

func (h *DoctorHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid doctor id")
	}

	doctor, err := h.doctors.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "doctor": doctor})
}

func (h *DoctorHandler) Create(c *fiber.Ctx) error {
	var req dto.DoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	doctor, err := h.doctors.Create(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "doctor": doctor})
}

func (h *DoctorHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid doctor id")
	}
	var req dto.DoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	doctor, err := h.doctors.Update(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "doctor": doctor})
}

func (h *DoctorHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid doctor id")
	}
	if err := h.doctors.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Doctor deleted"})
}

func (h *DoctorHandler) ToggleStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid doctor id")
	}
	doctor, err := h.doctors.ToggleStatus(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "doctor": doctor})
}
