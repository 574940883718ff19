package handlers

import (
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AppointmentHandler struct {
	appointments *services.AppointmentService
}

func NewAppointmentHandler(appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	var req dto.BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	appt, err := h.appointments.Book(user.ID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "appointment": appt})
}

func (h *AppointmentHandler) MyAppointments(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	appts, err := h.appointments.MyAppointments(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "appointments": appts})
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid appointment id")
	}

	user := middleware.CurrentUser(c)
	appt, err := h.appointments.Get(id, user.ID, user.Role == "admin")
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "appointment": appt})
}

func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid appointment id")
	}

	user := middleware.CurrentUser(c)
	appt, err := h.appointments.Cancel(id, user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "appointment": appt})
}

func (h *AppointmentHandler) SetStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid appointment id")
	}
	var req dto.AppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	appt, err := h.appointments.SetStatus(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "appointment": appt})
}

func (h *AppointmentHandler) AvailableSlots(c *fiber.Ctx) error {
	doctorID, ok := parseID(c, "doctorId")
	if !ok {
		return badRequest(c, "invalid doctor id")
	}
	date := c.Params("date")

	slots, err := h.appointments.AvailableSlots(doctorID, date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.AvailableSlotsResponse{Success: true, Date: date, Slots: slots})
}

func (h *AppointmentHandler) AdminList(c *fiber.Ctx) error {
	var q dto.AppointmentListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	appts, pagination, err := h.appointments.AdminList(&q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "appointments": appts, "pagination": pagination})
}
