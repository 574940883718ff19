package handlers

import (
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// PromoHandler serves both promo surfaces: /promo-cards and /home-promos.
type PromoHandler struct {
	promos *services.PromoService
}

func NewPromoHandler(promos *services.PromoService) *PromoHandler {
	return &PromoHandler{promos: promos}
}

func (h *PromoHandler) ListCards(c *fiber.Ctx) error {
	cards, err := h.promos.ListCards()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "promoCards": cards})
}

func (h *PromoHandler) AdminListCards(c *fiber.Ctx) error {
	cards, err := h.promos.AdminListCards()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "promoCards": cards})
}

func (h *PromoHandler) CreateCard(c *fiber.Ctx) error {
	var req dto.PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	card, err := h.promos.CreateCard(&req, user.ID.String())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "promoCard": card})
}

func (h *PromoHandler) UpdateCard(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid promo id")
	}
	var req dto.PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	card, err := h.promos.UpdateCard(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "promoCard": card})
}

func (h *PromoHandler) DeleteCard(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid promo id")
	}
	if err := h.promos.DeleteCard(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Promo card deleted"})
}

func (h *PromoHandler) ReorderCards(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.promos.ReorderCards(&req); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Promo cards reordered"})
}

func (h *PromoHandler) ListHome(c *fiber.Ctx) error {
	promos, err := h.promos.ListHome()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "homePromos": promos})
}

func (h *PromoHandler) AdminListHome(c *fiber.Ctx) error {
	promos, err := h.promos.AdminListHome()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "homePromos": promos})
}

func (h *PromoHandler) CreateHome(c *fiber.Ctx) error {
	var req dto.PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	promo, err := h.promos.CreateHome(&req, user.ID.String())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "homePromo": promo})
}

func (h *PromoHandler) UpdateHome(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid promo id")
	}
	var req dto.PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	promo, err := h.promos.UpdateHome(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "homePromo": promo})
}

func (h *PromoHandler) DeleteHome(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid promo id")
	}
	if err := h.promos.DeleteHome(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Home promo deleted"})
}

func (h *PromoHandler) ReorderHome(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.promos.ReorderHome(&req); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Home promos reordered"})
}
