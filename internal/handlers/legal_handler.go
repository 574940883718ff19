package handlers

import (
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LegalHandler struct {
	legal *services.LegalService
}

func NewLegalHandler(legal *services.LegalService) *LegalHandler {
	return &LegalHandler{legal: legal}
}

// GetActive serves the active version of a legal document to the app.
func (h *LegalHandler) GetActive(c *fiber.Ctx) error {
	doc, err := h.legal.GetActive(c.Params("key"), c.Query("language"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "document": doc})
}

// CurrentKVKK is the consent screen's endpoint.
func (h *LegalHandler) CurrentKVKK(c *fiber.Ctx) error {
	doc, err := h.legal.GetActive(models.LegalKeyKVKK, c.Query("language"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "document": doc})
}

func (h *LegalHandler) List(c *fiber.Ctx) error {
	docs, err := h.legal.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "documents": docs})
}

func (h *LegalHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid document id")
	}
	doc, err := h.legal.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "document": doc})
}

func (h *LegalHandler) Create(c *fiber.Ctx) error {
	var req dto.LegalDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	doc, err := h.legal.Create(&req, user.ID.String())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "document": doc})
}

func (h *LegalHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid document id")
	}
	var req dto.LegalDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	doc, err := h.legal.Update(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "document": doc})
}

func (h *LegalHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid document id")
	}
	if err := h.legal.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Document deleted"})
}

func (h *LegalHandler) Activate(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid document id")
	}
	doc, err := h.legal.Activate(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "document": doc})
}
