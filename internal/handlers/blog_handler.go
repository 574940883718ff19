package handlers

import (
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BlogHandler struct {
	blogs *services.BlogService
}

func NewBlogHandler(blogs *services.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	var q dto.BlogListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	blogs, pagination, err := h.blogs.List(&q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "blogs": blogs, "pagination": pagination})
}

func (h *BlogHandler) AdminList(c *fiber.Ctx) error {
	blogs, pagination, err := h.blogs.AdminList(c.QueryInt("page"), c.QueryInt("limit"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "blogs": blogs, "pagination": pagination})
}

// Get serves the public detail view. An authenticated admin can also fetch
// unpublished drafts through the same route.
func (h *BlogHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid blog id")
	}

	isAdmin := false
	if user := middleware.CurrentUser(c); user != nil && user.Role == "admin" {
		isAdmin = true
	}

	blog, err := h.blogs.Get(id, isAdmin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "blog": blog})
}

// AdminGet also serves unpublished drafts.
func (h *BlogHandler) AdminGet(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid blog id")
	}
	blog, err := h.blogs.Get(id, true)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "blog": blog})
}

func (h *BlogHandler) Like(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid blog id")
	}

	likes, err := h.blogs.Like(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "likes": likes})
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	var req dto.BlogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	blog, err := h.blogs.Create(&req, user.ID.String(), user.FullName)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "blog": blog})
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid blog id")
	}
	var req dto.BlogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	blog, err := h.blogs.Update(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "blog": blog})
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid blog id")
	}
	if err := h.blogs.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Blog deleted"})
}

func (h *BlogHandler) TogglePublish(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid blog id")
	}
	blog, err := h.blogs.TogglePublish(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "blog": blog})
}
