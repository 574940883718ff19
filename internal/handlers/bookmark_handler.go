package handlers

import (
	"github.com/clinichub/clinic-backend/internal/middleware"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BookmarkHandler struct {
	bookmarks *services.BookmarkService
}

func NewBookmarkHandler(bookmarks *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	blogs, err := h.bookmarks.List(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "bookmarks": blogs})
}

func (h *BookmarkHandler) Add(c *fiber.Ctx) error {
	blogID, ok := parseID(c, "blogId")
	if !ok {
		return badRequest(c, "invalid blog id")
	}

	user := middleware.CurrentUser(c)
	if err := h.bookmarks.Add(user.ID, blogID); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Bookmarked"})
}

func (h *BookmarkHandler) Remove(c *fiber.Ctx) error {
	blogID, ok := parseID(c, "blogId")
	if !ok {
		return badRequest(c, "invalid blog id")
	}

	user := middleware.CurrentUser(c)
	if err := h.bookmarks.Remove(user.ID, blogID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Bookmark removed"})
}
