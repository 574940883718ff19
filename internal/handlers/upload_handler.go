package handlers

import (
	"io"
	"log/slog"

	"github.com/clinichub/clinic-backend/internal/media"
	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 10 << 20

type UploadHandler struct {
	cloudinary *media.CloudinaryClient
	removeBg   *media.RemoveBgClient
}

func NewUploadHandler(cloudinary *media.CloudinaryClient, removeBg *media.RemoveBgClient) *UploadHandler {
	return &UploadHandler{cloudinary: cloudinary, removeBg: removeBg}
}

// Image uploads a generic image. ?removeBg=true strips the background first.
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	return h.upload(c, "clinic", c.QueryBool("removeBg"))
}

// DoctorPhoto uploads a doctor portrait; background removal defaults on so
// portraits render uniformly in the app.
func (h *UploadHandler) DoctorPhoto(c *fiber.Ctx) error {
	stripBg := true
	if c.Query("removeBg") == "false" {
		stripBg = false
	}
	return h.upload(c, "doctors", stripBg)
}

func (h *UploadHandler) upload(c *fiber.Ctx, folder string, stripBg bool) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image file is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return badRequest(c, "image exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, err)
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return fail(c, err)
	}

	if stripBg && h.removeBg.Configured() {
		stripped, err := h.removeBg.Strip(c.UserContext(), image, fileHeader.Filename)
		if err != nil {
			// Background removal is cosmetic; keep the original on failure.
			slog.Warn("background removal failed", "file", fileHeader.Filename, "error", err)
		} else {
			image = stripped
		}
	}

	result, err := h.cloudinary.Upload(c.UserContext(), image, fileHeader.Filename, folder)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "image": result})
}
