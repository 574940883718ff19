package handlers

import (
	"errors"
	"log/slog"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail maps a service error to its HTTP status and the flat error envelope.
// Unrecognized errors become a 500 with a generic message so internals never
// leak to clients.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrDuplicateAccount),
		errors.Is(err, services.ErrDuplicateSlug),
		errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrInvalidSlot),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrCancelCompleted),
		errors.Is(err, services.ErrDoctorUnavailable),
		errors.Is(err, services.ErrInvalidAnnouncement),
		errors.Is(err, services.ErrInvalidTarget),
		errors.Is(err, services.ErrEmptyReordering),
		errors.Is(err, services.ErrInvalidLegalKey),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidExport),
		errors.Is(err, services.ErrInvalidPushToken),
		errors.Is(err, services.ErrIncompleteIdentity),
		errors.Is(err, services.ErrConsentRequired):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrNotAppointmentOwner):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrBlogNotFound),
		errors.Is(err, services.ErrAnnouncementNotFound),
		errors.Is(err, services.ErrPromoNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrLegalNotFound),
		errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrBookmarkNotFound),
		errors.Is(err, services.ErrClinicInfoNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	default:
		slog.Error("request failed", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: message})
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(param))
	return id, err == nil
}
