package handlers

import (
	"errors"

	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/gofiber/fiber/v2"
)

// ServiceError maps service-layer sentinel errors onto the HTTP response
// envelope. Unknown errors become an opaque 500.
func ServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrAssignmentNotFound),
		errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrDiscussionNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, services.ErrAccessDenied),
		errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrNotMessageRecipient):
		return response.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrProfileExists),
		errors.Is(err, services.ErrAlreadyEnrolled):
		return response.Conflict(c, err.Error())

	case errors.Is(err, services.ErrCourseFull),
		errors.Is(err, services.ErrCourseNotAvailable),
		errors.Is(err, services.ErrAssignmentNotAvailable),
		errors.Is(err, services.ErrDiscussionLocked),
		errors.Is(err, services.ErrParentPostInvalid),
		errors.Is(err, services.ErrRecipientNotFound),
		errors.Is(err, services.ErrInvalidRole):
		return response.BadRequest(c, err.Error())

	default:
		return response.InternalServerError(c, "")
	}
}
