package notification

import (
	"strconv"

	"github.com/classpoint/classpoint/handlers"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetNotifications handles GET /api/v1/notifications
// Returns the authenticated user's latest notifications, newest first
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	notifications, err := h.notificationService.List(c.Context(), userID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, notifications)
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count
// Unauthenticated callers get zero rather than an error
func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Success(c, fiber.Map{"unread_count": 0})
	}

	count, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, fiber.Map{"unread_count": count})
}

// MarkAsRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	notificationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkAsRead(c.Context(), uint(notificationID), userID); err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Notification marked as read", nil)
}

// MarkAllAsRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	count, err := h.notificationService.MarkAllAsRead(c.Context(), userID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, fiber.Map{
		"message": "All notifications marked as read",
		"count":   count,
	})
}
