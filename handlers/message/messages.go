package message

import (
	"strconv"

	"github.com/classpoint/classpoint/handlers"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/classpoint/classpoint/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles direct messaging endpoints
type MessageHandler struct {
	messageService *services.MessageService
	validator      *validation.Validator
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validator:      validation.NewValidator(),
	}
}

// SendMessageRequest represents a direct message request
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject" validate:"max=255"`
	Content     string `json:"content" validate:"required,max=20000"`
	ThreadID    string `json:"thread_id" validate:"omitempty,max=64"`
}

// SendMessage handles POST /api/v1/messages
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	message, err := h.messageService.SendMessage(c.Context(), userID, services.SendMessageRequest{
		RecipientID: req.RecipientID,
		Subject:     validation.SanitizeString(req.Subject),
		Content:     req.Content,
		ThreadID:    req.ThreadID,
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, message)
}

// GetThreads handles GET /api/v1/messages
func (h *MessageHandler) GetThreads(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	threads, err := h.messageService.GetThreads(c.Context(), userID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, threads)
}

// GetThread handles GET /api/v1/messages/threads/:thread_id
func (h *MessageHandler) GetThread(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	threadID := c.Params("thread_id")
	if threadID == "" {
		return response.BadRequest(c, "Invalid thread ID")
	}

	messages, err := h.messageService.GetThread(c.Context(), userID, threadID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, messages)
}

// MarkAsRead handles POST /api/v1/messages/:id/read
func (h *MessageHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	messageID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	if err := h.messageService.MarkAsRead(c.Context(), userID, uint(messageID)); err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Message marked as read", nil)
}
