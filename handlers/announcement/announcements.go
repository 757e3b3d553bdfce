package announcement

import (
	"strconv"

	"github.com/classpoint/classpoint/handlers"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/classpoint/classpoint/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// AnnouncementHandler handles course announcement endpoints
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
	validator           *validation.Validator
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		validator:           validation.NewValidator(),
	}
}

// CreateAnnouncementRequest represents an announcement creation request
type CreateAnnouncementRequest struct {
	CourseID uint   `json:"course_id" validate:"required"`
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required,max=20000"`
	IsPinned bool   `json:"is_pinned"`
}

// CreateAnnouncement handles POST /api/v1/announcements
func (h *AnnouncementHandler) CreateAnnouncement(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	announcement, err := h.announcementService.CreateAnnouncement(c.Context(), userID, services.CreateAnnouncementRequest{
		CourseID: req.CourseID,
		Title:    validation.SanitizeString(req.Title),
		Content:  req.Content,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, announcement)
}

// GetAnnouncements handles GET /api/v1/courses/:id/announcements
func (h *AnnouncementHandler) GetAnnouncements(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	announcements, err := h.announcementService.GetAnnouncements(c.Context(), userID, uint(courseID))
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, announcements)
}
