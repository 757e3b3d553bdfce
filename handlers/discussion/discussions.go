package discussion

import (
	"strconv"

	"github.com/classpoint/classpoint/handlers"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/classpoint/classpoint/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// DiscussionHandler handles discussion board endpoints
type DiscussionHandler struct {
	discussionService *services.DiscussionService
	validator         *validation.Validator
}

// NewDiscussionHandler creates a new discussion handler
func NewDiscussionHandler(discussionService *services.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{
		discussionService: discussionService,
		validator:         validation.NewValidator(),
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// CreateDiscussionRequest represents a discussion creation request
type CreateDiscussionRequest struct {
	CourseID    uint   `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
	IsPinned    bool   `json:"is_pinned"`
}

// CreateDiscussion handles POST /api/v1/discussions
func (h *DiscussionHandler) CreateDiscussion(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateDiscussionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	discussion, err := h.discussionService.CreateDiscussion(c.Context(), userID, services.CreateDiscussionRequest{
		CourseID:    req.CourseID,
		Title:       validation.SanitizeString(req.Title),
		Description: validation.SanitizeString(req.Description),
		IsPinned:    req.IsPinned,
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, discussion)
}

// GetDiscussions handles GET /api/v1/courses/:id/discussions
func (h *DiscussionHandler) GetDiscussions(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	discussions, err := h.discussionService.GetDiscussions(c.Context(), userID, courseID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, discussions)
}

// CreatePostRequest represents a discussion post request
type CreatePostRequest struct {
	Content      string `json:"content" validate:"required,max=20000"`
	ParentPostID *uint  `json:"parent_post_id"`
}

// CreatePost handles POST /api/v1/discussions/:id/posts
func (h *DiscussionHandler) CreatePost(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	discussionID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid discussion ID")
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	post, err := h.discussionService.CreatePost(c.Context(), userID, services.CreatePostRequest{
		DiscussionID: discussionID,
		Content:      req.Content,
		ParentPostID: req.ParentPostID,
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, post)
}

// GetPosts handles GET /api/v1/discussions/:id/posts
func (h *DiscussionHandler) GetPosts(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	discussionID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid discussion ID")
	}

	posts, err := h.discussionService.GetPosts(c.Context(), userID, discussionID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, posts)
}
