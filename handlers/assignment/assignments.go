package assignment

import (
	"strconv"
	"time"

	"github.com/classpoint/classpoint/handlers"
	"github.com/classpoint/classpoint/model"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/classpoint/classpoint/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// AssignmentHandler handles assignment and submission endpoints
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	validator         *validation.Validator
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
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

// CreateAssignmentRequest represents an assignment creation request
type CreateAssignmentRequest struct {
	CourseID             uint      `json:"course_id" validate:"required"`
	Title                string    `json:"title" validate:"required,max=255"`
	Description          string    `json:"description" validate:"max=5000"`
	DueDate              time.Time `json:"due_date" validate:"required"`
	MaxPoints            float64   `json:"max_points" validate:"min=0"`
	Instructions         string    `json:"instructions" validate:"max=10000"`
	Attachments          []string  `json:"attachments" validate:"omitempty,dive,max=512"`
	AllowLateSubmissions bool      `json:"allow_late_submissions"`
	SubmissionTypes      []string  `json:"submission_types" validate:"omitempty,dive,oneof=file text url"`
}

// CreateAssignment handles POST /api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	types := make([]model.SubmissionType, 0, len(req.SubmissionTypes))
	for _, t := range req.SubmissionTypes {
		types = append(types, model.SubmissionType(t))
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Context(), userID, services.CreateAssignmentRequest{
		CourseID:             req.CourseID,
		Title:                validation.SanitizeString(req.Title),
		Description:          validation.SanitizeString(req.Description),
		DueDate:              req.DueDate,
		MaxPoints:            req.MaxPoints,
		Instructions:         req.Instructions,
		Attachments:          req.Attachments,
		AllowLateSubmissions: req.AllowLateSubmissions,
		SubmissionTypes:      types,
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, assignment)
}

// PublishAssignment handles POST /api/v1/assignments/:id/publish
func (h *AssignmentHandler) PublishAssignment(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	if err := h.assignmentService.PublishAssignment(c.Context(), userID, assignmentID); err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Assignment published", nil)
}

// GetAssignments handles GET /api/v1/courses/:id/assignments
func (h *AssignmentHandler) GetAssignments(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	assignments, err := h.assignmentService.GetAssignments(c.Context(), userID, courseID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, assignments)
}

// SubmitAssignmentRequest represents a student submission
type SubmitAssignmentRequest struct {
	Content     string   `json:"content" validate:"max=50000"`
	URL         string   `json:"url" validate:"omitempty,url,max=2048"`
	Attachments []string `json:"attachments" validate:"omitempty,dive,max=512"`
}

// SubmitAssignment handles POST /api/v1/assignments/:id/submissions
func (h *AssignmentHandler) SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	var req SubmitAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	submission, err := h.assignmentService.SubmitAssignment(c.Context(), userID, services.SubmitAssignmentRequest{
		AssignmentID: assignmentID,
		Content:      req.Content,
		URL:          req.URL,
		Attachments:  req.Attachments,
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, submission)
}

// GradeSubmissionRequest represents a grading request
type GradeSubmissionRequest struct {
	Grade    float64 `json:"grade" validate:"min=0"`
	Feedback string  `json:"feedback" validate:"max=10000"`
}

// GradeSubmission handles POST /api/v1/submissions/:id/grade
func (h *AssignmentHandler) GradeSubmission(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	submissionID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	var req GradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	err = h.assignmentService.GradeSubmission(c.Context(), userID, services.GradeSubmissionRequest{
		SubmissionID: submissionID,
		Grade:        req.Grade,
		Feedback:     validation.SanitizeString(req.Feedback),
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.SuccessWithMessage(c, "Submission graded", nil)
}

// GetSubmissions handles GET /api/v1/assignments/:id/submissions
func (h *AssignmentHandler) GetSubmissions(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	assignmentID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	submissions, err := h.assignmentService.GetSubmissions(c.Context(), userID, assignmentID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, submissions)
}
