package course

import (
	"strconv"

	"github.com/classpoint/classpoint/handlers"
	"github.com/classpoint/classpoint/model"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/classpoint/classpoint/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course and enrollment endpoints
type CourseHandler struct {
	courseService *services.CourseService
	validator     *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validator:     validation.NewValidator(),
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
	Code        string `json:"code" validate:"required,max=32"`
	Credits     int    `json:"credits" validate:"min=0,max=30"`
	Semester    string `json:"semester" validate:"max=32"`
	Year        int    `json:"year" validate:"omitempty,min=2000,max=2100"`
	MaxStudents *int   `json:"max_students" validate:"omitempty,min=1"`
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	course, err := h.courseService.CreateCourse(c.Context(), userID, services.CreateCourseRequest{
		Title:       validation.SanitizeString(req.Title),
		Description: validation.SanitizeString(req.Description),
		Code:        validation.SanitizeString(req.Code),
		Credits:     req.Credits,
		Semester:    validation.SanitizeString(req.Semester),
		Year:        req.Year,
		MaxStudents: req.MaxStudents,
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, course)
}

// GetCourses handles GET /api/v1/courses. Unauthenticated callers get an
// empty list rather than an error.
func (h *CourseHandler) GetCourses(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Success(c, []model.Course{})
	}

	courses, err := h.courseService.GetCourses(c.Context(), userID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, courses)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	course, err := h.courseService.GetCourse(c.Context(), userID, courseID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, course)
}

// GetAvailableCourses handles GET /api/v1/courses/available. Only
// students see offerings; everyone else gets an empty list.
func (h *CourseHandler) GetAvailableCourses(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Success(c, []model.Course{})
	}

	courses, err := h.courseService.GetAvailableCourses(c.Context(), userID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, courses)
}

// Enroll handles POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	enrollment, err := h.courseService.EnrollInCourse(c.Context(), userID, courseID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, enrollment)
}
