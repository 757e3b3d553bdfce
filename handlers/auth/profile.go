package auth

import (
	"github.com/classpoint/classpoint/handlers"
	"github.com/classpoint/classpoint/model"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/classpoint/classpoint/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// CreateProfileRequest represents a profile creation request
type CreateProfileRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Role        string `json:"role" validate:"required,oneof=admin instructor student"`
	Bio         string `json:"bio" validate:"max=2000"`
	Department  string `json:"department" validate:"max=255"`
	PhoneNumber string `json:"phone_number" validate:"max=32"`
}

// CreateProfile creates the authenticated user's profile. The role is
// fixed at creation time.
func (h *AuthHandler) CreateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	profile, err := h.identityService.CreateProfile(c.Context(), userID, services.CreateProfileRequest{
		FirstName:   validation.SanitizeString(req.FirstName),
		LastName:    validation.SanitizeString(req.LastName),
		Role:        model.Role(req.Role),
		Bio:         validation.SanitizeString(req.Bio),
		Department:  validation.SanitizeString(req.Department),
		PhoneNumber: validation.SanitizeString(req.PhoneNumber),
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Created(c, profile)
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`
	Department  *string `json:"department" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	AvatarKey   *string `json:"avatar_key" validate:"omitempty,max=512"`
}

// UpdateProfile patches the authenticated user's profile. The role
// cannot be changed here.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	profile, err := h.identityService.UpdateProfile(c.Context(), userID, services.UpdateProfileRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Department:  req.Department,
		PhoneNumber: req.PhoneNumber,
		AvatarKey:   req.AvatarKey,
	})
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Success(c, profile)
}
