package auth

import (
	"errors"

	"github.com/classpoint/classpoint/model"
	"github.com/classpoint/classpoint/utils/auth"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/classpoint/classpoint/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles user registration. A fresh account carries no
// profile; the role is assigned by a separate profile-creation step.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = validation.SanitizeString(req.Email)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if !auth.IsPasswordValid(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters long")
	}

	var existing model.User
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return response.Conflict(c, "Email is already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create account")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}
	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token")
	}

	return response.Created(c, fiber.Map{
		"user":          toUserResponse(&user),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
