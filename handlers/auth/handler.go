package auth

import (
	"time"

	"github.com/classpoint/classpoint/model"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/auth"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and token refresh
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *auth.JWTManager
	identityService      *services.IdentityService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, identityService *services.IdentityService, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		identityService:      identityService,
		bruteForceProtection: bruteForce,
		validator:            validation.NewValidator(),
	}
}

// ProfileResponse is the wire form of a user's profile
type ProfileResponse struct {
	Role        model.Role `json:"role"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Bio         string     `json:"bio,omitempty"`
	Department  string     `json:"department,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	AvatarKey   string     `json:"avatar_key,omitempty"`
}

// UserResponse is the wire form of a user account
type UserResponse struct {
	ID        uint             `json:"id"`
	Email     string           `json:"email"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func toUserResponse(user *model.User) UserResponse {
	res := UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Profile != nil {
		res.Profile = &ProfileResponse{
			Role:        user.Profile.Role,
			FirstName:   user.Profile.FirstName,
			LastName:    user.Profile.LastName,
			Bio:         user.Profile.Bio,
			Department:  user.Profile.Department,
			PhoneNumber: user.Profile.PhoneNumber,
			AvatarKey:   user.Profile.AvatarKey,
		}
	}
	return res
}
