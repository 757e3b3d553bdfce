package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/classpoint/classpoint/model"
	"gorm.io/gorm"
)

// IdentityService resolves authenticated principals to their profile and
// role. Every other service depends on this resolution; the profile is
// re-read from the database on each operation rather than trusted from
// the token.
type IdentityService struct {
	db *gorm.DB
}

// NewIdentityService creates a new identity service
func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// resolveProfile loads the profile for a user. Shared by all services.
func resolveProfile(db *gorm.DB, userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	return &profile, nil
}

// ResolveProfile returns the caller's profile, or ErrProfileNotFound.
func (s *IdentityService) ResolveProfile(ctx context.Context, userID uint) (*model.Profile, error) {
	return resolveProfile(s.db.WithContext(ctx), userID)
}

// CreateProfileRequest carries the attributes for a new profile. Role is
// set here, exactly once; there is no operation that changes it later.
type CreateProfileRequest struct {
	FirstName   string
	LastName    string
	Role        model.Role
	Bio         string
	Department  string
	PhoneNumber string
}

// CreateProfile creates the caller's profile. Fails when one exists.
func (s *IdentityService) CreateProfile(ctx context.Context, userID uint, req CreateProfileRequest) (*model.Profile, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	var existing model.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return nil, ErrProfileExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	profile := &model.Profile{
		UserID:      userID,
		Role:        req.Role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Department:  req.Department,
		PhoneNumber: req.PhoneNumber,
	}

	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// UpdateProfileRequest carries optional profile updates. The role is
// absent on purpose: role changes would be a separate, audited admin
// operation and no such operation exists.
type UpdateProfileRequest struct {
	FirstName   *string
	LastName    *string
	Bio         *string
	Department  *string
	PhoneNumber *string
	AvatarKey   *string
}

// UpdateProfile patches the caller's profile fields that are set.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*model.Profile, error) {
	profile, err := resolveProfile(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.AvatarKey != nil {
		updates["avatar_key"] = *req.AvatarKey
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return profile, nil
}

// GetCurrentUser returns the user with profile preloaded. A missing
// profile is not an error; the profile pointer is simply nil.
func (s *IdentityService) GetCurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Profile").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// ListUsers returns all users with profiles. Admin only.
func (s *IdentityService) ListUsers(ctx context.Context, actorID uint, limit, offset int) ([]model.User, int64, error) {
	profile, err := resolveProfile(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, 0, err
	}
	if profile.Role != model.RoleAdmin {
		return nil, 0, ErrAccessDenied
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	var users []model.User
	err = s.db.WithContext(ctx).Preload("Profile").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}
