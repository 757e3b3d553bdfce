package model

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a user's role in the system
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// IsStaff reports whether the role is instructor or admin.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleInstructor
}

// Profile holds role and personal attributes for a user. Exactly one
// profile exists per user; the role is assigned when the profile is
// created and is never updated afterwards.
type Profile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Role        Role           `gorm:"type:varchar(20);not null" json:"role"`
	FirstName   string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string         `gorm:"type:varchar(100);not null" json:"last_name"`
	Bio         string         `gorm:"type:text" json:"bio,omitempty"`
	Department  string         `gorm:"type:varchar(100)" json:"department,omitempty"`
	PhoneNumber string         `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	AvatarKey   string         `gorm:"type:varchar(255)" json:"avatar_key,omitempty"` // object storage key

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
