package model

import (
	"time"

	"gorm.io/gorm"
)

// Discussion is a course-scoped thread of posts
type Discussion struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID    uint           `gorm:"not null;index" json:"course_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	IsPinned    bool           `gorm:"default:false" json:"is_pinned"`
	IsLocked    bool           `gorm:"default:false" json:"is_locked"`

	// Relationships
	Course Course           `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Posts  []DiscussionPost `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"-"`
}

// DiscussionPost is a post or nested reply within a discussion. A reply's
// parent must belong to the same discussion.
type DiscussionPost struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DiscussionID uint       `gorm:"not null;index" json:"discussion_id"`
	AuthorID     uint       `gorm:"not null" json:"author_id"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	ParentPostID *uint      `gorm:"index" json:"parent_post_id,omitempty"`
	IsEdited     bool       `gorm:"default:false" json:"is_edited"`
	EditedAt     *time.Time `json:"edited_at,omitempty"`

	// Relationships
	Discussion Discussion      `gorm:"foreignKey:DiscussionID" json:"-"`
	Author     User            `gorm:"foreignKey:AuthorID" json:"-"`
	ParentPost *DiscussionPost `gorm:"foreignKey:ParentPostID" json:"-"`
}
