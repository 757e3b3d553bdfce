package model

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a course-wide notice from the instructor
type Announcement struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID  uint           `gorm:"not null;index" json:"course_id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	AuthorID  uint           `gorm:"not null" json:"author_id"`
	IsPinned  bool           `gorm:"default:false" json:"is_pinned"`

	// Relationships
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
	Author User   `gorm:"foreignKey:AuthorID" json:"-"`
}
