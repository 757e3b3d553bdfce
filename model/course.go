package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents a course taught by one instructor
type Course struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Code         string         `gorm:"index;not null" json:"code"` // e.g., "CS101"
	InstructorID uint           `gorm:"not null;index" json:"instructor_id"`
	Credits      int            `gorm:"default:0" json:"credits"`
	Semester     string         `gorm:"type:varchar(20);not null" json:"semester"` // e.g., "Fall"
	Year         int            `gorm:"not null" json:"year"`
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	MaxStudents  *int           `json:"max_students,omitempty"` // nil means unlimited

	// Relationships
	Instructor  User         `gorm:"foreignKey:InstructorID" json:"-"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Discussions []Discussion `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
