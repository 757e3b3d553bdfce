package model

import (
	"time"
)

// EnrollmentStatus represents the lifecycle state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Enrollment links a student to a course. At most one enrollment record
// exists per (course, student), whatever its status; a dropped student
// does not get a fresh record by re-enrolling.
type Enrollment struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	CourseID   uint             `gorm:"not null;uniqueIndex:idx_course_student" json:"course_id"`
	StudentID  uint             `gorm:"not null;uniqueIndex:idx_course_student;index" json:"student_id"`
	Status     EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	EnrolledAt time.Time        `gorm:"not null" json:"enrolled_at"`
	Grade      *string          `gorm:"type:varchar(5)" json:"grade,omitempty"` // final letter grade

	// Relationships
	Course  Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Student User   `gorm:"foreignKey:StudentID" json:"-"`
}
