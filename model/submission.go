package model

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionStatus represents the grading state of a submission.
// "returned" is declared for parity with the product data model but no
// operation currently transitions into it.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionReturned  SubmissionStatus = "returned"
)

// Submission is a student's answer to an assignment. One row exists per
// (assignment, student); resubmitting overwrites the row in place and
// forces the status back to submitted. Grade fields from a previous
// grading pass are deliberately left in place on resubmit; see the
// grading tests for the pinned behavior.
type Submission struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	AssignmentID uint             `gorm:"not null;uniqueIndex:idx_assignment_student" json:"assignment_id"`
	StudentID    uint             `gorm:"not null;uniqueIndex:idx_assignment_student;index" json:"student_id"`
	SubmittedAt  time.Time        `gorm:"not null" json:"submitted_at"`
	Content      string           `gorm:"type:text" json:"content,omitempty"`
	URL          string           `gorm:"type:varchar(2048)" json:"url,omitempty"`
	Attachments  datatypes.JSON   `gorm:"type:jsonb" json:"attachments,omitempty"` // array of storage keys
	Status       SubmissionStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	Grade        *float64         `json:"grade,omitempty"`
	Feedback     string           `gorm:"type:text" json:"feedback,omitempty"`
	GradedAt     *time.Time       `json:"graded_at,omitempty"`
	GradedBy     *uint            `json:"graded_by,omitempty"`

	// Relationships
	Assignment Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	Student    User       `gorm:"foreignKey:StudentID" json:"-"`
}
