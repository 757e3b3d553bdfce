package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionType is a kind of artifact an assignment accepts
type SubmissionType string

const (
	SubmissionTypeFile SubmissionType = "file"
	SubmissionTypeText SubmissionType = "text"
	SubmissionTypeURL  SubmissionType = "url"
)

// Assignment belongs to a course. It is invisible to students until
// published; publishing fans out one notification per active enrollee.
type Assignment struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID             uint           `gorm:"not null;index" json:"course_id"`
	Title                string         `gorm:"not null" json:"title"`
	Description          string         `gorm:"type:text" json:"description"`
	DueDate              time.Time      `gorm:"not null" json:"due_date"`
	MaxPoints            float64        `gorm:"not null" json:"max_points"`
	Instructions         string         `gorm:"type:text" json:"instructions,omitempty"`
	Attachments          datatypes.JSON `gorm:"type:jsonb" json:"attachments,omitempty"` // array of storage keys
	IsPublished          bool           `gorm:"default:false;index" json:"is_published"`
	AllowLateSubmissions bool           `gorm:"default:false" json:"allow_late_submissions"`
	SubmissionTypes      datatypes.JSON `gorm:"type:jsonb" json:"submission_types"` // array of SubmissionType

	// Relationships
	Course      Course       `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Submissions []Submission `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
}
