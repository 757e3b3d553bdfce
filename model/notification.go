package model

import (
	"time"
)

// NotificationType classifies what produced a notification
type NotificationType string

const (
	NotificationAssignmentDue       NotificationType = "assignment_due"
	NotificationAssignmentGraded    NotificationType = "assignment_graded"
	NotificationNewMessage          NotificationType = "new_message"
	NotificationDiscussionReply     NotificationType = "discussion_reply"
	NotificationCourseAnnouncement  NotificationType = "course_announcement"
	NotificationEnrollmentConfirmed NotificationType = "enrollment_confirmed"
)

// Notification is an entry in a user's append-only inbox. The only
// mutation ever applied after creation is flipping IsRead.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	RelatedID string           `gorm:"type:varchar(64)" json:"related_id,omitempty"` // id of the related entity
	ActionURL string           `gorm:"type:varchar(2048)" json:"action_url,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
