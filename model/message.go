package model

import (
	"time"
)

// Message is a direct message between two users. Messages are grouped
// into conversations by ThreadID; when the sender does not supply one, a
// fresh opaque id is generated.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Subject     string    `gorm:"type:varchar(255)" json:"subject"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	ThreadID    string    `gorm:"type:varchar(64);not null;index" json:"thread_id"`

	// Relationships
	Sender    User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
