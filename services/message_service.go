package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/classpoint/classpoint/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageService handles direct messages between users, grouped into
// threads by a shared thread id.
type MessageService struct {
	db *gorm.DB
}

// NewMessageService creates a new message service
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// SendMessageRequest represents a direct message
type SendMessageRequest struct {
	RecipientID uint
	Subject     string
	Content     string
	ThreadID    string
}

// SendMessage delivers a message to the recipient and notifies them in
// the same transaction. An empty thread id starts a new thread.
func (s *MessageService) SendMessage(ctx context.Context, senderID uint, req SendMessageRequest) (*model.Message, error) {
	db := s.db.WithContext(ctx)

	var recipient model.User
	if err := db.First(&recipient, req.RecipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to fetch recipient: %w", err)
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Content:     req.Content,
		ThreadID:    threadID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		return PushNotification(tx, CreateNotificationRequest{
			UserID:    req.RecipientID,
			Type:      model.NotificationNewMessage,
			Title:     "New Message",
			Message:   fmt.Sprintf("You have a new message: %s", req.Subject),
			RelatedID: strconv.FormatUint(uint64(message.ID), 10),
		})
	})
	if err != nil {
		return nil, err
	}

	return message, nil
}

// Thread groups the messages of one conversation, newest thread first in
// listings but chronological within.
type Thread struct {
	ThreadID string          `json:"thread_id"`
	Messages []model.Message `json:"messages"`
}

// GetThreads returns every thread the user participates in, as sender or
// recipient. Threads are ordered by their latest message, newest first;
// messages within a thread run oldest to newest.
func (s *MessageService) GetThreads(ctx context.Context, userID uint) ([]Thread, error) {
	db := s.db.WithContext(ctx)

	var messages []model.Message
	if err := db.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Preload("Sender.Profile").
		Preload("Recipient.Profile").
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	byThread := make(map[string]int)
	threads := []Thread{}
	for _, msg := range messages {
		idx, ok := byThread[msg.ThreadID]
		if !ok {
			idx = len(threads)
			byThread[msg.ThreadID] = idx
			threads = append(threads, Thread{ThreadID: msg.ThreadID})
		}
		threads[idx].Messages = append(threads[idx].Messages, msg)
	}

	// Newest activity first. Messages arrive in ascending order, so the
	// last message of each thread is its latest.
	sort.Slice(threads, func(i, j int) bool {
		li := threads[i].Messages[len(threads[i].Messages)-1].CreatedAt
		lj := threads[j].Messages[len(threads[j].Messages)-1].CreatedAt
		return li.After(lj)
	})

	return threads, nil
}

// GetThread returns one thread's messages in chronological order. Only a
// participant may read it.
func (s *MessageService) GetThread(ctx context.Context, userID uint, threadID string) ([]model.Message, error) {
	db := s.db.WithContext(ctx)

	var messages []model.Message
	if err := db.Where("thread_id = ?", threadID).
		Preload("Sender.Profile").
		Preload("Recipient.Profile").
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}

	// An unknown thread id is indistinguishable from one the caller
	// has no part in.
	participant := false
	for _, msg := range messages {
		if msg.SenderID == userID || msg.RecipientID == userID {
			participant = true
			break
		}
	}
	if !participant {
		return nil, ErrAccessDenied
	}

	return messages, nil
}

// MarkAsRead flags a message read. Only the recipient may do this.
func (s *MessageService) MarkAsRead(ctx context.Context, userID, messageID uint) error {
	db := s.db.WithContext(ctx)

	var message model.Message
	if err := db.First(&message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to fetch message: %w", err)
	}

	if message.RecipientID != userID {
		return ErrNotMessageRecipient
	}

	if err := db.Model(&message).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark message as read: %w", err)
	}

	return nil
}
