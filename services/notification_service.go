package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/classpoint/classpoint/model"
	"gorm.io/gorm"
)

// NotificationService manages the per-user notification feed. Other
// services append to the feed through PushNotification inside their own
// transactions; this service only serves the inbox itself.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// CreateNotificationRequest represents a request to append a notification
type CreateNotificationRequest struct {
	UserID    uint
	Type      model.NotificationType
	Title     string
	Message   string
	RelatedID string
	ActionURL string
}

// PushNotification appends a notification using the given db handle.
// Callers pass their transaction so the fan-out commits or rolls back
// together with the mutation that caused it.
func PushNotification(db *gorm.DB, req CreateNotificationRequest) error {
	notification := &model.Notification{
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		IsRead:    false,
		RelatedID: req.RelatedID,
		ActionURL: req.ActionURL,
	}

	if err := db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// List returns the latest 50 notifications for the user, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]model.Notification, error) {
	var notifications []model.Notification

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, nil
}

// MarkAsRead marks a notification as read. Recipient only.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uint) error {
	result := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead flips every unread notification for the user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// UnreadCount returns the count of unread notifications for a user
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// CleanupOldNotifications removes read notifications older than the
// specified duration. Called from the daily cron job.
func (s *NotificationService) CleanupOldNotifications(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result := s.db.WithContext(ctx).
		Where("created_at < ? AND is_read = ?", cutoff, true).
		Delete(&model.Notification{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to cleanup old notifications: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d old notifications", result.RowsAffected)
	}

	return result.RowsAffected, nil
}
