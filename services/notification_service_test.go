package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/classpoint/classpoint/model"
)

func pushTestNotification(t *testing.T, svc *NotificationService, userID uint, title string) {
	t.Helper()
	err := PushNotification(svc.db, CreateNotificationRequest{
		UserID:  userID,
		Type:    model.NotificationCourseAnnouncement,
		Title:   title,
		Message: "body",
	})
	if err != nil {
		t.Fatalf("PushNotification failed: %v", err)
	}
}

func TestNotificationListCap(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewNotificationService(db)
	user := createTestUser(t, db, model.RoleStudent)

	for i := 0; i < 60; i++ {
		pushTestNotification(t, svc, user.ID, fmt.Sprintf("n%d", i))
	}

	list, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 50 {
		t.Fatalf("expected the latest 50 notifications, got %d", len(list))
	}
	// Newest first.
	if list[0].CreatedAt.Before(list[len(list)-1].CreatedAt) {
		t.Error("notifications should be ordered newest first")
	}
}

func TestMarkAsReadOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewNotificationService(db)
	owner := createTestUser(t, db, model.RoleStudent)
	other := createTestUser(t, db, model.RoleStudent)

	pushTestNotification(t, svc, owner.ID, "yours")

	var n model.Notification
	if err := db.Where("user_id = ?", owner.ID).First(&n).Error; err != nil {
		t.Fatalf("failed to load notification: %v", err)
	}

	// Someone else's id behaves like a missing record.
	if err := svc.MarkAsRead(ctx, n.ID, other.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound for other user, got %v", err)
	}

	if err := svc.MarkAsRead(ctx, n.ID, owner.ID); err != nil {
		t.Fatalf("MarkAsRead failed: %v", err)
	}

	count, err := svc.UnreadCount(ctx, owner.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}
}

func TestMarkAllAsRead(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewNotificationService(db)
	user := createTestUser(t, db, model.RoleStudent)
	bystander := createTestUser(t, db, model.RoleStudent)

	for i := 0; i < 5; i++ {
		pushTestNotification(t, svc, user.ID, fmt.Sprintf("n%d", i))
	}
	pushTestNotification(t, svc, bystander.ID, "other")

	flipped, err := svc.MarkAllAsRead(ctx, user.ID)
	if err != nil {
		t.Fatalf("MarkAllAsRead failed: %v", err)
	}
	if flipped != 5 {
		t.Errorf("expected 5 flipped, got %d", flipped)
	}

	count, err := svc.UnreadCount(ctx, user.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread after MarkAllAsRead, got %d", count)
	}

	// The bystander is untouched.
	otherCount, err := svc.UnreadCount(ctx, bystander.ID)
	if err != nil {
		t.Fatalf("UnreadCount(bystander) failed: %v", err)
	}
	if otherCount != 1 {
		t.Errorf("bystander should keep 1 unread, got %d", otherCount)
	}
}

func TestCleanupOldNotifications(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewNotificationService(db)
	user := createTestUser(t, db, model.RoleStudent)

	pushTestNotification(t, svc, user.ID, "old-read")
	pushTestNotification(t, svc, user.ID, "old-unread")
	pushTestNotification(t, svc, user.ID, "fresh")

	old := time.Now().Add(-120 * 24 * time.Hour)
	if err := db.Model(&model.Notification{}).
		Where("title IN ?", []string{"old-read", "old-unread"}).
		Update("created_at", old).Error; err != nil {
		t.Fatalf("failed to age notifications: %v", err)
	}
	if err := db.Model(&model.Notification{}).
		Where("title = ?", "old-read").
		Update("is_read", true).Error; err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}

	deleted, err := svc.CleanupOldNotifications(ctx, 90*24*time.Hour)
	if err != nil {
		t.Fatalf("CleanupOldNotifications failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected only the old read notification purged, got %d", deleted)
	}

	var remaining int64
	if err := db.Model(&model.Notification{}).Where("user_id = ?", user.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	if remaining != 2 {
		t.Errorf("expected 2 notifications left, got %d", remaining)
	}
}
