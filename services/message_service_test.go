package services

import (
	"context"
	"errors"
	"testing"

	"github.com/classpoint/classpoint/model"
)

func TestSendMessageRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewMessageService(db)
	alice := createTestUser(t, db, model.RoleStudent)
	bob := createTestUser(t, db, model.RoleInstructor)

	first, err := svc.SendMessage(ctx, alice.ID, SendMessageRequest{
		RecipientID: bob.ID,
		Subject:     "Question about grading",
		Content:     "Hi, when will grades be out?",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if first.ThreadID == "" {
		t.Fatal("a new message must get a thread id")
	}

	// Reply in the same thread.
	reply, err := svc.SendMessage(ctx, bob.ID, SendMessageRequest{
		RecipientID: alice.ID,
		Subject:     "Re: Question about grading",
		Content:     "By Friday.",
		ThreadID:    first.ThreadID,
	})
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if reply.ThreadID != first.ThreadID {
		t.Errorf("reply should stay in thread %s, got %s", first.ThreadID, reply.ThreadID)
	}

	thread, err := svc.GetThread(ctx, alice.ID, first.ThreadID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if len(thread) != 2 {
		t.Fatalf("expected 2 messages in thread, got %d", len(thread))
	}
	if thread[0].ID != first.ID {
		t.Errorf("thread must be chronological, first message id %d", thread[0].ID)
	}

	// The recipient was notified for each message.
	if n := countNotifications(t, db, bob.ID, model.NotificationNewMessage); n != 1 {
		t.Errorf("expected 1 notification for bob, got %d", n)
	}
	if n := countNotifications(t, db, alice.ID, model.NotificationNewMessage); n != 1 {
		t.Errorf("expected 1 notification for alice, got %d", n)
	}
}

func TestGetThreadDeniesThirdParty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewMessageService(db)
	alice := createTestUser(t, db, model.RoleStudent)
	bob := createTestUser(t, db, model.RoleStudent)
	eve := createTestUser(t, db, model.RoleStudent)

	msg, err := svc.SendMessage(ctx, alice.ID, SendMessageRequest{
		RecipientID: bob.ID,
		Content:     "private",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if _, err := svc.GetThread(ctx, eve.ID, msg.ThreadID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for third party, got %v", err)
	}

	// A thread id with no messages is denied the same way.
	if _, err := svc.GetThread(ctx, alice.ID, "no-such-thread"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for empty thread, got %v", err)
	}
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewMessageService(db)
	alice := createTestUser(t, db, model.RoleStudent)

	_, err := svc.SendMessage(ctx, alice.ID, SendMessageRequest{
		RecipientID: 999999,
		Content:     "hello?",
	})
	if !errors.Is(err, ErrRecipientNotFound) {
		t.Errorf("expected ErrRecipientNotFound, got %v", err)
	}
}

func TestMarkMessageAsRead(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewMessageService(db)
	alice := createTestUser(t, db, model.RoleStudent)
	bob := createTestUser(t, db, model.RoleStudent)

	msg, err := svc.SendMessage(ctx, alice.ID, SendMessageRequest{
		RecipientID: bob.ID,
		Content:     "ping",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// The sender cannot mark their own outgoing message read.
	if err := svc.MarkAsRead(ctx, alice.ID, msg.ID); !errors.Is(err, ErrNotMessageRecipient) {
		t.Errorf("expected ErrNotMessageRecipient for sender, got %v", err)
	}

	if err := svc.MarkAsRead(ctx, bob.ID, msg.ID); err != nil {
		t.Fatalf("MarkAsRead failed: %v", err)
	}

	var stored model.Message
	if err := db.First(&stored, msg.ID).Error; err != nil {
		t.Fatalf("failed to reload message: %v", err)
	}
	if !stored.IsRead {
		t.Error("message should be marked read")
	}
}

func TestGetThreadsGrouping(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewMessageService(db)
	alice := createTestUser(t, db, model.RoleStudent)
	bob := createTestUser(t, db, model.RoleStudent)
	carol := createTestUser(t, db, model.RoleStudent)

	toBob, err := svc.SendMessage(ctx, alice.ID, SendMessageRequest{
		RecipientID: bob.ID,
		Content:     "hi bob",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := svc.SendMessage(ctx, bob.ID, SendMessageRequest{
		RecipientID: alice.ID,
		Content:     "hi alice",
		ThreadID:    toBob.ThreadID,
	}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := svc.SendMessage(ctx, alice.ID, SendMessageRequest{
		RecipientID: carol.ID,
		Content:     "hi carol",
	}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	threads, err := svc.GetThreads(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetThreads failed: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads for alice, got %d", len(threads))
	}

	// Carol's thread has the latest activity and sorts first.
	if len(threads[0].Messages) != 1 || threads[0].Messages[0].Content != "hi carol" {
		t.Errorf("newest thread should come first")
	}
	if len(threads[1].Messages) != 2 {
		t.Errorf("bob thread should hold both messages, got %d", len(threads[1].Messages))
	}

	// Carol sees only her own thread.
	carolThreads, err := svc.GetThreads(ctx, carol.ID)
	if err != nil {
		t.Fatalf("GetThreads(carol) failed: %v", err)
	}
	if len(carolThreads) != 1 {
		t.Errorf("expected 1 thread for carol, got %d", len(carolThreads))
	}
}
