package services

import (
	"context"
	"errors"
	"testing"

	"github.com/classpoint/classpoint/model"
)

func TestCreateDiscussionRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewDiscussionService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	other := createTestUser(t, db, model.RoleInstructor)
	student := createTestUser(t, db, model.RoleStudent)
	admin := createTestUser(t, db, model.RoleAdmin)
	course := createTestCourse(t, db, instructor.ID, nil)
	enrollStudent(t, db, course.ID, student.ID)

	// An enrolled student cannot create boards, only post in them.
	_, err := svc.CreateDiscussion(ctx, student.ID, CreateDiscussionRequest{
		CourseID: course.ID,
		Title:    "Study Group",
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for enrolled student, got %v", err)
	}

	// Neither can an instructor who does not own the course.
	_, err = svc.CreateDiscussion(ctx, other.ID, CreateDiscussionRequest{
		CourseID: course.ID,
		Title:    "Drive-by",
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for non-owning instructor, got %v", err)
	}

	// Admins may create boards in any course.
	if _, err := svc.CreateDiscussion(ctx, admin.ID, CreateDiscussionRequest{
		CourseID: course.ID,
		Title:    "Course Policies",
		IsPinned: true,
	}); err != nil {
		t.Fatalf("admin CreateDiscussion failed: %v", err)
	}
}

func TestCreatePostLockedDiscussion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewDiscussionService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	student := createTestUser(t, db, model.RoleStudent)
	course := createTestCourse(t, db, instructor.ID, nil)
	enrollStudent(t, db, course.ID, student.ID)

	discussion, err := svc.CreateDiscussion(ctx, instructor.ID, CreateDiscussionRequest{
		CourseID: course.ID,
		Title:    "Week 1 Questions",
	})
	if err != nil {
		t.Fatalf("CreateDiscussion failed: %v", err)
	}

	if err := db.Model(discussion).Update("is_locked", true).Error; err != nil {
		t.Fatalf("failed to lock discussion: %v", err)
	}

	_, err = svc.CreatePost(ctx, student.ID, CreatePostRequest{
		DiscussionID: discussion.ID,
		Content:      "too late",
	})
	if !errors.Is(err, ErrDiscussionLocked) {
		t.Errorf("expected ErrDiscussionLocked, got %v", err)
	}
}

func TestCreatePostParentValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewDiscussionService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	student := createTestUser(t, db, model.RoleStudent)
	course := createTestCourse(t, db, instructor.ID, nil)
	enrollStudent(t, db, course.ID, student.ID)

	first, err := svc.CreateDiscussion(ctx, instructor.ID, CreateDiscussionRequest{
		CourseID: course.ID,
		Title:    "Thread A",
	})
	if err != nil {
		t.Fatalf("CreateDiscussion failed: %v", err)
	}
	second, err := svc.CreateDiscussion(ctx, instructor.ID, CreateDiscussionRequest{
		CourseID: course.ID,
		Title:    "Thread B",
	})
	if err != nil {
		t.Fatalf("CreateDiscussion failed: %v", err)
	}

	root, err := svc.CreatePost(ctx, instructor.ID, CreatePostRequest{
		DiscussionID: first.ID,
		Content:      "root post",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// A parent from another discussion is rejected.
	_, err = svc.CreatePost(ctx, student.ID, CreatePostRequest{
		DiscussionID: second.ID,
		Content:      "cross-thread reply",
		ParentPostID: &root.ID,
	})
	if !errors.Is(err, ErrParentPostInvalid) {
		t.Fatalf("expected ErrParentPostInvalid, got %v", err)
	}

	// A proper reply works and notifies the parent author.
	reply, err := svc.CreatePost(ctx, student.ID, CreatePostRequest{
		DiscussionID: first.ID,
		Content:      "real reply",
		ParentPostID: &root.ID,
	})
	if err != nil {
		t.Fatalf("CreatePost reply failed: %v", err)
	}
	if reply.ParentPostID == nil || *reply.ParentPostID != root.ID {
		t.Errorf("reply should reference its parent")
	}

	if n := countNotifications(t, db, instructor.ID, model.NotificationDiscussionReply); n != 1 {
		t.Errorf("expected 1 reply notification, got %d", n)
	}
}

func TestCreatePostSelfReplyNoNotification(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewDiscussionService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	course := createTestCourse(t, db, instructor.ID, nil)

	discussion, err := svc.CreateDiscussion(ctx, instructor.ID, CreateDiscussionRequest{
		CourseID: course.ID,
		Title:    "Notes",
	})
	if err != nil {
		t.Fatalf("CreateDiscussion failed: %v", err)
	}

	root, err := svc.CreatePost(ctx, instructor.ID, CreatePostRequest{
		DiscussionID: discussion.ID,
		Content:      "first",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if _, err := svc.CreatePost(ctx, instructor.ID, CreatePostRequest{
		DiscussionID: discussion.ID,
		Content:      "follow-up to myself",
		ParentPostID: &root.ID,
	}); err != nil {
		t.Fatalf("self reply failed: %v", err)
	}

	if n := countNotifications(t, db, instructor.ID, model.NotificationDiscussionReply); n != 0 {
		t.Errorf("self replies should not notify, got %d", n)
	}
}

func TestGetPostsRequiresCourseAccess(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewDiscussionService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	outsider := createTestUser(t, db, model.RoleStudent)
	course := createTestCourse(t, db, instructor.ID, nil)

	discussion, err := svc.CreateDiscussion(ctx, instructor.ID, CreateDiscussionRequest{
		CourseID: course.ID,
		Title:    "Private",
	})
	if err != nil {
		t.Fatalf("CreateDiscussion failed: %v", err)
	}

	if _, err := svc.GetPosts(ctx, outsider.ID, discussion.ID); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled for outsider, got %v", err)
	}
}
