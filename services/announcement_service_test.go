package services

import (
	"context"
	"errors"
	"testing"

	"github.com/classpoint/classpoint/model"
)

func TestCreateAnnouncementFanOut(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewAnnouncementService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	course := createTestCourse(t, db, instructor.ID, nil)

	enrolled := createTestUser(t, db, model.RoleStudent)
	enrollStudent(t, db, course.ID, enrolled.ID)
	outsider := createTestUser(t, db, model.RoleStudent)

	_, err := svc.CreateAnnouncement(ctx, instructor.ID, CreateAnnouncementRequest{
		CourseID: course.ID,
		Title:    "Midterm moved",
		Content:  "The midterm is now on Thursday.",
	})
	if err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}

	if n := countNotifications(t, db, enrolled.ID, model.NotificationCourseAnnouncement); n != 1 {
		t.Errorf("enrolled student should be notified, got %d", n)
	}
	if n := countNotifications(t, db, outsider.ID, model.NotificationCourseAnnouncement); n != 0 {
		t.Errorf("outsider should not be notified, got %d", n)
	}
}

func TestCreateAnnouncementOwnershipRequired(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewAnnouncementService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	other := createTestUser(t, db, model.RoleInstructor)
	course := createTestCourse(t, db, instructor.ID, nil)

	_, err := svc.CreateAnnouncement(ctx, other.ID, CreateAnnouncementRequest{
		CourseID: course.ID,
		Title:    "Not my course",
		Content:  "...",
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}

func TestGetAnnouncementsOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewAnnouncementService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	course := createTestCourse(t, db, instructor.ID, nil)

	if _, err := svc.CreateAnnouncement(ctx, instructor.ID, CreateAnnouncementRequest{
		CourseID: course.ID,
		Title:    "older",
		Content:  "...",
	}); err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}
	if _, err := svc.CreateAnnouncement(ctx, instructor.ID, CreateAnnouncementRequest{
		CourseID: course.ID,
		Title:    "pinned",
		Content:  "...",
		IsPinned: true,
	}); err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}
	if _, err := svc.CreateAnnouncement(ctx, instructor.ID, CreateAnnouncementRequest{
		CourseID: course.ID,
		Title:    "newest",
		Content:  "...",
	}); err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}

	list, err := svc.GetAnnouncements(ctx, instructor.ID, course.ID)
	if err != nil {
		t.Fatalf("GetAnnouncements failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 announcements, got %d", len(list))
	}
	if list[0].Title != "pinned" {
		t.Errorf("pinned announcement should sort first, got %q", list[0].Title)
	}
	if list[1].Title != "newest" {
		t.Errorf("newest should follow pinned, got %q", list[1].Title)
	}
}
