package services

import (
	"context"
	"errors"
	"testing"

	"github.com/classpoint/classpoint/model"
)

func TestEnrollInCourse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewCourseService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	student := createTestUser(t, db, model.RoleStudent)
	course := createTestCourse(t, db, instructor.ID, nil)

	enrollment, err := svc.EnrollInCourse(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("EnrollInCourse failed: %v", err)
	}
	if enrollment.Status != model.EnrollmentActive {
		t.Errorf("expected active enrollment, got %s", enrollment.Status)
	}

	if n := countNotifications(t, db, student.ID, model.NotificationEnrollmentConfirmed); n != 1 {
		t.Errorf("expected 1 enrollment notification, got %d", n)
	}

	// Second attempt must be rejected.
	if _, err := svc.EnrollInCourse(ctx, student.ID, course.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("expected ErrAlreadyEnrolled, got %v", err)
	}

	// A dropped enrollment still blocks re-enrollment.
	if err := db.Model(&model.Enrollment{}).Where("id = ?", enrollment.ID).
		Update("status", model.EnrollmentDropped).Error; err != nil {
		t.Fatalf("failed to drop enrollment: %v", err)
	}
	if _, err := svc.EnrollInCourse(ctx, student.ID, course.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("expected ErrAlreadyEnrolled after drop, got %v", err)
	}
}

func TestEnrollInCourseCapacity(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewCourseService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	one := 1
	course := createTestCourse(t, db, instructor.ID, &one)

	first := createTestUser(t, db, model.RoleStudent)
	second := createTestUser(t, db, model.RoleStudent)

	if _, err := svc.EnrollInCourse(ctx, first.ID, course.ID); err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}
	if _, err := svc.EnrollInCourse(ctx, second.ID, course.ID); !errors.Is(err, ErrCourseFull) {
		t.Fatalf("expected ErrCourseFull, got %v", err)
	}

	// Only active enrollments count toward capacity. Dropping the first
	// student frees the seat.
	if err := db.Model(&model.Enrollment{}).
		Where("course_id = ? AND student_id = ?", course.ID, first.ID).
		Update("status", model.EnrollmentDropped).Error; err != nil {
		t.Fatalf("failed to drop enrollment: %v", err)
	}
	if _, err := svc.EnrollInCourse(ctx, second.ID, course.ID); err != nil {
		t.Fatalf("enrollment after freed seat failed: %v", err)
	}
}

func TestEnrollInCourseRejectsNonStudents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewCourseService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	course := createTestCourse(t, db, instructor.ID, nil)

	if _, err := svc.EnrollInCourse(ctx, instructor.ID, course.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for instructor, got %v", err)
	}
}

func TestEnrollInCourseInactive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewCourseService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	student := createTestUser(t, db, model.RoleStudent)
	course := createTestCourse(t, db, instructor.ID, nil)

	if err := db.Model(course).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate course: %v", err)
	}

	if _, err := svc.EnrollInCourse(ctx, student.ID, course.ID); !errors.Is(err, ErrCourseNotAvailable) {
		t.Errorf("expected ErrCourseNotAvailable, got %v", err)
	}
}

func TestGetCoursesByRole(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewCourseService(db)
	admin := createTestUser(t, db, model.RoleAdmin)
	instructor := createTestUser(t, db, model.RoleInstructor)
	other := createTestUser(t, db, model.RoleInstructor)
	student := createTestUser(t, db, model.RoleStudent)

	owned := createTestCourse(t, db, instructor.ID, nil)
	createTestCourse(t, db, other.ID, nil)
	enrollStudent(t, db, owned.ID, student.ID)

	adminCourses, err := svc.GetCourses(ctx, admin.ID)
	if err != nil {
		t.Fatalf("GetCourses(admin) failed: %v", err)
	}
	if len(adminCourses) != 2 {
		t.Errorf("admin should see 2 courses, got %d", len(adminCourses))
	}

	instructorCourses, err := svc.GetCourses(ctx, instructor.ID)
	if err != nil {
		t.Fatalf("GetCourses(instructor) failed: %v", err)
	}
	if len(instructorCourses) != 1 || instructorCourses[0].ID != owned.ID {
		t.Errorf("instructor should see only their own course, got %d", len(instructorCourses))
	}

	studentCourses, err := svc.GetCourses(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetCourses(student) failed: %v", err)
	}
	if len(studentCourses) != 1 || studentCourses[0].ID != owned.ID {
		t.Errorf("student should see only enrolled courses, got %d", len(studentCourses))
	}
}

func TestGetAvailableCoursesExcludesAnyEnrollment(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewCourseService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	student := createTestUser(t, db, model.RoleStudent)

	enrolled := createTestCourse(t, db, instructor.ID, nil)
	open := createTestCourse(t, db, instructor.ID, nil)

	enrollment := enrollStudent(t, db, enrolled.ID, student.ID)

	available, err := svc.GetAvailableCourses(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetAvailableCourses failed: %v", err)
	}
	if len(available) != 1 || available[0].ID != open.ID {
		t.Fatalf("expected only the unenrolled course, got %d courses", len(available))
	}

	// Dropping does not bring the course back into the listing.
	if err := db.Model(enrollment).Update("status", model.EnrollmentDropped).Error; err != nil {
		t.Fatalf("failed to drop enrollment: %v", err)
	}
	available, err = svc.GetAvailableCourses(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetAvailableCourses after drop failed: %v", err)
	}
	if len(available) != 1 || available[0].ID != open.ID {
		t.Errorf("dropped course should stay hidden, got %d courses", len(available))
	}

	// Instructors do not get offerings.
	available, err = svc.GetAvailableCourses(ctx, instructor.ID)
	if err != nil {
		t.Fatalf("GetAvailableCourses(instructor) failed: %v", err)
	}
	if len(available) != 0 {
		t.Errorf("instructor should see no offerings, got %d", len(available))
	}
}

func TestGetCourseAccess(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewCourseService(db)
	instructor := createTestUser(t, db, model.RoleInstructor)
	enrolledStudent := createTestUser(t, db, model.RoleStudent)
	outsider := createTestUser(t, db, model.RoleStudent)
	course := createTestCourse(t, db, instructor.ID, nil)
	enrollStudent(t, db, course.ID, enrolledStudent.ID)

	if _, err := svc.GetCourse(ctx, enrolledStudent.ID, course.ID); err != nil {
		t.Errorf("enrolled student should see the course: %v", err)
	}
	if _, err := svc.GetCourse(ctx, outsider.ID, course.ID); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled for outsider, got %v", err)
	}
	if _, err := svc.GetCourse(ctx, instructor.ID, course.ID); err != nil {
		t.Errorf("owner should see the course: %v", err)
	}
}

func TestCreateCourseRequiresStaff(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := NewCourseService(db)
	student := createTestUser(t, db, model.RoleStudent)

	_, err := svc.CreateCourse(ctx, student.ID, CreateCourseRequest{
		Title: "Student Course",
		Code:  "X101",
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}
