package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/classpoint/classpoint/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens the integration test database and resets every
// table. Tests skip unless RUN_INTEGRATION_TESTS=true and
// TEST_DATABASE_DSN point at a throwaway Postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Course{},
		&model.Enrollment{},
		&model.Assignment{},
		&model.Submission{},
		&model.Discussion{},
		&model.DiscussionPost{},
		&model.Message{},
		&model.Notification{},
		&model.Announcement{},
		&model.CronJobLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	tables := []string{
		"notifications", "announcements", "messages",
		"discussion_posts", "discussions",
		"submissions", "assignments",
		"enrollments", "courses",
		"profiles", "users",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}

	return db
}

var testUserSeq int

// createTestUser inserts a user with a profile in the given role
func createTestUser(t *testing.T, db *gorm.DB, role model.Role) *model.User {
	t.Helper()

	testUserSeq++
	user := &model.User{
		Email:        fmt.Sprintf("user%d@example.com", testUserSeq),
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	profile := &model.Profile{
		UserID:    user.ID,
		Role:      role,
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", testUserSeq),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	user.Profile = profile

	return user
}

// createTestCourse inserts an active course owned by the instructor
func createTestCourse(t *testing.T, db *gorm.DB, instructorID uint, maxStudents *int) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:        "Intro to Databases",
		Code:         "CS305",
		InstructorID: instructorID,
		Credits:      4,
		Semester:     "Fall",
		Year:         2026,
		IsActive:     true,
		MaxStudents:  maxStudents,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

// enrollStudent inserts an active enrollment directly
func enrollStudent(t *testing.T, db *gorm.DB, courseID, studentID uint) *model.Enrollment {
	t.Helper()

	enrollment := &model.Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		Status:     model.EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("failed to create enrollment: %v", err)
	}
	return enrollment
}

func countNotifications(t *testing.T, db *gorm.DB, userID uint, nType model.NotificationType) int64 {
	t.Helper()

	var count int64
	err := db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", userID, nType).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
