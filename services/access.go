package services

import (
	"errors"
	"fmt"

	"github.com/classpoint/classpoint/model"
	"gorm.io/gorm"
)

// ensureCourseAccess enforces the shared visibility rule for everything
// that hangs off a course: admins see all, instructors see their own
// courses, students need an active enrollment.
func ensureCourseAccess(db *gorm.DB, profile *model.Profile, course *model.Course) error {
	switch profile.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleInstructor:
		if course.InstructorID != profile.UserID {
			return ErrAccessDenied
		}
		return nil
	default:
		var enrollment model.Enrollment
		err := db.Where("course_id = ? AND student_id = ? AND status = ?",
			course.ID, profile.UserID, model.EnrollmentActive).
			First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		return nil
	}
}

// ensureCourseOwnership enforces the mutation rule for course-owned
// entities: only the owning instructor or an admin may act.
func ensureCourseOwnership(profile *model.Profile, course *model.Course) error {
	if profile.Role == model.RoleAdmin {
		return nil
	}
	if profile.Role == model.RoleInstructor && course.InstructorID == profile.UserID {
		return nil
	}
	return ErrAccessDenied
}
