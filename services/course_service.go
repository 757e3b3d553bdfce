package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/classpoint/classpoint/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseService implements the course registry and the enrollment ledger.
type CourseService struct {
	db *gorm.DB
}

// NewCourseService creates a new course service
func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Title       string
	Description string
	Code        string
	Credits     int
	Semester    string
	Year        int
	MaxStudents *int
}

// CreateCourse creates a course owned by the caller. Instructors and
// admins only. Course codes are a naming convention, not a server-side
// uniqueness constraint.
func (s *CourseService) CreateCourse(ctx context.Context, actorID uint, req CreateCourseRequest) (*model.Course, error) {
	profile, err := resolveProfile(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}
	if !profile.Role.IsStaff() {
		return nil, ErrAccessDenied
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Code:         req.Code,
		InstructorID: actorID,
		Credits:      req.Credits,
		Semester:     req.Semester,
		Year:         req.Year,
		IsActive:     true,
		MaxStudents:  req.MaxStudents,
	}

	if err := s.db.WithContext(ctx).Create(course).Error; err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return course, nil
}

// GetCourses returns the courses visible to the caller: all for admins,
// owned for instructors, actively-enrolled for students. A caller
// without a profile gets an empty list, never an error.
func (s *CourseService) GetCourses(ctx context.Context, actorID uint) ([]model.Course, error) {
	db := s.db.WithContext(ctx)

	profile, err := resolveProfile(db, actorID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return []model.Course{}, nil
		}
		return nil, err
	}

	var courses []model.Course
	switch profile.Role {
	case model.RoleAdmin:
		err = db.Find(&courses).Error
	case model.RoleInstructor:
		err = db.Where("instructor_id = ?", actorID).Find(&courses).Error
	default:
		err = db.
			Joins("JOIN enrollments ON enrollments.course_id = courses.id").
			Where("enrollments.student_id = ? AND enrollments.status = ?", actorID, model.EnrollmentActive).
			Find(&courses).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}

	return courses, nil
}

// GetCourse returns a single course. Admins and the owning instructor
// see it unconditionally; students need an active enrollment.
func (s *CourseService) GetCourse(ctx context.Context, actorID, courseID uint) (*model.Course, error) {
	db := s.db.WithContext(ctx)

	var course model.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}

	profile, err := resolveProfile(db, actorID)
	if err != nil {
		return nil, err
	}

	if err := ensureCourseAccess(db, profile, &course); err != nil {
		return nil, err
	}

	return &course, nil
}

// GetAvailableCourses returns active courses the student has no
// enrollment record for, in any status: a dropped student does not see
// the course offered again. Non-students get an empty list.
func (s *CourseService) GetAvailableCourses(ctx context.Context, actorID uint) ([]model.Course, error) {
	db := s.db.WithContext(ctx)

	profile, err := resolveProfile(db, actorID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return []model.Course{}, nil
		}
		return nil, err
	}
	if profile.Role != model.RoleStudent {
		return []model.Course{}, nil
	}

	var courses []model.Course
	err = db.
		Where("is_active = ?", true).
		Where("id NOT IN (?)",
			db.Model(&model.Enrollment{}).Select("course_id").Where("student_id = ?", actorID)).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available courses: %w", err)
	}

	return courses, nil
}

// EnrollInCourse enrolls the calling student. The course row is locked
// for the duration of the transaction so the capacity check and the
// insert are atomic; two racing enrollments cannot both pass the
// boundary check.
func (s *CourseService) EnrollInCourse(ctx context.Context, actorID, courseID uint) (*model.Enrollment, error) {
	profile, err := resolveProfile(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}
	if profile.Role != model.RoleStudent {
		return nil, ErrAccessDenied
	}

	var enrollment *model.Enrollment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course model.Course
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&course, courseID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotAvailable
		}
		if err != nil {
			return fmt.Errorf("failed to fetch course: %w", err)
		}
		if !course.IsActive {
			return ErrCourseNotAvailable
		}

		// An enrollment record in any status blocks re-enrollment.
		var existing model.Enrollment
		err = tx.Where("course_id = ? AND student_id = ?", courseID, actorID).First(&existing).Error
		if err == nil {
			return ErrAlreadyEnrolled
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}

		// Capacity counts active enrollments only.
		if course.MaxStudents != nil {
			var active int64
			if err := tx.Model(&model.Enrollment{}).
				Where("course_id = ? AND status = ?", courseID, model.EnrollmentActive).
				Count(&active).Error; err != nil {
				return fmt.Errorf("failed to count enrollments: %w", err)
			}
			if active >= int64(*course.MaxStudents) {
				return ErrCourseFull
			}
		}

		enrollment = &model.Enrollment{
			CourseID:   courseID,
			StudentID:  actorID,
			Status:     model.EnrollmentActive,
			EnrolledAt: time.Now(),
		}
		if err := tx.Create(enrollment).Error; err != nil {
			return fmt.Errorf("failed to create enrollment: %w", err)
		}

		return PushNotification(tx, CreateNotificationRequest{
			UserID:    actorID,
			Type:      model.NotificationEnrollmentConfirmed,
			Title:     "Enrollment Confirmed",
			Message:   fmt.Sprintf("You are now enrolled in %q.", course.Title),
			RelatedID: strconv.FormatUint(uint64(course.ID), 10),
		})
	})
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}
