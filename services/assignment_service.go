package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/classpoint/classpoint/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssignmentService implements the assignment/submission workflow:
// create, publish with notification fan-out, submission upsert, grading.
type AssignmentService struct {
	db *gorm.DB
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// CreateAssignmentRequest represents a request to create an assignment
type CreateAssignmentRequest struct {
	CourseID             uint
	Title                string
	Description          string
	DueDate              time.Time
	MaxPoints            float64
	Instructions         string
	Attachments          []string
	AllowLateSubmissions bool
	SubmissionTypes      []model.SubmissionType
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json column: %w", err)
	}
	return datatypes.JSON(data), nil
}

// CreateAssignment creates an unpublished assignment in a course the
// caller owns (or any course, for admins).
func (s *AssignmentService) CreateAssignment(ctx context.Context, actorID uint, req CreateAssignmentRequest) (*model.Assignment, error) {
	db := s.db.WithContext(ctx)

	var course model.Course
	if err := db.First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}

	profile, err := resolveProfile(db, actorID)
	if err != nil {
		return nil, err
	}
	if err := ensureCourseOwnership(profile, &course); err != nil {
		return nil, err
	}

	attachments, err := toJSON(req.Attachments)
	if err != nil {
		return nil, err
	}
	submissionTypes, err := toJSON(req.SubmissionTypes)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		CourseID:             req.CourseID,
		Title:                req.Title,
		Description:          req.Description,
		DueDate:              req.DueDate,
		MaxPoints:            req.MaxPoints,
		Instructions:         req.Instructions,
		Attachments:          attachments,
		IsPublished:          false,
		AllowLateSubmissions: req.AllowLateSubmissions,
		SubmissionTypes:      submissionTypes,
	}

	if err := db.Create(assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return assignment, nil
}

// PublishAssignment makes an assignment visible to students and fans out
// one assignment_due notification per actively-enrolled student, all in
// one transaction.
func (s *AssignmentService) PublishAssignment(ctx context.Context, actorID, assignmentID uint) error {
	db := s.db.WithContext(ctx)

	var assignment model.Assignment
	if err := db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}

	var course model.Course
	if err := db.First(&course, assignment.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to fetch course: %w", err)
	}

	profile, err := resolveProfile(db, actorID)
	if err != nil {
		return err
	}
	if err := ensureCourseOwnership(profile, &course); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&assignment).Update("is_published", true).Error; err != nil {
			return fmt.Errorf("failed to publish assignment: %w", err)
		}

		var enrollments []model.Enrollment
		if err := tx.Where("course_id = ? AND status = ?", course.ID, model.EnrollmentActive).
			Find(&enrollments).Error; err != nil {
			return fmt.Errorf("failed to fetch enrollments: %w", err)
		}

		for _, enrollment := range enrollments {
			err := PushNotification(tx, CreateNotificationRequest{
				UserID:    enrollment.StudentID,
				Type:      model.NotificationAssignmentDue,
				Title:     "New Assignment",
				Message:   fmt.Sprintf("New assignment %q is now available in %s.", assignment.Title, course.Title),
				RelatedID: strconv.FormatUint(uint64(assignment.ID), 10),
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// GetAssignments lists a course's assignments. Students see published
// ones only; the owning instructor and admins see all.
func (s *AssignmentService) GetAssignments(ctx context.Context, actorID, courseID uint) ([]model.Assignment, error) {
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

	query := db.Where("course_id = ?", courseID)
	if profile.Role == model.RoleStudent {
		query = query.Where("is_published = ?", true)
	}

	var assignments []model.Assignment
	if err := query.Order("due_date ASC").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	return assignments, nil
}

// SubmitAssignmentRequest represents a student submission
type SubmitAssignmentRequest struct {
	AssignmentID uint
	Content      string
	URL          string
	Attachments  []string
}

// SubmitAssignment upserts the student's submission. A resubmission
// overwrites content, url, attachments and timestamp in place and forces
// the status back to submitted. Grade fields from an earlier grading
// pass are intentionally not cleared.
func (s *AssignmentService) SubmitAssignment(ctx context.Context, actorID uint, req SubmitAssignmentRequest) (*model.Submission, error) {
	db := s.db.WithContext(ctx)

	var assignment model.Assignment
	if err := db.First(&assignment, req.AssignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}

	profile, err := resolveProfile(db, actorID)
	if err != nil {
		return nil, err
	}
	if profile.Role != model.RoleStudent {
		return nil, ErrAccessDenied
	}

	var enrollment model.Enrollment
	err = db.Where("course_id = ? AND student_id = ? AND status = ?",
		assignment.CourseID, actorID, model.EnrollmentActive).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	if !assignment.IsPublished {
		return nil, ErrAssignmentNotAvailable
	}

	attachments, err := toJSON(req.Attachments)
	if err != nil {
		return nil, err
	}

	var submission model.Submission
	err = db.Where("assignment_id = ? AND student_id = ?", req.AssignmentID, actorID).
		First(&submission).Error
	switch {
	case err == nil:
		// Overwrite in place; one row per (assignment, student).
		updates := map[string]interface{}{
			"content":      req.Content,
			"url":          req.URL,
			"attachments":  attachments,
			"submitted_at": time.Now(),
			"status":       model.SubmissionSubmitted,
		}
		if err := db.Model(&submission).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update submission: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = model.Submission{
			AssignmentID: req.AssignmentID,
			StudentID:    actorID,
			SubmittedAt:  time.Now(),
			Content:      req.Content,
			URL:          req.URL,
			Attachments:  attachments,
			Status:       model.SubmissionSubmitted,
		}
		if err := db.Create(&submission).Error; err != nil {
			return nil, fmt.Errorf("failed to create submission: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to check submission: %w", err)
	}

	return &submission, nil
}

// GradeSubmissionRequest represents a grading action
type GradeSubmissionRequest struct {
	SubmissionID uint
	Grade        float64
	Feedback     string
}

// GradeSubmission records grade and feedback, marks the submission
// graded and notifies the student, all in one transaction. Only the
// owning instructor or an admin may grade.
func (s *AssignmentService) GradeSubmission(ctx context.Context, actorID uint, req GradeSubmissionRequest) error {
	db := s.db.WithContext(ctx)

	var submission model.Submission
	if err := db.First(&submission, req.SubmissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("failed to fetch submission: %w", err)
	}

	var assignment model.Assignment
	if err := db.First(&assignment, submission.AssignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}

	var course model.Course
	if err := db.First(&course, assignment.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to fetch course: %w", err)
	}

	profile, err := resolveProfile(db, actorID)
	if err != nil {
		return err
	}
	if err := ensureCourseOwnership(profile, &course); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"grade":     req.Grade,
			"feedback":  req.Feedback,
			"graded_at": now,
			"graded_by": actorID,
			"status":    model.SubmissionGraded,
		}
		if err := tx.Model(&submission).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to grade submission: %w", err)
		}

		return PushNotification(tx, CreateNotificationRequest{
			UserID:    submission.StudentID,
			Type:      model.NotificationAssignmentGraded,
			Title:     "Assignment Graded",
			Message:   fmt.Sprintf("Your submission for %q has been graded.", assignment.Title),
			RelatedID: strconv.FormatUint(uint64(submission.ID), 10),
		})
	})
}

// GetSubmissions lists submissions for an assignment. Students see only
// their own; the owning instructor and admins see all.
func (s *AssignmentService) GetSubmissions(ctx context.Context, actorID, assignmentID uint) ([]model.Submission, error) {
	db := s.db.WithContext(ctx)

	var assignment model.Assignment
	if err := db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}

	var course model.Course
	if err := db.First(&course, assignment.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}

	profile, err := resolveProfile(db, actorID)
	if err != nil {
		return nil, err
	}

	query := db.Where("assignment_id = ?", assignmentID)
	switch {
	case profile.Role == model.RoleStudent:
		query = query.Where("student_id = ?", actorID)
	case profile.Role == model.RoleAdmin:
		// all submissions
	case profile.Role == model.RoleInstructor && course.InstructorID == actorID:
		// all submissions
	default:
		return nil, ErrAccessDenied
	}

	var submissions []model.Submission
	if err := query.Order("submitted_at ASC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	return submissions, nil
}
