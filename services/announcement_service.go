package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/classpoint/classpoint/model"
	"gorm.io/gorm"
)

// AnnouncementService handles course announcements and their fan-out to
// enrolled students.
type AnnouncementService struct {
	db *gorm.DB
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// CreateAnnouncementRequest represents a request to post an announcement
type CreateAnnouncementRequest struct {
	CourseID uint
	Title    string
	Content  string
	IsPinned bool
}

// CreateAnnouncement posts an announcement to a course the caller owns
// and notifies every actively-enrolled student in one transaction.
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, actorID uint, req CreateAnnouncementRequest) (*model.Announcement, error) {
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

	announcement := &model.Announcement{
		CourseID: req.CourseID,
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: actorID,
		IsPinned: req.IsPinned,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(announcement).Error; err != nil {
			return fmt.Errorf("failed to create announcement: %w", err)
		}

		var enrollments []model.Enrollment
		if err := tx.Where("course_id = ? AND status = ?", course.ID, model.EnrollmentActive).
			Find(&enrollments).Error; err != nil {
			return fmt.Errorf("failed to fetch enrollments: %w", err)
		}

		for _, enrollment := range enrollments {
			err := PushNotification(tx, CreateNotificationRequest{
				UserID:    enrollment.StudentID,
				Type:      model.NotificationCourseAnnouncement,
				Title:     "Course Announcement",
				Message:   fmt.Sprintf("%s: %s", course.Title, announcement.Title),
				RelatedID: strconv.FormatUint(uint64(announcement.ID), 10),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return announcement, nil
}

// GetAnnouncements lists a course's announcements, pinned first then
// newest.
func (s *AnnouncementService) GetAnnouncements(ctx context.Context, actorID, courseID uint) ([]model.Announcement, error) {
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

	var announcements []model.Announcement
	if err := db.Where("course_id = ?", courseID).
		Order("is_pinned DESC, created_at DESC").
		Find(&announcements).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch announcements: %w", err)
	}

	return announcements, nil
}
