package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/classpoint/classpoint/model"
	"gorm.io/gorm"
)

// DiscussionService manages course discussion boards and threaded posts.
type DiscussionService struct {
	db *gorm.DB
}

// NewDiscussionService creates a new discussion service
func NewDiscussionService(db *gorm.DB) *DiscussionService {
	return &DiscussionService{db: db}
}

// CreateDiscussionRequest represents a request to create a discussion board
type CreateDiscussionRequest struct {
	CourseID    uint
	Title       string
	Description string
	IsPinned    bool
}

// CreateDiscussion creates a discussion board. Only the course's
// instructor or an admin may create boards; students post within them.
func (s *DiscussionService) CreateDiscussion(ctx context.Context, actorID uint, req CreateDiscussionRequest) (*model.Discussion, error) {
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

	discussion := &model.Discussion{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   actorID,
		IsPinned:    req.IsPinned,
	}

	if err := db.Create(discussion).Error; err != nil {
		return nil, fmt.Errorf("failed to create discussion: %w", err)
	}

	return discussion, nil
}

// GetDiscussions lists a course's discussion boards, pinned first.
func (s *DiscussionService) GetDiscussions(ctx context.Context, actorID, courseID uint) ([]model.Discussion, error) {
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

	var discussions []model.Discussion
	if err := db.Where("course_id = ?", courseID).
		Order("is_pinned DESC, created_at DESC").
		Find(&discussions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch discussions: %w", err)
	}

	return discussions, nil
}

// CreatePostRequest represents a request to post in a discussion
type CreatePostRequest struct {
	DiscussionID uint
	Content      string
	ParentPostID *uint
}

// CreatePost adds a post to a discussion. Replies must point at a parent
// post in the same discussion; the parent's author is notified when
// someone else replies, in the same transaction as the write.
func (s *DiscussionService) CreatePost(ctx context.Context, actorID uint, req CreatePostRequest) (*model.DiscussionPost, error) {
	db := s.db.WithContext(ctx)

	var discussion model.Discussion
	if err := db.First(&discussion, req.DiscussionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("failed to fetch discussion: %w", err)
	}

	var course model.Course
	if err := db.First(&course, discussion.CourseID).Error; err != nil {
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

	if discussion.IsLocked {
		return nil, ErrDiscussionLocked
	}

	var parent *model.DiscussionPost
	if req.ParentPostID != nil {
		var p model.DiscussionPost
		err := db.Where("id = ? AND discussion_id = ?", *req.ParentPostID, req.DiscussionID).
			First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentPostInvalid
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch parent post: %w", err)
		}
		parent = &p
	}

	post := &model.DiscussionPost{
		DiscussionID: req.DiscussionID,
		AuthorID:     actorID,
		Content:      req.Content,
		ParentPostID: req.ParentPostID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		if parent != nil && parent.AuthorID != actorID {
			return PushNotification(tx, CreateNotificationRequest{
				UserID:    parent.AuthorID,
				Type:      model.NotificationDiscussionReply,
				Title:     "New Reply",
				Message:   fmt.Sprintf("Someone replied to your post in %q.", discussion.Title),
				RelatedID: strconv.FormatUint(uint64(post.ID), 10),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// GetPosts lists a discussion's posts in chronological order with each
// author's user and profile preloaded.
func (s *DiscussionService) GetPosts(ctx context.Context, actorID, discussionID uint) ([]model.DiscussionPost, error) {
	db := s.db.WithContext(ctx)

	var discussion model.Discussion
	if err := db.First(&discussion, discussionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("failed to fetch discussion: %w", err)
	}

	var course model.Course
	if err := db.First(&course, discussion.CourseID).Error; err != nil {
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

	var posts []model.DiscussionPost
	if err := db.Where("discussion_id = ?", discussionID).
		Preload("Author.Profile").
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	return posts, nil
}
