package services

import "errors"

// Precondition errors returned by the service layer. Handlers map these
// onto HTTP statuses; callers treat them all the same way (show the
// message, abort the action).
var (
	// Identity
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrInvalidRole     = errors.New("invalid role")
	ErrUserNotFound    = errors.New("user not found")

	// Generic authorization failure
	ErrAccessDenied = errors.New("access denied")

	// Courses & enrollment
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseNotAvailable = errors.New("course not available")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrCourseFull         = errors.New("course is full")
	ErrNotEnrolled        = errors.New("not enrolled in this course")

	// Assignments & submissions
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrAssignmentNotAvailable = errors.New("assignment is not yet available")
	ErrSubmissionNotFound     = errors.New("submission not found")

	// Discussions
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrDiscussionLocked   = errors.New("discussion is locked")
	ErrParentPostInvalid  = errors.New("parent post does not belong to this discussion")

	// Messaging
	ErrMessageNotFound     = errors.New("message not found")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrNotMessageRecipient = errors.New("you can only mark your own messages as read")

	// Notifications
	ErrNotificationNotFound = errors.New("notification not found")
)
