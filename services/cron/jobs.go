package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/classpoint/classpoint/model"
	"github.com/classpoint/classpoint/services"
)

// notificationRetention is how long read notifications are kept before
// the nightly purge removes them.
const notificationRetention = 90 * 24 * time.Hour

// CleanupNotifications purges read notifications older than the
// retention window.
func (m *CronManager) CleanupNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "cleanup_notifications"

	svc := services.NewNotificationService(m.db)
	deleted, err := svc.CleanupOldNotifications(ctx, notificationRetention)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to cleanup notifications: %w", err))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Deleted %d old notifications", deleted))
}

// CompleteFinishedEnrollments marks active enrollments as completed for
// courses that have been deactivated.
func (m *CronManager) CompleteFinishedEnrollments() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "complete_enrollments"

	result := m.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("status = ? AND course_id IN (?)",
			model.EnrollmentActive,
			m.db.Model(&model.Course{}).Select("id").Where("is_active = ?", false),
		).
		Update("status", model.EnrollmentCompleted)
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to complete enrollments: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Completed %d enrollments", result.RowsAffected))
}
