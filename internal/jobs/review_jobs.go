package jobs

import (
	"context"
	"fmt"
	"time"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
)

// RemindPendingReviews notifies every reviewer-role account about
// applications and role-upgrade requests that have sat in PENDING longer
// than the configured threshold.
func (jr *JobRunner) RemindPendingReviews() {
	jr.runWithRecovery("RemindPendingReviews", jr.remindPendingReviews)
}

func (jr *JobRunner) remindPendingReviews() {
	ctx := context.Background()
	cutoff := time.Now().Add(-time.Duration(jr.config.Scheduler.ReminderAfterHours) * time.Hour)

	apps, err := jr.store.ApplicationRepository.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("failed to list stale applications", "error", err)
		return
	}
	reqs, err := jr.store.RoleRequestRepository.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("failed to list stale role requests", "error", err)
		return
	}
	if len(apps) == 0 && len(reqs) == 0 {
		logger.Debug("no stale pending reviews")
		return
	}

	reviewers, err := jr.store.UserRepository.ListByRoles(ctx, domain.Reviewers.Members())
	if err != nil {
		logger.Error("failed to list reviewers", "error", err)
		return
	}

	message := fmt.Sprintf("%d application(s) and %d role request(s) have been pending for more than %d hours.",
		len(apps), len(reqs), jr.config.Scheduler.ReminderAfterHours)

	for _, reviewer := range reviewers {
		note := &domain.Notification{
			UserID:  reviewer.ID,
			Title:   "Reviews waiting",
			Message: message,
			Attributes: map[string]string{
				"pending_applications":  fmt.Sprintf("%d", len(apps)),
				"pending_role_requests": fmt.Sprintf("%d", len(reqs)),
			},
		}
		if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
			logger.Error("failed to create reminder notification", "reviewerID", reviewer.ID, "error", err)
		}
	}

	logger.Info("review reminders sent",
		"staleApplications", len(apps), "staleRoleRequests", len(reqs), "reviewers", len(reviewers))
}
