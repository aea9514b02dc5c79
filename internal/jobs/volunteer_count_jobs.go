package jobs

import (
	"context"
	"fmt"

	"volunteer-backend/internal/logger"
)

// ReconcileVolunteerCounts recomputes shifts.current_volunteers and
// organizations.total_volunteers from non-cancelled registrations.
// Registration never touches these counters itself.
func (jr *JobRunner) ReconcileVolunteerCounts() {
	jr.runWithRecovery("ReconcileVolunteerCounts", func(ctx context.Context) error {
		shifts, orgs, err := jr.repos.Shifts.RecountVolunteers(ctx)
		if err != nil {
			return fmt.Errorf("failed to recount volunteers: %w", err)
		}
		logger.Info("Volunteer counts reconciled", "shifts_updated", shifts, "organizations_updated", orgs)
		return nil
	})
}
