package jobs

import (
	"context"
	"fmt"
	"strconv"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/notify"
)

const reminderAttribute = "reminder_registration_id"

// SendShiftReminders notifies every confirmed volunteer of a shift taking
// place tomorrow (UTC). Each registration is reminded at most once.
func (jr *JobRunner) SendShiftReminders() {
	jr.runWithRecovery("SendShiftReminders", func(ctx context.Context) error {
		_, err := jr.sendShiftReminders(ctx)
		return err
	})
}

func (jr *JobRunner) sendShiftReminders(ctx context.Context) (int, error) {
	tomorrow := jr.now().UTC().AddDate(0, 0, 1)
	shifts, err := jr.repos.Shifts.ListByDate(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("failed to list tomorrow's shifts: %w", err)
	}

	count := 0
	for _, shift := range shifts {
		regs, err := jr.repos.Registrations.ListConfirmedByShift(ctx, shift.ID)
		if err != nil {
			logger.Error("Failed to list registrations", "shift_id", shift.ID, "error", err)
			continue
		}
		for _, reg := range regs {
			if reg.UserID == nil {
				continue
			}
			sent, err := jr.remind(ctx, &shift, reg.ID, *reg.UserID)
			if err != nil {
				logger.Error("Failed to send shift reminder",
					"shift_id", shift.ID,
					"registration_id", reg.ID,
					"error", err)
				continue
			}
			if sent {
				count++
			}
		}
	}

	logger.Info("Shift reminders sent", "shifts", len(shifts), "reminders", count)
	return count, nil
}

func (jr *JobRunner) remind(ctx context.Context, shift *domain.ShiftWithOrganization, registrationID, userID int32) (bool, error) {
	regID := strconv.Itoa(int(registrationID))
	exists, err := jr.repos.Notifications.Exists(ctx, userID, domain.NotificationTypeReminder, reminderAttribute, regID)
	if err != nil || exists {
		return false, err
	}

	where := ""
	if shift.Location != nil && *shift.Location != "" {
		where = " at " + *shift.Location
	}
	note := &domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationTypeReminder,
		Title:   "Upcoming Shift Tomorrow",
		Message: fmt.Sprintf("Don't forget: %s starts tomorrow at %s%s.", shift.Title, shift.StartTime, where),
		Attributes: map[string]string{
			reminderAttribute: regID,
			"shift_id":        strconv.Itoa(int(shift.ID)),
		},
	}
	if err := jr.repos.Notifications.Create(ctx, note); err != nil {
		return false, err
	}

	if err := jr.services.Pusher.Push(ctx, notify.UserTopic(userID), note.Title, note.Message, note.Attributes); err != nil {
		logger.Warn("Failed to push shift reminder", "registration_id", registrationID, "error", err)
	}
	return true, nil
}
