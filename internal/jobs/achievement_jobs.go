package jobs

import (
	"context"
	"fmt"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/notify"
)

const achievementAttribute = "achievement_id"

// AwardAchievements notifies users of achievements they have newly earned.
func (jr *JobRunner) AwardAchievements() {
	jr.runWithRecovery("AwardAchievements", func(ctx context.Context) error {
		_, err := jr.awardAchievements(ctx)
		return err
	})
}

func (jr *JobRunner) awardAchievements(ctx context.Context) (int, error) {
	users, err := jr.repos.Users.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	count := 0
	for _, user := range users {
		progress, err := jr.services.Achievements.ListProgress(ctx, user.ID)
		if err != nil {
			logger.Error("Failed to evaluate achievements", "user_id", user.ID, "error", err)
			continue
		}
		for _, p := range progress {
			if !p.Earned {
				continue
			}
			awarded, err := jr.award(ctx, user.ID, p.Achievement)
			if err != nil {
				logger.Error("Failed to award achievement",
					"user_id", user.ID,
					"achievement_id", p.ID,
					"error", err)
				continue
			}
			if awarded {
				count++
			}
		}
	}

	logger.Info("Achievements awarded", "users", len(users), "awarded", count)
	return count, nil
}

func (jr *JobRunner) award(ctx context.Context, userID int32, a domain.Achievement) (bool, error) {
	exists, err := jr.repos.Notifications.Exists(ctx, userID, domain.NotificationTypeAchievement, achievementAttribute, a.ID)
	if err != nil || exists {
		return false, err
	}

	note := &domain.Notification{
		UserID:     userID,
		Type:       domain.NotificationTypeAchievement,
		Title:      "Achievement Unlocked: " + a.Title,
		Message:    a.Description,
		Attributes: map[string]string{achievementAttribute: a.ID, "icon": a.Icon},
	}
	if err := jr.repos.Notifications.Create(ctx, note); err != nil {
		return false, err
	}
	if err := jr.services.Pusher.Push(ctx, notify.UserTopic(userID), note.Title, note.Message, note.Attributes); err != nil {
		logger.Warn("Failed to push achievement", "user_id", userID, "achievement_id", a.ID, "error", err)
	}
	return true, nil
}
