package service

import (
	"context"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

// GetNotifications returns every notification for the user, newest first.
func (s *notificationService) GetNotifications(ctx context.Context, userID int32) ([]domain.Notification, error) {
	if userID == 0 {
		return nil, domain.NewValidationError("userId", "User ID is required")
	}
	notes, err := s.noteRepo.List(ctx, userID)
	if err != nil {
		return nil, domain.NewStorageError("list notifications", err)
	}
	return notes, nil
}

// MarkAsRead fails with domain.ErrNotFound when the notification does not
// exist or belongs to another user.
func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	if userID == 0 {
		return domain.NewValidationError("userId", "User ID is required")
	}
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}
