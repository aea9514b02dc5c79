package service

import (
	"context"

	"volunteer-backend/internal/domain"
)

// Detail lookups return (nil, nil) when nothing matches. Storage failures
// come back as *domain.StorageError carrying the driver's message.

type OrganizationService interface {
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	GetOrganization(ctx context.Context, id int32) (*domain.OrganizationDetail, error)
}

type ShiftService interface {
	ListShifts(ctx context.Context) ([]domain.ShiftWithOrganization, error)
	GetShift(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error)
}

type UserService interface {
	GetUserProfile(ctx context.Context, userID int32) (*domain.User, error)
}

type RegistrationService interface {
	// RegisterForShift returns the user's registration for the shift,
	// creating a confirmed one if none exists. Repeated calls return the
	// same row.
	RegisterForShift(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type AchievementService interface {
	ListProgress(ctx context.Context, userID int32) ([]domain.AchievementProgress, error)
}
