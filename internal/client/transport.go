// Package client is the calling side of the shift directory: a Client that
// reads through a small cache and talks to the backend over a Transport.
package client

import (
	"context"

	"volunteer-backend/internal/domain"
)

// Transport carries directory calls to the backend. Both implementations run
// the same queries; they differ only in how they reach them.
type Transport interface {
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	GetOrganization(ctx context.Context, id int32) (*domain.OrganizationDetail, error)
	ListShifts(ctx context.Context) ([]domain.ShiftWithOrganization, error)
	GetShift(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error)
	GetUserProfile(ctx context.Context, userID int32) (*domain.User, error)
	RegisterForShift(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, error)
	GetNotifications(ctx context.Context, userID int32) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int32) error
	ListAchievements(ctx context.Context, userID int32) ([]domain.AchievementProgress, error)
}
