package client

import (
	"context"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/service"
)

// DirectServices is the in-process service layer a DirectTransport calls.
type DirectServices struct {
	Organizations service.OrganizationService
	Shifts        service.ShiftService
	Users         service.UserService
	Registrations service.RegistrationService
	Notifications service.NotificationService
	Achievements  service.AchievementService
}

// DirectTransport calls the service layer in-process, skipping HTTP.
type DirectTransport struct {
	svc DirectServices
}

func NewDirectTransport(svc DirectServices) *DirectTransport {
	return &DirectTransport{svc: svc}
}

func (t *DirectTransport) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return t.svc.Organizations.ListOrganizations(ctx)
}

func (t *DirectTransport) GetOrganization(ctx context.Context, id int32) (*domain.OrganizationDetail, error) {
	return t.svc.Organizations.GetOrganization(ctx, id)
}

func (t *DirectTransport) ListShifts(ctx context.Context) ([]domain.ShiftWithOrganization, error) {
	return t.svc.Shifts.ListShifts(ctx)
}

func (t *DirectTransport) GetShift(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error) {
	return t.svc.Shifts.GetShift(ctx, id)
}

func (t *DirectTransport) GetUserProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return t.svc.Users.GetUserProfile(ctx, userID)
}

func (t *DirectTransport) RegisterForShift(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, error) {
	return t.svc.Registrations.RegisterForShift(ctx, shiftID, userID)
}

func (t *DirectTransport) GetNotifications(ctx context.Context, userID int32) ([]domain.Notification, error) {
	return t.svc.Notifications.GetNotifications(ctx, userID)
}

func (t *DirectTransport) MarkNotificationRead(ctx context.Context, userID, notificationID int32) error {
	return t.svc.Notifications.MarkAsRead(ctx, userID, notificationID)
}

func (t *DirectTransport) ListAchievements(ctx context.Context, userID int32) ([]domain.AchievementProgress, error) {
	return t.svc.Achievements.ListProgress(ctx, userID)
}
