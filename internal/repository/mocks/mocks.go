// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"volunteer-backend/internal/domain"
)

type OrganizationRepository struct {
	mock.Mock
}

func (m *OrganizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *OrganizationRepository) GetDetail(ctx context.Context, id int32) (*domain.OrganizationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationDetail), args.Error(1)
}

func (m *OrganizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

type ShiftRepository struct {
	mock.Mock
}

func (m *ShiftRepository) List(ctx context.Context) ([]domain.ShiftWithOrganization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShiftWithOrganization), args.Error(1)
}

func (m *ShiftRepository) GetByID(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftWithOrganization), args.Error(1)
}

func (m *ShiftRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.ShiftWithOrganization, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShiftWithOrganization), args.Error(1)
}

func (m *ShiftRepository) RecountVolunteers(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type RegistrationRepository struct {
	mock.Mock
}

func (m *RegistrationRepository) FindID(ctx context.Context, shiftID, userID int32) (int32, bool, error) {
	args := m.Called(ctx, shiftID, userID)
	return args.Get(0).(int32), args.Bool(1), args.Error(2)
}

func (m *RegistrationRepository) GetByID(ctx context.Context, id int32) (*domain.ShiftRegistration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftRegistration), args.Error(1)
}

func (m *RegistrationRepository) Create(ctx context.Context, reg *domain.ShiftRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *RegistrationRepository) Upsert(ctx context.Context, shiftID, userID int32, status domain.RegistrationStatus) (*domain.ShiftRegistration, bool, error) {
	args := m.Called(ctx, shiftID, userID, status)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ShiftRegistration), args.Bool(1), args.Error(2)
}

func (m *RegistrationRepository) EnsureUniqueIndex(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *RegistrationRepository) ListShiftDatesByUser(ctx context.Context, userID int32) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *RegistrationRepository) ListConfirmedByShift(ctx context.Context, shiftID int32) ([]domain.ShiftRegistration, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShiftRegistration), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *NotificationRepository) List(ctx context.Context, userID int32) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationRepository) Exists(ctx context.Context, userID int32, typ domain.NotificationType, key, value string) (bool, error) {
	args := m.Called(ctx, userID, typ, key, value)
	return args.Bool(0), args.Error(1)
}

// Pusher records push messages.
type Pusher struct {
	mock.Mock
}

func (m *Pusher) Push(ctx context.Context, topic, title, body string, data map[string]string) error {
	args := m.Called(ctx, topic, title, body, data)
	return args.Error(0)
}

// Mailer records emails.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(ctx context.Context, to, toName, subject, plainText, html string) error {
	args := m.Called(ctx, to, toName, subject, plainText, html)
	return args.Error(0)
}
