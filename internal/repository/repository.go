package repository

import (
	"context"
	"time"

	"volunteer-backend/internal/domain"
)

// Detail lookups return (nil, nil) when no row matches.

type OrganizationRepository interface {
	List(ctx context.Context) ([]domain.Organization, error)
	GetDetail(ctx context.Context, id int32) (*domain.OrganizationDetail, error)
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
}

type ShiftRepository interface {
	List(ctx context.Context) ([]domain.ShiftWithOrganization, error)
	GetByID(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.ShiftWithOrganization, error)
	// RecountVolunteers recomputes shifts.current_volunteers and
	// organizations.total_volunteers from non-cancelled registrations.
	RecountVolunteers(ctx context.Context) (shifts, orgs int64, err error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type RegistrationRepository interface {
	// FindID is a zero-or-one lookup on (shift_id, user_id) ignoring status.
	// More than one match yields domain.ErrDuplicateRegistration.
	FindID(ctx context.Context, shiftID, userID int32) (id int32, found bool, err error)
	// GetByID returns domain.ErrNotFound when no row matches.
	GetByID(ctx context.Context, id int32) (*domain.ShiftRegistration, error)
	// Create inserts the row and fills in server-generated columns.
	Create(ctx context.Context, reg *domain.ShiftRegistration) error
	// Upsert inserts or returns the existing row in one statement. Requires
	// the unique index created by EnsureUniqueIndex.
	Upsert(ctx context.Context, shiftID, userID int32, status domain.RegistrationStatus) (*domain.ShiftRegistration, bool, error)
	EnsureUniqueIndex(ctx context.Context) error
	ListShiftDatesByUser(ctx context.Context, userID int32) ([]time.Time, error)
	ListConfirmedByShift(ctx context.Context, shiftID int32) ([]domain.ShiftRegistration, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	// Exists reports whether the user already has a notification of the given
	// type whose attribute key equals value.
	Exists(ctx context.Context, userID int32, typ domain.NotificationType, key, value string) (bool, error)
}
