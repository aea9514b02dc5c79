package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"
)

const registrationColumns = `id, shift_id, user_id, status, created_at, updated_at, hours_logged, feedback, rating`

// upsertRegistrationQuery inserts a registration or, when the (shift_id,
// user_id) unique index rejects it, returns the existing row. The second
// branch only runs when the insert produced nothing.
const upsertRegistrationQuery = `WITH inserted AS (
	INSERT INTO shift_registrations (shift_id, user_id, status)
	VALUES ($1, $2, $3)
	ON CONFLICT (shift_id, user_id) DO NOTHING
	RETURNING ` + registrationColumns + `
)
SELECT ` + registrationColumns + `, TRUE FROM inserted
UNION ALL
SELECT ` + registrationColumns + `, FALSE FROM shift_registrations
WHERE shift_id = $1 AND user_id = $2 AND NOT EXISTS (SELECT 1 FROM inserted)
LIMIT 1`

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

func registrationDest(reg *domain.ShiftRegistration) []any {
	return []any{&reg.ID, &reg.ShiftID, &reg.UserID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt,
		&reg.HoursLogged, &reg.Feedback, &reg.Rating}
}

func (r *registrationRepository) FindID(ctx context.Context, shiftID, userID int32) (int32, bool, error) {
	query := `SELECT id FROM shift_registrations WHERE shift_id = $1 AND user_id = $2 ORDER BY id LIMIT 2`
	logger.DatabaseCall("SELECT", "shift_registrations", "shiftID", shiftID, "userID", userID)
	rows, err := r.db.QueryContext(ctx, query, shiftID, userID)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return 0, false, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return 0, false, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, false, err
	}
	logger.DatabaseResult("SELECT", int64(len(ids)), nil)

	switch len(ids) {
	case 0:
		return 0, false, nil
	case 1:
		return ids[0], true, nil
	default:
		return 0, false, fmt.Errorf("%w: shift %d, user %d", domain.ErrDuplicateRegistration, shiftID, userID)
	}
}

func (r *registrationRepository) GetByID(ctx context.Context, id int32) (*domain.ShiftRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM shift_registrations WHERE id = $1`
	reg := &domain.ShiftRegistration{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(registrationDest(reg)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("registration %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.ShiftRegistration) error {
	query := `INSERT INTO shift_registrations (shift_id, user_id, status) VALUES ($1, $2, $3)
	          RETURNING ` + registrationColumns
	logger.DatabaseCall("INSERT", "shift_registrations", "shiftID", reg.ShiftID, "userID", reg.UserID)
	err := r.db.QueryRowContext(ctx, query, reg.ShiftID, reg.UserID, reg.Status).Scan(registrationDest(reg)...)
	logger.DatabaseResult("INSERT", 1, err, "registrationID", reg.ID)
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrRegistrationConflict, err)
	}
	return err
}

func (r *registrationRepository) Upsert(ctx context.Context, shiftID, userID int32, status domain.RegistrationStatus) (*domain.ShiftRegistration, bool, error) {
	logger.DatabaseCall("UPSERT", "shift_registrations", "shiftID", shiftID, "userID", userID)
	reg := &domain.ShiftRegistration{}
	var created bool
	err := r.db.QueryRowContext(ctx, upsertRegistrationQuery, shiftID, userID, status).
		Scan(append(registrationDest(reg), &created)...)
	if errors.Is(err, sql.ErrNoRows) {
		// The conflicting row was committed after this statement's snapshot.
		query := `SELECT ` + registrationColumns + ` FROM shift_registrations WHERE shift_id = $1 AND user_id = $2`
		err = r.db.QueryRowContext(ctx, query, shiftID, userID).Scan(registrationDest(reg)...)
	}
	logger.DatabaseResult("UPSERT", 1, err, "registrationID", reg.ID, "created", created)
	if err != nil {
		return nil, false, err
	}
	return reg, created, nil
}

func (r *registrationRepository) EnsureUniqueIndex(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS shift_registrations_shift_user_key ON shift_registrations (shift_id, user_id)`)
	if err != nil {
		return fmt.Errorf("failed to create unique registration index: %w", err)
	}
	return nil
}

func (r *registrationRepository) ListShiftDatesByUser(ctx context.Context, userID int32) ([]time.Time, error) {
	query := `SELECT s.date FROM shift_registrations r
	          JOIN shifts s ON s.id = r.shift_id
	          WHERE r.user_id = $1 AND r.status = $2
	          ORDER BY s.date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, domain.RegistrationStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *registrationRepository) ListConfirmedByShift(ctx context.Context, shiftID int32) ([]domain.ShiftRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM shift_registrations WHERE shift_id = $1 AND status = $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, shiftID, domain.RegistrationStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []domain.ShiftRegistration
	for rows.Next() {
		var reg domain.ShiftRegistration
		if err := rows.Scan(registrationDest(&reg)...); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
