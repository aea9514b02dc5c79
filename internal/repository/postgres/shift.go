package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"
)

// Shifts are joined with a narrow projection of their organization.
const shiftWithOrganizationQuery = `SELECT s.id, s.organization_id, s.title, s.description, s.date::text, s.start_time::text,
	s.end_time::text, s.location, s.minimum_age, s.requirements, s.max_volunteers, s.current_volunteers,
	s.created_at, s.updated_at, s.status,
	o.id, o.name, o.logo_url, o.website_url, o.contact_phone
FROM shifts s
LEFT JOIN organizations o ON o.id = s.organization_id`

type shiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) repository.ShiftRepository {
	return &shiftRepository{db: db}
}

func scanShiftWithOrganization(row rowScanner) (*domain.ShiftWithOrganization, error) {
	s := &domain.ShiftWithOrganization{}
	var (
		orgID      sql.NullInt32
		orgName    sql.NullString
		logoURL    sql.NullString
		websiteURL sql.NullString
		phone      sql.NullString
	)
	err := row.Scan(&s.ID, &s.OrganizationID, &s.Title, &s.Description, &s.Date, &s.StartTime,
		&s.EndTime, &s.Location, &s.MinimumAge, &s.Requirements, &s.MaxVolunteers, &s.CurrentVolunteers,
		&s.CreatedAt, &s.UpdatedAt, &s.Status,
		&orgID, &orgName, &logoURL, &websiteURL, &phone)
	if err != nil {
		return nil, err
	}
	if orgID.Valid {
		s.Organizations = &domain.OrganizationSummary{
			ID:           orgID.Int32,
			Name:         orgName.String,
			LogoURL:      nullableString(logoURL),
			WebsiteURL:   nullableString(websiteURL),
			ContactPhone: nullableString(phone),
		}
	}
	return s, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func (r *shiftRepository) List(ctx context.Context) ([]domain.ShiftWithOrganization, error) {
	return r.list(ctx, shiftWithOrganizationQuery+` ORDER BY s.date, s.start_time, s.id`)
}

func (r *shiftRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.ShiftWithOrganization, error) {
	return r.list(ctx, shiftWithOrganizationQuery+` WHERE s.date = $1 ORDER BY s.start_time, s.id`, date.Format("2006-01-02"))
}

func (r *shiftRepository) list(ctx context.Context, query string, args ...any) ([]domain.ShiftWithOrganization, error) {
	logger.DatabaseCall("SELECT", "shifts", "join", "organizations")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	shifts := []domain.ShiftWithOrganization{}
	for rows.Next() {
		s, err := scanShiftWithOrganization(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(shifts)), nil)
	return shifts, nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error) {
	s, err := scanShiftWithOrganization(r.db.QueryRowContext(ctx, shiftWithOrganizationQuery+` WHERE s.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *shiftRepository) RecountVolunteers(ctx context.Context) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	logger.DatabaseCall("UPDATE", "shifts", "column", "current_volunteers")
	res, err := tx.ExecContext(ctx, `UPDATE shifts s SET current_volunteers = c.n, updated_at = NOW()
		FROM (
			SELECT s2.id, COUNT(r.id) AS n FROM shifts s2
			LEFT JOIN shift_registrations r ON r.shift_id = s2.id AND r.status <> $1
			GROUP BY s2.id
		) c
		WHERE c.id = s.id AND s.current_volunteers <> c.n`, domain.RegistrationStatusCancelled)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return 0, 0, err
	}
	shifts, _ := res.RowsAffected()

	logger.DatabaseCall("UPDATE", "organizations", "column", "total_volunteers")
	res, err = tx.ExecContext(ctx, `UPDATE organizations o SET total_volunteers = c.n, updated_at = NOW()
		FROM (
			SELECT o2.id, COUNT(DISTINCT r.user_id) AS n FROM organizations o2
			LEFT JOIN shifts s ON s.organization_id = o2.id
			LEFT JOIN shift_registrations r ON r.shift_id = s.id AND r.status <> $1
			GROUP BY o2.id
		) c
		WHERE c.id = o.id AND o.total_volunteers <> c.n`, domain.RegistrationStatusCancelled)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return 0, 0, err
	}
	orgs, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	logger.DatabaseResult("UPDATE", shifts+orgs, nil, "shifts", shifts, "organizations", orgs)
	return shifts, orgs, nil
}
