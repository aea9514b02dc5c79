package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"
)

const organizationColumns = `o.id, o.name, o.description, o.logo_url, o.website_url, o.contact_email, o.contact_phone,
	o.address, o.city, o.state, o.zip_code, o.created_at, o.updated_at, o.rating, o.total_volunteers`

// organizationDetailQuery fetches an organization, its reviews (with the
// reviewer's name) and its shifts in one round trip.
const organizationDetailQuery = `SELECT ` + organizationColumns + `,
	COALESCE((
		SELECT json_agg(json_build_object(
			'id', r.id,
			'organization_id', r.organization_id,
			'user_id', r.user_id,
			'rating', r.rating,
			'review', r.review,
			'created_at', r.created_at,
			'updated_at', r.updated_at,
			'users', CASE WHEN u.id IS NULL THEN NULL ELSE json_build_object('full_name', u.full_name) END
		) ORDER BY r.created_at DESC, r.id)
		FROM organization_reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.organization_id = o.id
	), '[]'::json) AS organization_reviews,
	COALESCE((
		SELECT json_agg(json_build_object(
			'id', s.id,
			'organization_id', s.organization_id,
			'title', s.title,
			'description', s.description,
			'date', s.date::text,
			'start_time', s.start_time::text,
			'end_time', s.end_time::text,
			'location', s.location,
			'minimum_age', s.minimum_age,
			'requirements', s.requirements,
			'max_volunteers', s.max_volunteers,
			'current_volunteers', s.current_volunteers,
			'created_at', s.created_at,
			'updated_at', s.updated_at,
			'status', s.status
		) ORDER BY s.date, s.start_time, s.id)
		FROM shifts s
		WHERE s.organization_id = o.id
	), '[]'::json) AS shifts
FROM organizations o
WHERE o.id = $1`

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func organizationDest(o *domain.Organization) []any {
	return []any{&o.ID, &o.Name, &o.Description, &o.LogoURL, &o.WebsiteURL, &o.ContactEmail, &o.ContactPhone,
		&o.Address, &o.City, &o.State, &o.ZipCode, &o.CreatedAt, &o.UpdatedAt, &o.Rating, &o.TotalVolunteers}
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o ORDER BY o.id`
	logger.DatabaseCall("SELECT", "organizations")
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(organizationDest(&o)...); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(orgs)), nil)
	return orgs, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.id = $1`
	o := &domain.Organization{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(organizationDest(o)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) GetDetail(ctx context.Context, id int32) (*domain.OrganizationDetail, error) {
	logger.EnterMethod("organizationRepository.GetDetail", "organizationID", id)
	logger.DatabaseCall("SELECT", "organizations", "id", id, "embeds", "organization_reviews,shifts")

	d := &domain.OrganizationDetail{}
	var reviews, shifts []byte
	dest := append(organizationDest(&d.Organization), &reviews, &shifts)
	err := r.db.QueryRowContext(ctx, organizationDetailQuery, id).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethod("organizationRepository.GetDetail", "found", false)
		return nil, nil
	}
	if err != nil {
		logger.ExitMethodWithError("organizationRepository.GetDetail", err, "organizationID", id)
		return nil, err
	}

	if err := json.Unmarshal(reviews, &d.OrganizationReviews); err != nil {
		return nil, fmt.Errorf("failed to decode organization reviews: %w", err)
	}
	if err := json.Unmarshal(shifts, &d.Shifts); err != nil {
		return nil, fmt.Errorf("failed to decode organization shifts: %w", err)
	}
	if d.OrganizationReviews == nil {
		d.OrganizationReviews = []domain.OrganizationReviewWithUser{}
	}
	if d.Shifts == nil {
		d.Shifts = []domain.Shift{}
	}

	logger.ExitMethod("organizationRepository.GetDetail", "reviews", len(d.OrganizationReviews), "shifts", len(d.Shifts))
	return d, nil
}
