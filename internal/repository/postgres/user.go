package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/repository"
)

const userColumns = `id, full_name, avatar_url, bio, phone_number, date_of_birth::text, created_at, updated_at,
	total_hours, total_shifts, location, preferred_causes`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var causes pq.StringArray
	err := row.Scan(&u.ID, &u.FullName, &u.AvatarURL, &u.Bio, &u.PhoneNumber, &u.DateOfBirth, &u.CreatedAt, &u.UpdatedAt,
		&u.TotalHours, &u.TotalShifts, &u.Location, &causes)
	if err != nil {
		return nil, err
	}
	if causes != nil {
		u.PreferredCauses = []string(causes)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
