package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"volunteer-backend/internal/logger"
)

// SeedData is demo content loaded from a YAML file. Rows carry explicit ids so
// that reseeding is a no-op.
type SeedData struct {
	Organizations []SeedOrganization `yaml:"organizations"`
	Users         []SeedUser         `yaml:"users"`
	Shifts        []SeedShift        `yaml:"shifts"`
}

type SeedOrganization struct {
	ID           int32    `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  *string  `yaml:"description"`
	LogoURL      *string  `yaml:"logo_url"`
	WebsiteURL   *string  `yaml:"website_url"`
	ContactEmail *string  `yaml:"contact_email"`
	ContactPhone *string  `yaml:"contact_phone"`
	City         *string  `yaml:"city"`
	State        *string  `yaml:"state"`
	Rating       *float64 `yaml:"rating"`
}

type SeedUser struct {
	ID              int32    `yaml:"id"`
	FullName        string   `yaml:"full_name"`
	Bio             *string  `yaml:"bio"`
	Location        *string  `yaml:"location"`
	PreferredCauses []string `yaml:"preferred_causes"`
}

type SeedShift struct {
	ID             int32   `yaml:"id"`
	OrganizationID *int32  `yaml:"organization_id"`
	Title          string  `yaml:"title"`
	Description    *string `yaml:"description"`
	Date           string  `yaml:"date"`
	StartTime      string  `yaml:"start_time"`
	EndTime        string  `yaml:"end_time"`
	Location       *string `yaml:"location"`
	MinimumAge     *int32  `yaml:"minimum_age"`
	MaxVolunteers  *int32  `yaml:"max_volunteers"`
}

// LoadSeedFile reads seed data from a YAML file.
func LoadSeedFile(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// Seed inserts seed rows in one transaction, skipping ids that already exist,
// and moves each id sequence past the highest id.
func Seed(ctx context.Context, db *sql.DB, seed *SeedData) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, o := range seed.Organizations {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO organizations (id, name, description, logo_url, website_url, contact_email, contact_phone, city, state, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			o.ID, o.Name, o.Description, o.LogoURL, o.WebsiteURL, o.ContactEmail, o.ContactPhone, o.City, o.State, o.Rating)
		if err != nil {
			return fmt.Errorf("failed to seed organization %d: %w", o.ID, err)
		}
	}
	for _, u := range seed.Users {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, full_name, bio, location, preferred_causes)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			u.ID, u.FullName, u.Bio, u.Location, pq.Array(u.PreferredCauses))
		if err != nil {
			return fmt.Errorf("failed to seed user %d: %w", u.ID, err)
		}
	}
	for _, s := range seed.Shifts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shifts (id, organization_id, title, description, date, start_time, end_time, location, minimum_age, max_volunteers)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			s.ID, s.OrganizationID, s.Title, s.Description, s.Date, s.StartTime, s.EndTime, s.Location, s.MinimumAge, s.MaxVolunteers)
		if err != nil {
			return fmt.Errorf("failed to seed shift %d: %w", s.ID, err)
		}
	}

	for _, table := range []string{"organizations", "users", "shifts"} {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`, table))
		if err != nil {
			return fmt.Errorf("failed to reset %s id sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	logger.Info("Seed data loaded",
		"organizations", len(seed.Organizations),
		"users", len(seed.Users),
		"shifts", len(seed.Shifts))
	return nil
}
