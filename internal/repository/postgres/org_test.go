package postgres_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-backend/internal/repository/postgres"
)

var organizationCols = []string{"id", "name", "description", "logo_url", "website_url", "contact_email", "contact_phone",
	"address", "city", "state", "zip_code", "created_at", "updated_at", "rating", "total_volunteers"}

func organizationRow(id int64, name string, now time.Time) []driver.Value {
	return []driver.Value{id, name, "Feeding neighbors", nil, "https://foodbank.example.org", "hello@foodbank.example.org", nil,
		"1 Main St", "Springfield", "IL", "62701", now, now, 4.5, 12}
}

func TestOrganizationRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewOrganizationRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM organizations o ORDER BY o.id").
			WillReturnRows(sqlmock.NewRows(organizationCols).
				AddRow(organizationRow(1, "Food Bank", now)...).
				AddRow(organizationRow(2, "Park Friends", now)...))

		orgs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, orgs, 2)
		assert.Equal(t, "Food Bank", orgs[0].Name)
		assert.Nil(t, orgs[0].LogoURL)
		require.NotNil(t, orgs[0].Rating)
		assert.Equal(t, 4.5, *orgs[0].Rating)
		assert.Equal(t, int32(12), orgs[1].TotalVolunteers)
	})

	t.Run("EmptyIsNotNil", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM organizations o").
			WillReturnRows(sqlmock.NewRows(organizationCols))

		orgs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, orgs)
		assert.Empty(t, orgs)
	})

	t.Run("ErrorPassesThrough", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM organizations o").
			WillReturnError(errors.New("connection refused"))

		orgs, err := repo.List(ctx)
		assert.EqualError(t, err, "connection refused")
		assert.Nil(t, orgs)
	})
}

func TestOrganizationRepository_GetDetail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewOrganizationRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	detailCols := append(append([]string{}, organizationCols...), "organization_reviews", "shifts")

	t.Run("WithEmbeds", func(t *testing.T) {
		reviews := `[{"id":3,"organization_id":1,"user_id":1,"rating":5,"review":"Lovely team",
			"created_at":"2024-05-02T10:00:00+00:00","updated_at":"2024-05-02T10:00:00+00:00","users":{"full_name":"Alex Doe"}},
			{"id":4,"organization_id":1,"user_id":null,"rating":null,"review":null,
			"created_at":"2024-05-01T10:00:00.123456+00:00","updated_at":"2024-05-01T10:00:00+00:00","users":null}]`
		shifts := `[{"id":10,"organization_id":1,"title":"Sort donations","description":null,"date":"2024-06-15",
			"start_time":"09:00:00","end_time":"12:00:00","location":"Warehouse","minimum_age":16,"requirements":null,
			"max_volunteers":null,"current_volunteers":3,"created_at":"2024-05-01T12:00:00+00:00",
			"updated_at":"2024-05-01T12:00:00+00:00","status":"open"}]`
		row := append(organizationRow(1, "Food Bank", now), reviews, shifts)
		mock.ExpectQuery("SELECT (.+) json_agg(.+) FROM organizations o WHERE o.id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows(detailCols).AddRow(row...))

		detail, err := repo.GetDetail(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.Equal(t, "Food Bank", detail.Name)

		require.Len(t, detail.OrganizationReviews, 2)
		require.NotNil(t, detail.OrganizationReviews[0].Users)
		assert.Equal(t, "Alex Doe", detail.OrganizationReviews[0].Users.FullName)
		assert.Nil(t, detail.OrganizationReviews[1].Users)
		assert.Nil(t, detail.OrganizationReviews[1].UserID)

		require.Len(t, detail.Shifts, 1)
		assert.Equal(t, "2024-06-15", detail.Shifts[0].Date)
		assert.Equal(t, "09:00:00", detail.Shifts[0].StartTime)
		assert.Nil(t, detail.Shifts[0].MaxVolunteers)
		assert.False(t, detail.Shifts[0].IsFull())
	})

	t.Run("EmptyCollections", func(t *testing.T) {
		row := append(organizationRow(2, "Park Friends", now), "[]", "[]")
		mock.ExpectQuery("SELECT (.+) FROM organizations o WHERE o.id = \\$1").
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows(detailCols).AddRow(row...))

		detail, err := repo.GetDetail(ctx, 2)
		require.NoError(t, err)
		assert.NotNil(t, detail.OrganizationReviews)
		assert.Empty(t, detail.OrganizationReviews)
		assert.NotNil(t, detail.Shifts)
		assert.Empty(t, detail.Shifts)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM organizations o WHERE o.id = \\$1").
			WithArgs(int32(999)).
			WillReturnRows(sqlmock.NewRows(detailCols))

		detail, err := repo.GetDetail(ctx, 999)
		assert.NoError(t, err)
		assert.Nil(t, detail)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewOrganizationRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM organizations o WHERE o.id = \\$1").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows(organizationCols).AddRow(organizationRow(1, "Food Bank", now)...))

	org, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, org.ContactEmail)
	assert.Equal(t, "hello@foodbank.example.org", *org.ContactEmail)
}
