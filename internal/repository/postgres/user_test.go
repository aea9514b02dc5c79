package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-backend/internal/repository/postgres"
)

var userCols = []string{"id", "full_name", "avatar_url", "bio", "phone_number", "date_of_birth", "created_at", "updated_at",
	"total_hours", "total_shifts", "location", "preferred_causes"}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(1, "Alex Doe", nil, "Loves parks", "555-0100", "1990-04-01", now, now, 12.5, 4, "Springfield", "{environment,\"food security\"}"))

		u, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "Alex Doe", u.FullName)
		assert.Equal(t, 12.5, u.TotalHours)
		assert.Equal(t, int32(4), u.TotalShifts)
		assert.Equal(t, []string{"environment", "food security"}, u.PreferredCauses)
		require.NotNil(t, u.DateOfBirth)
		assert.Equal(t, "1990-04-01", *u.DateOfBirth)
	})

	t.Run("NullCauses", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(2, "Sam Roe", nil, nil, nil, nil, now, now, 0.0, 0, nil, nil))

		u, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Nil(t, u.PreferredCauses)
		assert.Nil(t, u.DateOfBirth)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows(userCols))

		u, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestUserRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "Alex Doe", nil, nil, nil, nil, now, now, 1.0, 1, nil, nil).
			AddRow(2, "Sam Roe", nil, nil, nil, nil, now, now, 0.0, 0, nil, nil))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
