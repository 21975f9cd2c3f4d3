package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user := &models.User{
			ID:           uuid.New(),
			Username:     "meena",
			Name:         "Meena Iyer",
			Email:        "meena@example.com",
			PasswordHash: "$2a$12$hash",
			Roles:        pq.StringArray{models.RoleHousekeeping},
			IsActive:     true,
			CreatedBy:    "admin",
			CreatedAt:    time.Now(),
		}

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(user.ID, "meena", "Meena Iyer", "meena@example.com", nil, "$2a$12$hash",
				sqlmock.AnyArg(), true, "admin", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CreateUser(ctx, user)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Username: "meena"}

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.CreateUser(ctx, user)
		assert.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		user := &models.User{ID: uuid.New(), Username: "meena"}

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.CreateUser(ctx, user)
		assert.Error(t, err)
		assert.False(t, IsUniqueViolation(err))
		assert.Contains(t, err.Error(), "failed to create user")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByID(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user := models.User{
			ID:        uuid.New(),
			Username:  "meena",
			Name:      "Meena Iyer",
			Email:     "meena@example.com",
			Roles:     pq.StringArray{models.RoleHousekeeping, models.RoleStaff},
			IsActive:  true,
			CreatedBy: "admin",
			CreatedAt: time.Now(),
		}

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1 AND is_deleted = FALSE`).
			WithArgs(user.ID).
			WillReturnRows(testutil.UserRows(user))

		got, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "meena", got.Username)
		assert.True(t, got.HasRole(models.RoleHousekeeping))
		assert.False(t, got.HasRole(models.RoleAdmin))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User Not Found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(testutil.UserRows())

		got, err := repo.GetUserByID(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteUser(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewUserRepository(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE users SET is_deleted = TRUE`).
		WithArgs(id, "admin", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteUser(context.Background(), id, "admin")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
