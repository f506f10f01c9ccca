package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestCreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "Ana Rojas", "ana@example.com", sqlmock.AnyArg(), models.RoleClient).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		user := &models.User{
			Name:         "Ana Rojas",
			Email:        "ana@example.com",
			PasswordHash: "$2a$10$hash",
			Role:         models.RoleClient,
		}
		err := repo.Create(user)
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, now, user.CreatedAt)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pqUniqueViolationForTest)

		err := repo.Create(&models.User{
			Name:         "Ana Rojas",
			Email:        "ana@example.com",
			PasswordHash: "$2a$10$hash",
			Role:         models.RoleClient,
		})
		assert.ErrorIs(t, err, models.ErrEmailTaken)
	})
}

func TestGetUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "email", "password_hash", "role", "created_at",
			}).AddRow("user-1", "Ana Rojas", "ana@example.com", "$2a$10$hash", "client", time.Now()))

		user, err := repo.GetByEmail("ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleClient, user.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at`).
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "email", "password_hash", "role", "created_at",
			}))

		_, err := repo.GetByEmail("ghost@example.com")
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}
