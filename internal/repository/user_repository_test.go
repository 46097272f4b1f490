package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

var userRowColumns = []string{"id", "first_name", "middle_name", "last_name", "email", "password_hash", "user_type", "campus_id", "college_id", "created_at", "updated_at"}

func TestFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow("1", "Ana", "Lopez", "Reyes", "admin@example.edu", "hash", string(models.UserTypeAdmin), nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1")).
		WithArgs("Admin@example.edu").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "Admin@example.edu")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez Reyes", user.FullName())
	assert.True(t, user.IsAdmin())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 LIMIT 1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{FirstName: "Ben", LastName: "Tan", Email: "ben@example.edu", PasswordHash: "hash", UserType: models.UserTypeUser}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAuditLog(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	modelType := "projects"
	require.NoError(t, repo.Create(context.Background(), &models.AuditLog{Action: models.AuditActionArchive, ModelType: &modelType}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
