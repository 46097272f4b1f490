package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

const archiveID = "7f0c9a58-6a64-4f4e-9d59-0c1d4f3c2b11"

func TestArchiveRepositorySetArchived(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArchiveRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE international_partners SET is_archived = $2, updated_at = $3 WHERE id = $1")).
		WithArgs(archiveID, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	state, err := repo.SetArchived(context.Background(), models.ReportInternationalPartners, archiveID, true)
	require.NoError(t, err)
	assert.Equal(t, &models.ArchiveState{Entity: models.ReportInternationalPartners, ID: archiveID, IsArchived: true}, state)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRepositoryMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArchiveRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET is_archived")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.SetArchived(context.Background(), models.ReportProjects, archiveID, false)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.SetArchived(context.Background(), models.ReportProjects, "not-a-uuid", true)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRepositoryRejectsFlaglessEntity(t *testing.T) {
	db, _, cleanup := newMock(t)
	defer cleanup()

	_, err := NewArchiveRepository(db).SetArchived(context.Background(), models.ReportResolutions, archiveID, true)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, sql.ErrNoRows)
}
