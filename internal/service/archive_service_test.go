package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
)

type archiveStoreStub struct {
	err   error
	calls int
	last  bool
}

func (s *archiveStoreStub) SetArchived(_ context.Context, entity models.ReportEntity, id string, archived bool) (*models.ArchiveState, error) {
	s.calls++
	s.last = archived
	if s.err != nil {
		return nil, s.err
	}
	return &models.ArchiveState{Entity: entity, ID: id, IsArchived: archived}, nil
}

type passwordVerifierStub struct {
	err error
}

func (p passwordVerifierStub) VerifyPassword(context.Context, string, string) error {
	return p.err
}

func newTestArchiveService(store *archiveStoreStub, verifier passwordVerifierStub, cacheRepo *stubCacheRepo) *ArchiveService {
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	return NewArchiveService(store, verifier, cache, nil, zap.NewNop())
}

func TestArchiveServiceArchivesAndInvalidatesDashboard(t *testing.T) {
	store := &archiveStoreStub{}
	cacheRepo := &stubCacheRepo{store: map[string][]byte{dashboardCacheKey: []byte(`{}`)}}
	svc := newTestArchiveService(store, passwordVerifierStub{}, cacheRepo)

	state, err := svc.Archive(context.Background(), models.ReportAwards, "award-1", "admin-1", dto.ArchiveRequest{Password: "secret"})
	require.NoError(t, err)
	assert.True(t, state.IsArchived)
	assert.True(t, store.last)
	assert.Equal(t, []string{dashboardCachePattern}, cacheRepo.patterns)

	state, err = svc.Unarchive(context.Background(), models.ReportAwards, "award-1", "admin-1", dto.ArchiveRequest{Password: "secret"})
	require.NoError(t, err)
	assert.False(t, state.IsArchived)
}

func TestArchiveServiceRequiresPassword(t *testing.T) {
	store := &archiveStoreStub{}
	svc := newTestArchiveService(store, passwordVerifierStub{}, &stubCacheRepo{})

	_, err := svc.Archive(context.Background(), models.ReportProjects, "p-1", "admin-1", dto.ArchiveRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "password")
	assert.Zero(t, store.calls)
}

func TestArchiveServiceWrongPasswordLeavesRecord(t *testing.T) {
	store := &archiveStoreStub{}
	mismatch := appErrors.WithDetails(appErrors.ErrValidation, "password confirmation failed", map[string]string{"password": "incorrect"})
	svc := newTestArchiveService(store, passwordVerifierStub{err: mismatch}, &stubCacheRepo{})

	_, err := svc.Archive(context.Background(), models.ReportProjects, "p-1", "admin-1", dto.ArchiveRequest{Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Zero(t, store.calls)
}

func TestArchiveServiceMissingRecord(t *testing.T) {
	svc := newTestArchiveService(&archiveStoreStub{err: sql.ErrNoRows}, passwordVerifierStub{}, &stubCacheRepo{})

	_, err := svc.Archive(context.Background(), models.ReportModalities, "missing", "admin-1", dto.ArchiveRequest{Password: "secret"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestArchiveServiceRejectsNonArchivable(t *testing.T) {
	store := &archiveStoreStub{}
	svc := newTestArchiveService(store, passwordVerifierStub{}, &stubCacheRepo{})

	_, err := svc.Archive(context.Background(), models.ReportResolutions, "r-1", "admin-1", dto.ArchiveRequest{Password: "secret"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Zero(t, store.calls)
}

func TestArchiveServiceStoreFailure(t *testing.T) {
	svc := newTestArchiveService(&archiveStoreStub{err: errors.New("deadlock")}, passwordVerifierStub{}, &stubCacheRepo{})

	_, err := svc.Archive(context.Background(), models.ReportProjects, "p-1", "admin-1", dto.ArchiveRequest{Password: "secret"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
