package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
)

type archiveStore interface {
	SetArchived(ctx context.Context, entity models.ReportEntity, id string, archived bool) (*models.ArchiveState, error)
}

type passwordVerifier interface {
	VerifyPassword(ctx context.Context, userID, password string) error
}

// ArchiveService toggles the archive flag of a record after confirming the actor's password.
type ArchiveService struct {
	repo      archiveStore
	passwords passwordVerifier
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewArchiveService constructs the archive service.
func NewArchiveService(repo archiveStore, passwords passwordVerifier, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ArchiveService{repo: repo, passwords: passwords, cache: cache, validator: validate, logger: logger}
}

// Archive hides a record from every report.
func (s *ArchiveService) Archive(ctx context.Context, entity models.ReportEntity, id, actorID string, req dto.ArchiveRequest) (*models.ArchiveState, error) {
	return s.set(ctx, entity, id, actorID, req, true)
}

// Unarchive restores a record to the reports.
func (s *ArchiveService) Unarchive(ctx context.Context, entity models.ReportEntity, id, actorID string, req dto.ArchiveRequest) (*models.ArchiveState, error) {
	return s.set(ctx, entity, id, actorID, req, false)
}

func (s *ArchiveService) set(ctx context.Context, entity models.ReportEntity, id, actorID string, req dto.ArchiveRequest, archived bool) (*models.ArchiveState, error) {
	if !entity.Archivable() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "resource not found")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "password confirmation failed",
			map[string]string{"password": "The password field is required."})
	}
	if err := s.passwords.VerifyPassword(ctx, actorID, req.Password); err != nil {
		return nil, err
	}

	state, err := s.repo.SetArchived(ctx, entity, id, archived)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update archive state")
	}

	s.cache.Invalidate(ctx, dashboardCachePattern)
	s.logger.Info("archive state changed",
		zap.String("entity", string(entity)),
		zap.String("id", id),
		zap.Bool("archived", archived),
		zap.String("actor", actorID),
	)
	return state, nil
}
