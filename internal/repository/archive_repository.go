package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

var archiveTables = map[models.ReportEntity]string{
	models.ReportProjects:              "projects",
	models.ReportAwards:                "awards",
	models.ReportInternationalPartners: "international_partners",
	models.ReportModalities:            "modalities",
	models.ReportImpactAssessments:     "impact_assessments",
}

// ArchiveRepository flips the is_archived flag of archivable records.
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository constructs the repository.
func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// SetArchived updates a single row and returns sql.ErrNoRows when it does not exist.
func (r *ArchiveRepository) SetArchived(ctx context.Context, entity models.ReportEntity, id string, archived bool) (*models.ArchiveState, error) {
	table, ok := archiveTables[entity]
	if !ok {
		return nil, fmt.Errorf("%s cannot be archived", entity)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}

	query := fmt.Sprintf(`UPDATE %s SET is_archived = $2, updated_at = $3 WHERE id = $1`, table)
	result, err := r.db.ExecContext(ctx, query, id, archived, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", entity, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("archive %s rows affected: %w", entity, err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return &models.ArchiveState{Entity: entity, ID: id, IsArchived: archived}, nil
}
