package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

// LookupTable names a table that identifier filters may reference.
type LookupTable string

const (
	LookupCampuses LookupTable = "campuses"
	LookupColleges LookupTable = "colleges"
	LookupProjects LookupTable = "projects"
	LookupUsers    LookupTable = "users"
)

// LookupRepository serves filter option lists and identifier checks.
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository constructs a lookup repository.
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// Campuses returns every campus ordered by name.
func (r *LookupRepository) Campuses(ctx context.Context) ([]models.Option, error) {
	return r.options(ctx, "campuses", `SELECT id, name FROM campuses ORDER BY name ASC, id ASC`)
}

// Colleges returns every college ordered by name.
func (r *LookupRepository) Colleges(ctx context.Context) ([]models.Option, error) {
	return r.options(ctx, "colleges", `SELECT id, name FROM colleges ORDER BY name ASC, id ASC`)
}

// Projects returns the non-archived projects ordered by name.
func (r *LookupRepository) Projects(ctx context.Context) ([]models.Option, error) {
	return r.options(ctx, "projects", `SELECT id, name FROM projects WHERE is_archived = FALSE ORDER BY name ASC, id ASC`)
}

// Users returns every user ordered by last name then first name.
func (r *LookupRepository) Users(ctx context.Context) ([]models.Option, error) {
	return r.options(ctx, "users", `SELECT id, TRIM(first_name || ' ' || last_name) AS name FROM users ORDER BY last_name ASC, first_name ASC, id ASC`)
}

func (r *LookupRepository) options(ctx context.Context, name, query string) ([]models.Option, error) {
	options := []models.Option{}
	if err := r.db.SelectContext(ctx, &options, query); err != nil {
		return nil, fmt.Errorf("list %s options: %w", name, err)
	}
	return options, nil
}

// Exists reports whether id resolves to a row. Malformed identifiers never resolve.
func (r *LookupRepository) Exists(ctx context.Context, table LookupTable, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	switch table {
	case LookupCampuses, LookupColleges, LookupProjects, LookupUsers:
	default:
		return false, fmt.Errorf("unknown lookup table %q", table)
	}
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", table)
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("lookup %s: %w", table, err)
	}
	return exists, nil
}
