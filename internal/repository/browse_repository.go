package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

// scopedCountColumns counts non-archived records per campus college; %s is the campus_colleges predicate.
const scopedCountColumns = `(SELECT COUNT(*) FROM projects p JOIN campus_colleges cc ON cc.id = p.campus_college_id WHERE %[1]s AND p.is_archived = FALSE) AS projects,
	(SELECT COUNT(*) FROM awards a JOIN campus_colleges cc ON cc.id = a.campus_college_id WHERE %[1]s AND a.is_archived = FALSE) AS awards,
	(SELECT COUNT(*) FROM international_partners ip JOIN campus_colleges cc ON cc.id = ip.campus_college_id WHERE %[1]s AND ip.is_archived = FALSE) AS international_partners,
	(SELECT COUNT(*) FROM modalities m JOIN projects pj ON pj.id = m.project_id JOIN campus_colleges cc ON cc.id = pj.campus_college_id WHERE %[1]s AND m.is_archived = FALSE) AS modalities,
	(SELECT COUNT(*) FROM impact_assessments ia JOIN projects pj ON pj.id = ia.project_id JOIN campus_colleges cc ON cc.id = pj.campus_college_id WHERE %[1]s AND ia.is_archived = FALSE) AS impact_assessments`

// BrowseRepository reads the campus to college hierarchy with record counts.
type BrowseRepository struct {
	db *sqlx.DB
}

// NewBrowseRepository constructs a browse repository.
func NewBrowseRepository(db *sqlx.DB) *BrowseRepository {
	return &BrowseRepository{db: db}
}

// Campuses lists every campus with its scoped record counts, ordered by name.
func (r *BrowseRepository) Campuses(ctx context.Context) ([]models.CampusSummary, error) {
	query := fmt.Sprintf(`SELECT c.id, c.name, %s FROM campuses c ORDER BY c.name ASC, c.id ASC`,
		fmt.Sprintf(scopedCountColumns, "cc.campus_id = c.id"))
	summaries := []models.CampusSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list campus summaries: %w", err)
	}
	return summaries, nil
}

// Colleges lists the colleges offered on a campus with their record counts, ordered by name.
func (r *BrowseRepository) Colleges(ctx context.Context, campusID string) ([]models.CollegeSummary, error) {
	query := fmt.Sprintf(`SELECT cl.id, cl.name, x.id AS campus_college_id, %s FROM campus_colleges x JOIN colleges cl ON cl.id = x.college_id WHERE x.campus_id = $1 ORDER BY cl.name ASC, cl.id ASC`,
		fmt.Sprintf(scopedCountColumns, "cc.id = x.id"))
	summaries := []models.CollegeSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, campusID); err != nil {
		return nil, fmt.Errorf("list college summaries: %w", err)
	}
	return summaries, nil
}

// Offers reports whether a college is offered on a campus. Malformed identifiers are never offered.
func (r *BrowseRepository) Offers(ctx context.Context, campusID, collegeID string) (bool, error) {
	for _, id := range []string{campusID, collegeID} {
		if _, err := uuid.Parse(id); err != nil {
			return false, nil
		}
	}
	const query = `SELECT EXISTS(SELECT 1 FROM campus_colleges WHERE campus_id = $1 AND college_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, campusID, collegeID); err != nil {
		return false, fmt.Errorf("check campus college: %w", err)
	}
	return exists, nil
}
