package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

type recordScanner func(ctx context.Context, q sqlx.QueryerContext, query string, args []interface{}) ([]models.ReportRecord, error)

// relationQueryer is satisfied by *sqlx.DB and *sqlx.Tx.
type relationQueryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

func scanRecords[T any, PT interface {
	*T
	models.ReportRecord
}](ctx context.Context, q sqlx.QueryerContext, query string, args []interface{}) ([]models.ReportRecord, error) {
	var rows []T
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}
	records := make([]models.ReportRecord, len(rows))
	for i := range rows {
		records[i] = PT(&rows[i])
	}
	return records, nil
}

// ReportRepository reads report rows, relations and aggregates.
type ReportRepository struct {
	db   *sqlx.DB
	defs map[models.ReportEntity]*reportDefinition
}

// NewReportRepository constructs a report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db, defs: newReportDefinitions()}
}

// Supports reports whether an entity has a report definition.
func (r *ReportRepository) Supports(entity models.ReportEntity) bool {
	_, ok := r.defs[entity]
	return ok
}

// Fetch reads the filtered rows, their relations and the aggregates of the full filtered set
// inside one read-only repeatable-read transaction.
func (r *ReportRepository) Fetch(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter, window *models.PageWindow, today time.Time) (*models.ReportSnapshot, error) {
	def, ok := r.defs[entity]
	if !ok {
		return nil, fmt.Errorf("unknown report %q", entity)
	}
	q := composeReportQuery(def, filter, today)

	var snapshot models.ReportSnapshot
	err := r.snapshot(ctx, func(tx *sqlx.Tx) error {
		query, args := q.selectSQL(window)
		records, err := def.scan(ctx, tx, query, args)
		if err != nil {
			return fmt.Errorf("select %s: %w", entity, err)
		}
		if err := loadRelations(ctx, tx, records); err != nil {
			return err
		}
		aggregates, err := r.aggregate(ctx, tx, q, today)
		if err != nil {
			return err
		}
		snapshot.Records = records
		snapshot.Aggregates = *aggregates
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Statistics returns only the aggregates for the filter.
func (r *ReportRepository) Statistics(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter, today time.Time) (*models.ReportAggregates, error) {
	def, ok := r.defs[entity]
	if !ok {
		return nil, fmt.Errorf("unknown report %q", entity)
	}
	q := composeReportQuery(def, filter, today)

	var aggregates *models.ReportAggregates
	err := r.snapshot(ctx, func(tx *sqlx.Tx) error {
		var err error
		aggregates, err = r.aggregate(ctx, tx, q, today)
		return err
	})
	if err != nil {
		return nil, err
	}
	return aggregates, nil
}

func (r *ReportRepository) snapshot(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin report snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report snapshot: %w", err)
	}
	return nil
}

func (r *ReportRepository) aggregate(ctx context.Context, tx *sqlx.Tx, q *reportQuery, today time.Time) (*models.ReportAggregates, error) {
	def := q.def
	out := &models.ReportAggregates{}

	query, args := q.summarySQL(today)
	sums := make([]int64, len(def.sums))
	dest := []interface{}{&out.Total}
	for i := range sums {
		dest = append(dest, &sums[i])
	}
	var statuses models.ResolutionStatusCounts
	if def.statusFilter {
		dest = append(dest, &statuses.Active, &statuses.Expired, &statuses.ExpiringSoon, &statuses.Pending)
	}
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(dest...); err != nil {
		return nil, fmt.Errorf("summarise %s: %w", def.entity, err)
	}
	for i, sum := range def.sums {
		out.Sums = append(out.Sums, models.NumericAggregate{Key: sum.key, Label: sum.label, Sum: sums[i]})
	}
	if def.statusFilter {
		out.Statuses = &statuses
	}

	for _, b := range def.breakdowns {
		query, args := q.breakdownSQL(b)
		buckets := []models.Bucket{}
		if err := sqlx.SelectContext(ctx, tx, &buckets, query, args...); err != nil {
			return nil, fmt.Errorf("breakdown %s %s: %w", def.entity, b.key, err)
		}
		out.Breakdowns = append(out.Breakdowns, models.Breakdown{Key: b.key, Title: b.title, Kind: b.kind, Buckets: buckets})
	}

	if err := tx.GetContext(ctx, &out.Overall, q.overallSQL()); err != nil {
		return nil, fmt.Errorf("count all %s: %w", def.entity, err)
	}
	return out, nil
}

const (
	relationUsersQuery          = `SELECT id, first_name, middle_name, last_name, email, user_type, campus_id, college_id, created_at, updated_at FROM users WHERE id IN (?)`
	relationProjectsQuery       = `SELECT id, name, category, campus_college_id, user_id, is_archived, created_at, updated_at FROM projects WHERE id IN (?)`
	relationCampusCollegesQuery = `SELECT cc.id, cc.campus_id, cc.college_id, cp.name AS campus_name, cl.name AS college_name FROM campus_colleges cc JOIN campuses cp ON cp.id = cc.campus_id JOIN colleges cl ON cl.id = cc.college_id WHERE cc.id IN (?)`
	relationCampusesQuery       = `SELECT id, name, logo, created_at, updated_at FROM campuses WHERE id IN (?)`
	relationCollegesQuery       = `SELECT id, name, logo, created_at, updated_at FROM colleges WHERE id IN (?)`
)

// loadRelations resolves display relations with one IN query per relation type.
func loadRelations(ctx context.Context, q relationQueryer, records []models.ReportRecord) error {
	if len(records) == 0 {
		return nil
	}

	collect := func(pick func(models.RelationKeys) *string) []string {
		var ids []string
		for _, record := range records {
			if id := pick(record.RelationKeys()); id != nil {
				ids = append(ids, *id)
			}
		}
		return uniqueSorted(ids)
	}

	users, err := loadByIDs(ctx, q, relationUsersQuery, collect(func(k models.RelationKeys) *string { return k.UserID }),
		func(u *models.User) string { return u.ID })
	if err != nil {
		return fmt.Errorf("load owners: %w", err)
	}
	projects, err := loadByIDs(ctx, q, relationProjectsQuery, collect(func(k models.RelationKeys) *string { return k.ProjectID }),
		func(p *models.Project) string { return p.ID })
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}

	var campusCollegeIDs []string
	for _, record := range records {
		keys := record.RelationKeys()
		switch {
		case keys.CampusCollegeID != nil:
			campusCollegeIDs = append(campusCollegeIDs, *keys.CampusCollegeID)
		case keys.ProjectID != nil:
			if project, ok := projects[*keys.ProjectID]; ok {
				campusCollegeIDs = append(campusCollegeIDs, project.CampusCollegeID)
			}
		}
	}
	campusColleges, err := loadByIDs(ctx, q, relationCampusCollegesQuery, uniqueSorted(campusCollegeIDs),
		func(cc *models.CampusCollege) string { return cc.ID })
	if err != nil {
		return fmt.Errorf("load campus colleges: %w", err)
	}
	campuses, err := loadByIDs(ctx, q, relationCampusesQuery, collect(func(k models.RelationKeys) *string { return k.CampusID }),
		func(c *models.Campus) string { return c.ID })
	if err != nil {
		return fmt.Errorf("load campuses: %w", err)
	}
	colleges, err := loadByIDs(ctx, q, relationCollegesQuery, collect(func(k models.RelationKeys) *string { return k.CollegeID }),
		func(c *models.College) string { return c.ID })
	if err != nil {
		return fmt.Errorf("load colleges: %w", err)
	}

	for _, record := range records {
		keys := record.RelationKeys()
		rel := record.Related()
		if keys.UserID != nil {
			rel.Owner = users[*keys.UserID]
		}
		if keys.ProjectID != nil {
			rel.Project = projects[*keys.ProjectID]
		}
		switch {
		case keys.CampusCollegeID != nil:
			rel.CampusCollege = campusColleges[*keys.CampusCollegeID]
		case rel.Project != nil:
			rel.CampusCollege = campusColleges[rel.Project.CampusCollegeID]
		}
		if keys.CampusID != nil {
			rel.Campus = campuses[*keys.CampusID]
		}
		if keys.CollegeID != nil {
			rel.College = colleges[*keys.CollegeID]
		}
	}
	return nil
}

func loadByIDs[T any](ctx context.Context, q relationQueryer, query string, ids []string, key func(*T) string) (map[string]*T, error) {
	out := make(map[string]*T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	for i := range rows {
		out[key(&rows[i])] = &rows[i]
	}
	return out, nil
}

func uniqueSorted(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
