package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

const (
	monthlyBucketLimit  = 12
	categoryBucketLimit = 10
	dateLayout          = "2006-01-02"
)

type joinClause struct {
	key string
	sql string
}

type rangeFilter struct {
	column string
	bounds func(f models.ReportFilter) (min, max *int64)
}

type equalityFilter struct {
	column string
	value  func(f models.ReportFilter) string
}

type sortKey struct {
	expr  string
	joins []joinClause
}

type sumDefinition struct {
	key    string
	label  string
	column string
}

type breakdownDefinition struct {
	key   string
	title string
	kind  models.BreakdownKind
	expr  string
	joins []joinClause
}

// reportDefinition describes how one entity is filtered, sorted and aggregated.
type reportDefinition struct {
	entity        models.ReportEntity
	table         string
	alias         string
	columns       []string
	scopeJoins    []joinClause
	campusColumn  string
	collegeColumn string
	searchColumns []string
	dateFrom      string
	dateTo        string
	ranges        []rangeFilter
	equalities    []equalityFilter
	sorts         map[string]sortKey
	archivable    bool
	statusFilter  bool
	sums          []sumDefinition
	breakdowns    []breakdownDefinition
	scan          recordScanner
}

// reportQuery is the composed FROM/WHERE/ORDER BY of one report request.
type reportQuery struct {
	def        *reportDefinition
	joins      []joinClause
	sortJoins  []joinClause
	conditions []string
	args       []interface{}
	orderBy    string
}

func (q *reportQuery) bind(value interface{}) string {
	q.args = append(q.args, value)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *reportQuery) where(condition string) {
	q.conditions = append(q.conditions, condition)
}

func appendJoin(joins []joinClause, join joinClause) []joinClause {
	for _, existing := range joins {
		if existing.key == join.key {
			return joins
		}
	}
	return append(joins, join)
}

// composeReportQuery turns a filter into SQL fragments for one entity. Page, export and
// statistics queries are all derived from its result.
func composeReportQuery(def *reportDefinition, filter models.ReportFilter, today time.Time) *reportQuery {
	q := &reportQuery{def: def}
	for _, join := range def.scopeJoins {
		q.joins = appendJoin(q.joins, join)
	}

	if def.archivable {
		q.where(def.alias + ".is_archived = FALSE")
	}

	if term := strings.TrimSpace(filter.Search); term != "" && len(def.searchColumns) > 0 {
		placeholder := q.bind("%" + escapeLike(strings.ToLower(term)) + "%")
		parts := make([]string, len(def.searchColumns))
		for i, column := range def.searchColumns {
			parts[i] = fmt.Sprintf("LOWER(%s) LIKE %s", column, placeholder)
		}
		q.where("(" + strings.Join(parts, " OR ") + ")")
	}

	if filter.CampusID != "" && def.campusColumn != "" {
		q.where(fmt.Sprintf("%s = %s", def.campusColumn, q.bind(filter.CampusID)))
	}
	if filter.CollegeID != "" && def.collegeColumn != "" {
		q.where(fmt.Sprintf("%s = %s", def.collegeColumn, q.bind(filter.CollegeID)))
	}

	if filter.DateFrom != nil && def.dateFrom != "" {
		q.where(fmt.Sprintf("%s >= %s::date", def.dateFrom, q.bind(filter.DateFrom.Format(dateLayout))))
	}
	if filter.DateTo != nil && def.dateTo != "" {
		q.where(fmt.Sprintf("%s < (%s::date + 1)", def.dateTo, q.bind(filter.DateTo.Format(dateLayout))))
	}

	for _, rf := range def.ranges {
		min, max := rf.bounds(filter)
		if min != nil {
			q.where(fmt.Sprintf("COALESCE(%s, 0) >= %s", rf.column, q.bind(*min)))
		}
		if max != nil {
			q.where(fmt.Sprintf("COALESCE(%s, 0) <= %s", rf.column, q.bind(*max)))
		}
	}

	for _, eq := range def.equalities {
		if value := eq.value(filter); value != "" {
			q.where(fmt.Sprintf("%s = %s", eq.column, q.bind(value)))
		}
	}

	if def.statusFilter && knownResolutionStatus(filter.Status) {
		placeholder := q.bind(today.Format(dateLayout))
		q.where(resolutionStatusCondition(def.alias, filter.Status, placeholder))
	}

	key, ok := def.sorts[filter.SortBy]
	if !ok {
		key = sortKey{expr: def.alias + ".created_at"}
	}
	for _, join := range key.joins {
		if !hasJoin(q.joins, join.key) {
			q.sortJoins = appendJoin(q.sortJoins, join)
		}
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	q.orderBy = fmt.Sprintf("%s %s NULLS LAST, %s.id ASC", key.expr, order, def.alias)

	return q
}

func hasJoin(joins []joinClause, key string) bool {
	for _, join := range joins {
		if join.key == key {
			return true
		}
	}
	return false
}

func (q *reportQuery) fromClause(extra ...joinClause) string {
	joins := append([]joinClause{}, q.joins...)
	for _, join := range extra {
		joins = appendJoin(joins, join)
	}
	parts := []string{fmt.Sprintf("FROM %s %s", q.def.table, q.def.alias)}
	for _, join := range joins {
		parts = append(parts, join.sql)
	}
	return strings.Join(parts, " ")
}

func (q *reportQuery) whereClause(extra ...string) string {
	conditions := append(append([]string{}, q.conditions...), extra...)
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

func (q *reportQuery) copyArgs() []interface{} {
	return append([]interface{}{}, q.args...)
}

// selectSQL selects the primary entity's columns only. A nil window returns every row.
func (q *reportQuery) selectSQL(window *models.PageWindow) (string, []interface{}) {
	columns := make([]string, len(q.def.columns))
	for i, column := range q.def.columns {
		columns[i] = q.def.alias + "." + column
	}
	args := q.copyArgs()
	query := fmt.Sprintf("SELECT %s %s%s ORDER BY %s",
		strings.Join(columns, ", "), q.fromClause(q.sortJoins...), q.whereClause(), q.orderBy)
	if window != nil {
		args = append(args, window.Limit, window.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return query, args
}

// summarySQL returns the count, numeric sums and resolution status counts in one row.
func (q *reportQuery) summarySQL(today time.Time) (string, []interface{}) {
	args := q.copyArgs()
	selects := []string{"COUNT(*) AS total"}
	for _, sum := range q.def.sums {
		selects = append(selects, fmt.Sprintf("COALESCE(SUM(COALESCE(%s, 0)), 0) AS sum_%s", sum.column, sum.key))
	}
	if q.def.statusFilter {
		args = append(args, today.Format(dateLayout))
		placeholder := fmt.Sprintf("$%d", len(args))
		for _, status := range models.ResolutionStatuses {
			selects = append(selects, fmt.Sprintf("COUNT(*) FILTER (WHERE %s) AS %s",
				resolutionStatusCondition(q.def.alias, status, placeholder), status))
		}
	}
	return fmt.Sprintf("SELECT %s %s%s", strings.Join(selects, ", "), q.fromClause(), q.whereClause()), args
}

func (q *reportQuery) breakdownSQL(b breakdownDefinition) (string, []interface{}) {
	from := q.fromClause(b.joins...)
	if b.kind == models.BreakdownMonthly {
		return fmt.Sprintf("SELECT to_char(date_trunc('month', %s), 'YYYY-MM') AS label, COUNT(*) AS total %s%s GROUP BY 1 ORDER BY 1 DESC LIMIT %d",
			b.expr, from, q.whereClause(b.expr+" IS NOT NULL"), monthlyBucketLimit), q.copyArgs()
	}
	return fmt.Sprintf("SELECT COALESCE(NULLIF(TRIM(%s), ''), 'Unspecified') AS label, COUNT(*) AS total %s%s GROUP BY 1 ORDER BY total DESC, label ASC LIMIT %d",
		b.expr, from, q.whereClause(), categoryBucketLimit), q.copyArgs()
}

// overallSQL counts the entity ignoring every filter except archive exclusion.
func (q *reportQuery) overallSQL() string {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", q.def.table, q.def.alias)
	if q.def.archivable {
		query += fmt.Sprintf(" WHERE %s.is_archived = FALSE", q.def.alias)
	}
	return query
}

func knownResolutionStatus(status string) bool {
	for _, known := range models.ResolutionStatuses {
		if status == known {
			return true
		}
	}
	return false
}

// resolutionStatusCondition compares at date granularity against the bound "today".
func resolutionStatusCondition(alias, status, today string) string {
	eff := alias + ".year_of_effectivity"
	exp := alias + ".expiration"
	switch status {
	case models.ResolutionActive:
		return fmt.Sprintf("(%s <= %s::date AND %s >= %s::date)", eff, today, exp, today)
	case models.ResolutionExpired:
		return fmt.Sprintf("(%s < %s::date)", exp, today)
	case models.ResolutionExpiringSoon:
		days := int(models.ExpiringSoonWindow.Hours() / 24)
		return fmt.Sprintf("(%s >= %s::date AND %s <= %s::date + %d)", exp, today, exp, today, days)
	case models.ResolutionPending:
		return fmt.Sprintf("(%s > %s::date)", eff, today)
	default:
		return "TRUE"
	}
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
