package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

var composeToday = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func definition(t *testing.T, entity models.ReportEntity) *reportDefinition {
	t.Helper()
	def, ok := newReportDefinitions()[entity]
	require.True(t, ok, "missing definition for %s", entity)
	return def
}

func int64Ptr(v int64) *int64 { return &v }

func TestComposeDefaultsExcludeArchivedAndSortByCreatedAt(t *testing.T) {
	q := composeReportQuery(definition(t, models.ReportProjects), models.ReportFilter{}, composeToday)

	query, args := q.selectSQL(&models.PageWindow{Limit: 25, Offset: 50})
	assert.Equal(t, "SELECT p.id, p.name, p.description, p.leader, p.members, p.agency_partner, p.category, p.start_date, p.end_date, "+
		"p.campus_college_id, p.user_id, p.is_archived, p.created_at, p.updated_at "+
		"FROM projects p INNER JOIN campus_colleges cc ON cc.id = p.campus_college_id "+
		"WHERE p.is_archived = FALSE ORDER BY p.created_at DESC NULLS LAST, p.id ASC LIMIT $1 OFFSET $2", query)
	assert.Equal(t, []interface{}{25, 50}, args)
}

func TestComposeUnpaginatedSharesPredicate(t *testing.T) {
	filter := models.ReportFilter{Search: "solar", CampusID: "c-1", Category: "Energy"}
	q := composeReportQuery(definition(t, models.ReportProjects), filter, composeToday)

	paged, pagedArgs := q.selectSQL(&models.PageWindow{Limit: 25})
	all, allArgs := q.selectSQL(nil)

	assert.Equal(t, paged, all+" LIMIT $4 OFFSET $5")
	assert.Equal(t, allArgs, pagedArgs[:len(allArgs)])
}

func TestComposeUnknownSortFallsBack(t *testing.T) {
	q := composeReportQuery(definition(t, models.ReportAwards), models.ReportFilter{SortBy: "bogus_field", SortOrder: "sideways"}, composeToday)
	assert.Equal(t, "a.created_at DESC NULLS LAST, a.id ASC", q.orderBy)
	assert.Empty(t, q.sortJoins)
}

func TestComposeSearchEscapesWildcards(t *testing.T) {
	q := composeReportQuery(definition(t, models.ReportAwards), models.ReportFilter{Search: "  50%_Off "}, composeToday)

	require.Len(t, q.conditions, 2)
	assert.Equal(t, "(LOWER(a.award_name) LIKE $1 OR LOWER(a.description) LIKE $1 OR LOWER(a.awarding_body) LIKE $1 "+
		"OR LOWER(a.people_involved) LIKE $1 OR LOWER(a.level) LIKE $1)", q.conditions[1])
	assert.Equal(t, []interface{}{`%50\%\_off%`}, q.args)
}

func TestComposeNestedScopeTraversesProject(t *testing.T) {
	q := composeReportQuery(definition(t, models.ReportModalities),
		models.ReportFilter{CampusID: "campus-1", CollegeID: "college-1", SortBy: "project_name", SortOrder: "asc"}, composeToday)

	assert.Equal(t, "FROM modalities m INNER JOIN projects pj ON pj.id = m.project_id "+
		"INNER JOIN campus_colleges cc ON cc.id = pj.campus_college_id", q.fromClause(q.sortJoins...))
	assert.Equal(t, " WHERE m.is_archived = FALSE AND cc.campus_id = $1 AND cc.college_id = $2", q.whereClause())
	assert.Equal(t, "pj.name ASC NULLS LAST, m.id ASC", q.orderBy)
	assert.Equal(t, []interface{}{"campus-1", "college-1"}, q.args)
}

func TestComposeJoinedSortStaysOutOfAggregates(t *testing.T) {
	q := composeReportQuery(definition(t, models.ReportProjects), models.ReportFilter{SortBy: "campus"}, composeToday)

	query, _ := q.selectSQL(nil)
	assert.Contains(t, query, "LEFT JOIN campuses cp ON cp.id = cc.campus_id")
	assert.Contains(t, query, "ORDER BY cp.name DESC NULLS LAST, p.id ASC")
	assert.NotContains(t, query, "cp.name,")

	summary, _ := q.summarySQL(composeToday)
	assert.NotContains(t, summary, "campuses")
}

func TestComposeDateRangeCoversWholeDay(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	q := composeReportQuery(definition(t, models.ReportProjects), models.ReportFilter{DateFrom: &from, DateTo: &to}, composeToday)

	assert.Equal(t, []string{
		"p.is_archived = FALSE",
		"p.start_date >= $1::date",
		"COALESCE(p.end_date, p.start_date) < ($2::date + 1)",
	}, q.conditions)
	assert.Equal(t, []interface{}{"2024-01-01", "2024-03-31"}, q.args)
}

func TestComposeInvertedRangeKeepsBothBounds(t *testing.T) {
	filter := models.ReportFilter{DirectMin: int64Ptr(1000), DirectMax: int64Ptr(10)}
	q := composeReportQuery(definition(t, models.ReportImpactAssessments), filter, composeToday)

	assert.Equal(t, []string{
		"ia.is_archived = FALSE",
		"COALESCE(ia.num_direct_beneficiary, 0) >= $1",
		"COALESCE(ia.num_direct_beneficiary, 0) <= $2",
	}, q.conditions)
	assert.Equal(t, []interface{}{int64(1000), int64(10)}, q.args)
}

func TestComposeEntitiesWithoutArchiveFlag(t *testing.T) {
	for _, entity := range []models.ReportEntity{models.ReportUsers, models.ReportAuditLogs, models.ReportResolutions} {
		q := composeReportQuery(definition(t, entity), models.ReportFilter{}, composeToday)
		assert.Empty(t, q.conditions, entity)
		assert.NotContains(t, q.overallSQL(), "is_archived", entity)
	}
}

func TestComposeUserFiltersOwnColumns(t *testing.T) {
	q := composeReportQuery(definition(t, models.ReportUsers),
		models.ReportFilter{CampusID: "campus-1", UserType: "admin", SortBy: "college"}, composeToday)

	assert.Equal(t, " WHERE u.campus_id = $1 AND u.user_type = $2", q.whereClause())
	assert.Equal(t, "FROM users u LEFT JOIN colleges ucl ON ucl.id = u.college_id", q.fromClause(q.sortJoins...))
}

func TestComposeResolutionStatusFilter(t *testing.T) {
	def := definition(t, models.ReportResolutions)

	q := composeReportQuery(def, models.ReportFilter{Status: models.ResolutionActive, CampusID: "ignored"}, composeToday)
	assert.Equal(t, []string{"(r.year_of_effectivity <= $1::date AND r.expiration >= $1::date)"}, q.conditions)
	assert.Equal(t, []interface{}{"2024-06-01"}, q.args)

	q = composeReportQuery(def, models.ReportFilter{Status: "archived"}, composeToday)
	assert.Empty(t, q.conditions)
}

func TestResolutionStatusConditions(t *testing.T) {
	assert.Equal(t, "(r.expiration < $3::date)", resolutionStatusCondition("r", models.ResolutionExpired, "$3"))
	assert.Equal(t, "(r.expiration >= $3::date AND r.expiration <= $3::date + 30)", resolutionStatusCondition("r", models.ResolutionExpiringSoon, "$3"))
	assert.Equal(t, "(r.year_of_effectivity > $3::date)", resolutionStatusCondition("r", models.ResolutionPending, "$3"))
}

func TestSummarySQLBindsTodayAfterFilters(t *testing.T) {
	q := composeReportQuery(definition(t, models.ReportResolutions), models.ReportFilter{Search: "moa"}, composeToday)

	query, args := q.summarySQL(composeToday)
	assert.Equal(t, "SELECT COUNT(*) AS total, "+
		"COUNT(*) FILTER (WHERE (r.year_of_effectivity <= $2::date AND r.expiration >= $2::date)) AS active, "+
		"COUNT(*) FILTER (WHERE (r.expiration < $2::date)) AS expired, "+
		"COUNT(*) FILTER (WHERE (r.expiration >= $2::date AND r.expiration <= $2::date + 30)) AS expiring_soon, "+
		"COUNT(*) FILTER (WHERE (r.year_of_effectivity > $2::date)) AS pending "+
		"FROM resolutions r WHERE (LOWER(r.resolution_number) LIKE $1 OR LOWER(r.partner_agency) LIKE $1 OR LOWER(r.description) LIKE $1)", query)
	assert.Equal(t, []interface{}{"%moa%", "2024-06-01"}, args)
	assert.Len(t, q.args, 1)
}

func TestSummarySQLSumsNumericColumns(t *testing.T) {
	q := composeReportQuery(definition(t, models.ReportInternationalPartners), models.ReportFilter{}, composeToday)

	query, _ := q.summarySQL(composeToday)
	assert.Equal(t, "SELECT COUNT(*) AS total, "+
		"COALESCE(SUM(COALESCE(ip.number_of_participants, 0)), 0) AS sum_participants, "+
		"COALESCE(SUM(COALESCE(ip.number_of_committee, 0)), 0) AS sum_committee "+
		"FROM international_partners ip INNER JOIN campus_colleges cc ON cc.id = ip.campus_college_id WHERE ip.is_archived = FALSE", query)
}

func TestBreakdownSQL(t *testing.T) {
	def := definition(t, models.ReportProjects)
	q := composeReportQuery(def, models.ReportFilter{}, composeToday)

	monthly, _ := q.breakdownSQL(def.breakdowns[0])
	assert.Equal(t, "SELECT to_char(date_trunc('month', p.start_date), 'YYYY-MM') AS label, COUNT(*) AS total "+
		"FROM projects p INNER JOIN campus_colleges cc ON cc.id = p.campus_college_id "+
		"WHERE p.is_archived = FALSE AND p.start_date IS NOT NULL GROUP BY 1 ORDER BY 1 DESC LIMIT 12", monthly)

	byCampus, _ := q.breakdownSQL(def.breakdowns[3])
	assert.Equal(t, "SELECT COALESCE(NULLIF(TRIM(cp.name), ''), 'Unspecified') AS label, COUNT(*) AS total "+
		"FROM projects p INNER JOIN campus_colleges cc ON cc.id = p.campus_college_id LEFT JOIN campuses cp ON cp.id = cc.campus_id "+
		"WHERE p.is_archived = FALSE GROUP BY 1 ORDER BY total DESC, label ASC LIMIT 10", byCampus)
}

func TestEveryEntityHasDefinition(t *testing.T) {
	defs := newReportDefinitions()
	for _, entity := range models.ReportEntities {
		def, ok := defs[entity]
		require.True(t, ok, entity)
		assert.Equal(t, entity.Archivable(), def.archivable, entity)
		assert.GreaterOrEqual(t, len(def.searchColumns), 3, entity)
		assert.LessOrEqual(t, len(def.searchColumns), 6, entity)
		assert.Contains(t, def.sorts, "created_at", entity)
		assert.NotNil(t, def.scan, entity)
	}
}

func TestComposeProjectDateToFallsBackToStartDate(t *testing.T) {
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	q := composeReportQuery(definition(t, models.ReportProjects), models.ReportFilter{DateTo: &to}, composeToday)

	assert.Contains(t, q.conditions, "COALESCE(p.end_date, p.start_date) < ($1::date + 1)")
	assert.Equal(t, []interface{}{"2024-03-31"}, q.args)
}
