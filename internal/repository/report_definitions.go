package repository

import (
	"github.com/noah-isme/ttms-admin-api/internal/models"
)

func campusCollegeJoin(alias string) joinClause {
	return joinClause{key: "cc", sql: "INNER JOIN campus_colleges cc ON cc.id = " + alias + ".campus_college_id"}
}

func projectScopeJoins(alias string) []joinClause {
	return []joinClause{
		{key: "pj", sql: "INNER JOIN projects pj ON pj.id = " + alias + ".project_id"},
		{key: "cc", sql: "INNER JOIN campus_colleges cc ON cc.id = pj.campus_college_id"},
	}
}

func ownerJoin(alias string) joinClause {
	return joinClause{key: "ou", sql: "LEFT JOIN users ou ON ou.id = " + alias + ".user_id"}
}

var (
	campusJoin  = joinClause{key: "cp", sql: "LEFT JOIN campuses cp ON cp.id = cc.campus_id"}
	collegeJoin = joinClause{key: "cl", sql: "LEFT JOIN colleges cl ON cl.id = cc.college_id"}
)

// scopedSorts are the sort keys shared by every entity scoped through campus_colleges.
func scopedSorts(alias string, own map[string]string) map[string]sortKey {
	sorts := map[string]sortKey{
		"created_at": {expr: alias + ".created_at"},
		"campus":     {expr: "cp.name", joins: []joinClause{campusJoin}},
		"college":    {expr: "cl.name", joins: []joinClause{collegeJoin}},
		"user":       {expr: "ou.last_name", joins: []joinClause{ownerJoin(alias)}},
	}
	for key, column := range own {
		sorts[key] = sortKey{expr: alias + "." + column}
	}
	return sorts
}

func campusBreakdown() breakdownDefinition {
	return breakdownDefinition{key: "campus", title: "By Campus", kind: models.BreakdownCategory, expr: "cp.name", joins: []joinClause{campusJoin}}
}

func userIDFilter(alias string) equalityFilter {
	return equalityFilter{column: alias + ".user_id", value: func(f models.ReportFilter) string { return f.UserID }}
}

func newReportDefinitions() map[models.ReportEntity]*reportDefinition {
	defs := []*reportDefinition{
		{
			entity: models.ReportProjects,
			table:  "projects",
			alias:  "p",
			columns: []string{"id", "name", "description", "leader", "members", "agency_partner", "category",
				"start_date", "end_date", "campus_college_id", "user_id", "is_archived", "created_at", "updated_at"},
			scopeJoins:    []joinClause{campusCollegeJoin("p")},
			campusColumn:  "cc.campus_id",
			collegeColumn: "cc.college_id",
			searchColumns: []string{"p.name", "p.description", "p.leader", "p.members", "p.agency_partner", "p.category"},
			dateFrom:      "p.start_date",
			dateTo:        "COALESCE(p.end_date, p.start_date)",
			equalities: []equalityFilter{
				{column: "p.category", value: func(f models.ReportFilter) string { return f.Category }},
				userIDFilter("p"),
			},
			sorts: scopedSorts("p", map[string]string{
				"name": "name", "leader": "leader", "category": "category",
				"agency_partner": "agency_partner", "start_date": "start_date", "end_date": "end_date",
			}),
			archivable: true,
			breakdowns: []breakdownDefinition{
				{key: "start_month", title: "Projects by Start Month", kind: models.BreakdownMonthly, expr: "p.start_date"},
				{key: "category", title: "By Category", kind: models.BreakdownCategory, expr: "p.category"},
				{key: "agency_partner", title: "By Agency Partner", kind: models.BreakdownCategory, expr: "p.agency_partner"},
				campusBreakdown(),
			},
			scan: scanRecords[models.Project, *models.Project],
		},
		{
			entity: models.ReportAwards,
			table:  "awards",
			alias:  "a",
			columns: []string{"id", "award_name", "description", "awarding_body", "people_involved", "level",
				"date_received", "campus_college_id", "user_id", "is_archived", "created_at", "updated_at"},
			scopeJoins:    []joinClause{campusCollegeJoin("a")},
			campusColumn:  "cc.campus_id",
			collegeColumn: "cc.college_id",
			searchColumns: []string{"a.award_name", "a.description", "a.awarding_body", "a.people_involved", "a.level"},
			dateFrom:      "a.date_received",
			dateTo:        "a.date_received",
			equalities: []equalityFilter{
				{column: "a.level", value: func(f models.ReportFilter) string { return f.Category }},
				userIDFilter("a"),
			},
			sorts: scopedSorts("a", map[string]string{
				"award_name": "award_name", "awarding_body": "awarding_body", "level": "level", "date_received": "date_received",
			}),
			archivable: true,
			breakdowns: []breakdownDefinition{
				{key: "received_month", title: "Awards by Month Received", kind: models.BreakdownMonthly, expr: "a.date_received"},
				{key: "level", title: "By Level", kind: models.BreakdownCategory, expr: "a.level"},
				{key: "awarding_body", title: "By Awarding Body", kind: models.BreakdownCategory, expr: "a.awarding_body"},
				campusBreakdown(),
			},
			scan: scanRecords[models.Award, *models.Award],
		},
		{
			entity: models.ReportInternationalPartners,
			table:  "international_partners",
			alias:  "ip",
			columns: []string{"id", "agency_partner", "location", "activity_conducted", "narrative", "start_date", "end_date",
				"number_of_participants", "number_of_committee", "campus_college_id", "user_id", "is_archived", "created_at", "updated_at"},
			scopeJoins:    []joinClause{campusCollegeJoin("ip")},
			campusColumn:  "cc.campus_id",
			collegeColumn: "cc.college_id",
			searchColumns: []string{"ip.agency_partner", "ip.location", "ip.activity_conducted", "ip.narrative"},
			dateFrom:      "ip.start_date",
			dateTo:        "ip.end_date",
			ranges: []rangeFilter{
				{column: "ip.number_of_participants", bounds: func(f models.ReportFilter) (*int64, *int64) { return f.ParticipantsMin, f.ParticipantsMax }},
				{column: "ip.number_of_committee", bounds: func(f models.ReportFilter) (*int64, *int64) { return f.CommitteeMin, f.CommitteeMax }},
			},
			equalities: []equalityFilter{userIDFilter("ip")},
			sorts: scopedSorts("ip", map[string]string{
				"agency_partner": "agency_partner", "location": "location", "start_date": "start_date", "end_date": "end_date",
				"number_of_participants": "number_of_participants", "number_of_committee": "number_of_committee",
			}),
			archivable: true,
			sums: []sumDefinition{
				{key: "participants", label: "Participants", column: "ip.number_of_participants"},
				{key: "committee", label: "Committee Members", column: "ip.number_of_committee"},
			},
			breakdowns: []breakdownDefinition{
				{key: "start_month", title: "Partnerships by Start Month", kind: models.BreakdownMonthly, expr: "ip.start_date"},
				{key: "location", title: "By Location", kind: models.BreakdownCategory, expr: "ip.location"},
				{key: "activity", title: "By Activity Conducted", kind: models.BreakdownCategory, expr: "ip.activity_conducted"},
			},
			scan: scanRecords[models.InternationalPartner, *models.InternationalPartner],
		},
		{
			entity: models.ReportModalities,
			table:  "modalities",
			alias:  "m",
			columns: []string{"id", "project_id", "modality", "tv_channel", "radio", "online_link", "time_air", "period",
				"partner_agency", "hosted_by", "user_id", "is_archived", "created_at", "updated_at"},
			scopeJoins:    projectScopeJoins("m"),
			campusColumn:  "cc.campus_id",
			collegeColumn: "cc.college_id",
			searchColumns: []string{"m.modality", "m.tv_channel", "m.radio", "m.online_link", "m.partner_agency", "m.hosted_by"},
			dateFrom:      "m.created_at",
			dateTo:        "m.created_at",
			equalities: []equalityFilter{
				{column: "m.modality", value: func(f models.ReportFilter) string { return f.ModalityType }},
				{column: "m.project_id", value: func(f models.ReportFilter) string { return f.ProjectID }},
				userIDFilter("m"),
			},
			sorts: func() map[string]sortKey {
				sorts := scopedSorts("m", map[string]string{
					"modality": "modality", "partner_agency": "partner_agency", "hosted_by": "hosted_by",
				})
				sorts["project_name"] = sortKey{expr: "pj.name"}
				return sorts
			}(),
			archivable: true,
			breakdowns: []breakdownDefinition{
				{key: "month", title: "Modalities by Month", kind: models.BreakdownMonthly, expr: "m.created_at"},
				{key: "modality", title: "By Modality Type", kind: models.BreakdownCategory, expr: "m.modality"},
				{key: "partner_agency", title: "By Partner Agency", kind: models.BreakdownCategory, expr: "m.partner_agency"},
			},
			scan: scanRecords[models.Modality, *models.Modality],
		},
		{
			entity: models.ReportImpactAssessments,
			table:  "impact_assessments",
			alias:  "ia",
			columns: []string{"id", "project_id", "beneficiary", "geographic_coverage", "num_direct_beneficiary",
				"num_indirect_beneficiary", "user_id", "is_archived", "created_at", "updated_at"},
			scopeJoins:    projectScopeJoins("ia"),
			campusColumn:  "cc.campus_id",
			collegeColumn: "cc.college_id",
			searchColumns: []string{"ia.beneficiary", "ia.geographic_coverage", "pj.name"},
			dateFrom:      "ia.created_at",
			dateTo:        "ia.created_at",
			ranges: []rangeFilter{
				{column: "ia.num_direct_beneficiary", bounds: func(f models.ReportFilter) (*int64, *int64) { return f.DirectMin, f.DirectMax }},
				{column: "ia.num_indirect_beneficiary", bounds: func(f models.ReportFilter) (*int64, *int64) { return f.IndirectMin, f.IndirectMax }},
			},
			equalities: []equalityFilter{
				{column: "ia.project_id", value: func(f models.ReportFilter) string { return f.ProjectID }},
				userIDFilter("ia"),
			},
			sorts: func() map[string]sortKey {
				sorts := scopedSorts("ia", map[string]string{
					"beneficiary": "beneficiary", "geographic_coverage": "geographic_coverage",
					"num_direct_beneficiary": "num_direct_beneficiary", "num_indirect_beneficiary": "num_indirect_beneficiary",
				})
				sorts["project_name"] = sortKey{expr: "pj.name"}
				return sorts
			}(),
			archivable: true,
			sums: []sumDefinition{
				{key: "direct", label: "Direct Beneficiaries", column: "ia.num_direct_beneficiary"},
				{key: "indirect", label: "Indirect Beneficiaries", column: "ia.num_indirect_beneficiary"},
			},
			breakdowns: []breakdownDefinition{
				{key: "month", title: "Assessments by Month", kind: models.BreakdownMonthly, expr: "ia.created_at"},
				{key: "geographic_coverage", title: "By Geographic Coverage", kind: models.BreakdownCategory, expr: "ia.geographic_coverage"},
			},
			scan: scanRecords[models.ImpactAssessment, *models.ImpactAssessment],
		},
		{
			entity: models.ReportResolutions,
			table:  "resolutions",
			alias:  "r",
			columns: []string{"id", "resolution_number", "partner_agency", "description", "year_of_effectivity",
				"expiration", "user_id", "created_at", "updated_at"},
			searchColumns: []string{"r.resolution_number", "r.partner_agency", "r.description"},
			dateFrom:      "r.year_of_effectivity",
			dateTo:        "r.expiration",
			equalities:    []equalityFilter{userIDFilter("r")},
			sorts: map[string]sortKey{
				"created_at":          {expr: "r.created_at"},
				"resolution_number":   {expr: "r.resolution_number"},
				"partner_agency":      {expr: "r.partner_agency"},
				"year_of_effectivity": {expr: "r.year_of_effectivity"},
				"expiration":          {expr: "r.expiration"},
				"user":                {expr: "ou.last_name", joins: []joinClause{ownerJoin("r")}},
			},
			statusFilter: true,
			breakdowns: []breakdownDefinition{
				{key: "effectivity_month", title: "Resolutions by Month of Effectivity", kind: models.BreakdownMonthly, expr: "r.year_of_effectivity"},
				{key: "partner_agency", title: "By Partner Agency", kind: models.BreakdownCategory, expr: "r.partner_agency"},
			},
			scan: scanRecords[models.Resolution, *models.Resolution],
		},
		{
			entity: models.ReportUsers,
			table:  "users",
			alias:  "u",
			columns: []string{"id", "first_name", "middle_name", "last_name", "email", "user_type",
				"campus_id", "college_id", "created_at", "updated_at"},
			campusColumn:  "u.campus_id",
			collegeColumn: "u.college_id",
			searchColumns: []string{"u.first_name", "u.middle_name", "u.last_name", "u.email"},
			dateFrom:      "u.created_at",
			dateTo:        "u.created_at",
			equalities: []equalityFilter{
				{column: "u.user_type", value: func(f models.ReportFilter) string { return f.UserType }},
			},
			sorts: map[string]sortKey{
				"created_at": {expr: "u.created_at"},
				"name":       {expr: "u.last_name"},
				"first_name": {expr: "u.first_name"},
				"email":      {expr: "u.email"},
				"user_type":  {expr: "u.user_type"},
				"campus":     {expr: "ucp.name", joins: []joinClause{userCampusJoin}},
				"college":    {expr: "ucl.name", joins: []joinClause{userCollegeJoin}},
			},
			breakdowns: []breakdownDefinition{
				{key: "month", title: "Users by Month Registered", kind: models.BreakdownMonthly, expr: "u.created_at"},
				{key: "user_type", title: "By User Type", kind: models.BreakdownCategory, expr: "u.user_type"},
				{key: "campus", title: "By Campus", kind: models.BreakdownCategory, expr: "ucp.name", joins: []joinClause{userCampusJoin}},
			},
			scan: scanRecords[models.User, *models.User],
		},
		{
			entity: models.ReportAuditLogs,
			table:  "audit_logs",
			alias:  "al",
			columns: []string{"id", "user_id", "action", "model_type", "model_id", "description",
				"old_values", "new_values", "ip_address", "user_agent", "created_at"},
			searchColumns: []string{"al.action", "al.model_type", "al.model_id", "al.description", "al.ip_address"},
			dateFrom:      "al.created_at",
			dateTo:        "al.created_at",
			equalities: []equalityFilter{
				{column: "al.action", value: func(f models.ReportFilter) string { return f.Action }},
				userIDFilter("al"),
			},
			sorts: map[string]sortKey{
				"created_at": {expr: "al.created_at"},
				"action":     {expr: "al.action"},
				"model_type": {expr: "al.model_type"},
				"user":       {expr: "ou.last_name", joins: []joinClause{ownerJoin("al")}},
			},
			breakdowns: []breakdownDefinition{
				{key: "month", title: "Activity by Month", kind: models.BreakdownMonthly, expr: "al.created_at"},
				{key: "action", title: "By Action", kind: models.BreakdownCategory, expr: "al.action"},
				{key: "model_type", title: "By Record Type", kind: models.BreakdownCategory, expr: "al.model_type"},
			},
			scan: scanRecords[models.AuditLog, *models.AuditLog],
		},
	}

	out := make(map[models.ReportEntity]*reportDefinition, len(defs))
	for _, def := range defs {
		out[def.entity] = def
	}
	return out
}

var (
	userCampusJoin  = joinClause{key: "ucp", sql: "LEFT JOIN campuses ucp ON ucp.id = u.campus_id"}
	userCollegeJoin = joinClause{key: "ucl", sql: "LEFT JOIN colleges ucl ON ucl.id = u.college_id"}
)
