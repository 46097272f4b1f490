package models

import (
	"strconv"
	"time"
)

// ReportEntity identifies a report by its URL slug.
type ReportEntity string

const (
	ReportProjects              ReportEntity = "projects"
	ReportAwards                ReportEntity = "awards"
	ReportInternationalPartners ReportEntity = "international-partners"
	ReportModalities            ReportEntity = "modalities"
	ReportImpactAssessments     ReportEntity = "impact-assessments"
	ReportResolutions           ReportEntity = "resolutions"
	ReportUsers                 ReportEntity = "users"
	ReportAuditLogs             ReportEntity = "audit-logs"
)

// ReportEntities lists every report in display order.
var ReportEntities = []ReportEntity{
	ReportProjects,
	ReportAwards,
	ReportInternationalPartners,
	ReportModalities,
	ReportImpactAssessments,
	ReportResolutions,
	ReportUsers,
	ReportAuditLogs,
}

// ParseReportEntity resolves a slug into a known report.
func ParseReportEntity(slug string) (ReportEntity, bool) {
	for _, entity := range ReportEntities {
		if string(entity) == slug {
			return entity, true
		}
	}
	return "", false
}

// Resolution status buckets.
const (
	ResolutionActive       = "active"
	ResolutionExpired      = "expired"
	ResolutionExpiringSoon = "expiring_soon"
	ResolutionPending      = "pending"
)

// ResolutionStatuses lists the status buckets in display order.
var ResolutionStatuses = []string{ResolutionActive, ResolutionExpired, ResolutionExpiringSoon, ResolutionPending}

// ExpiringSoonWindow is how far ahead an expiration counts as expiring soon.
const ExpiringSoonWindow = 30 * 24 * time.Hour

// ReportFilter is the request-scoped set of optional report constraints.
// Zero values mean no constraint.
type ReportFilter struct {
	Search    string
	CampusID  string
	CollegeID string
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    string
	SortOrder string
	Page      int

	ParticipantsMin *int64
	ParticipantsMax *int64
	CommitteeMin    *int64
	CommitteeMax    *int64
	DirectMin       *int64
	DirectMax       *int64
	IndirectMin     *int64
	IndirectMax     *int64

	ModalityType string
	ProjectID    string
	UserID       string
	UserType     string
	Status       string
	Category     string
	Action       string
}

// FilterParam is one applied filter in request order.
type FilterParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Params returns the applied filters as query parameters, excluding the page number.
func (f ReportFilter) Params() []FilterParam {
	var params []FilterParam
	addString := func(key, value string) {
		if value != "" {
			params = append(params, FilterParam{Key: key, Value: value})
		}
	}
	addDate := func(key string, value *time.Time) {
		if value != nil {
			params = append(params, FilterParam{Key: key, Value: value.Format("2006-01-02")})
		}
	}
	addInt := func(key string, value *int64) {
		if value != nil {
			params = append(params, FilterParam{Key: key, Value: strconv.FormatInt(*value, 10)})
		}
	}

	addString("search", f.Search)
	addString("campus_id", f.CampusID)
	addString("college_id", f.CollegeID)
	addDate("date_from", f.DateFrom)
	addDate("date_to", f.DateTo)
	addInt("participants_min", f.ParticipantsMin)
	addInt("participants_max", f.ParticipantsMax)
	addInt("committee_min", f.CommitteeMin)
	addInt("committee_max", f.CommitteeMax)
	addInt("direct_min", f.DirectMin)
	addInt("direct_max", f.DirectMax)
	addInt("indirect_min", f.IndirectMin)
	addInt("indirect_max", f.IndirectMax)
	addString("modality_type", f.ModalityType)
	addString("project_id", f.ProjectID)
	addString("user_id", f.UserID)
	addString("user_type", f.UserType)
	addString("status", f.Status)
	addString("category", f.Category)
	addString("action", f.Action)
	addString("sort_by", f.SortBy)
	addString("sort_order", f.SortOrder)
	return params
}

// Applied returns the filter echo keyed by query parameter.
func (f ReportFilter) Applied() map[string]string {
	applied := make(map[string]string)
	for _, param := range f.Params() {
		applied[param.Key] = param.Value
	}
	return applied
}

// PageWindow bounds a record fetch. A nil window fetches every row.
type PageWindow struct {
	Limit  int
	Offset int
}

// BreakdownKind distinguishes period histograms from categorical ones.
type BreakdownKind string

const (
	BreakdownMonthly  BreakdownKind = "monthly"
	BreakdownCategory BreakdownKind = "category"
)

// Bucket is one histogram entry.
type Bucket struct {
	Label string `db:"label" json:"label"`
	Count int64  `db:"total" json:"count"`
}

// Breakdown is a titled histogram.
type Breakdown struct {
	Key     string        `json:"key"`
	Title   string        `json:"title"`
	Kind    BreakdownKind `json:"kind"`
	Buckets []Bucket      `json:"buckets"`
}

// NumericAggregate carries the sum and average of one numeric field.
type NumericAggregate struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Sum     int64   `json:"sum"`
	Average float64 `json:"average"`
}

// ResolutionStatusCounts counts resolutions per status bucket. Buckets may overlap.
type ResolutionStatusCounts struct {
	Active       int64 `json:"active"`
	Expired      int64 `json:"expired"`
	ExpiringSoon int64 `json:"expiring_soon"`
	Pending      int64 `json:"pending"`
}

// ReportAggregates is the raw aggregate output of the database.
type ReportAggregates struct {
	Total      int64
	Overall    int64
	Sums       []NumericAggregate
	Breakdowns []Breakdown
	Statuses   *ResolutionStatusCounts
}

// ReportStatistics summarises the full filtered record set.
type ReportStatistics struct {
	Total        int64                   `json:"total"`
	OverallTotal int64                   `json:"overall_total"`
	Aggregates   []NumericAggregate      `json:"aggregates"`
	Breakdowns   []Breakdown             `json:"breakdowns"`
	Statuses     *ResolutionStatusCounts `json:"statuses,omitempty"`
}

// ReportSnapshot is everything read for one report request inside a single transaction.
type ReportSnapshot struct {
	Records    []ReportRecord
	Aggregates ReportAggregates
}

// Option is a value/label pair for filter controls.
type Option struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
