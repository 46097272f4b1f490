package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	"github.com/noah-isme/ttms-admin-api/internal/repository"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
	"github.com/noah-isme/ttms-admin-api/pkg/export"
)

const (
	// DefaultReportPageSize is the fixed number of records per report page.
	DefaultReportPageSize = 25

	generatedAtLayout = "January 02, 2006 at 03:04 PM"
	unknownActor      = "Unknown User"
)

// ExportFormat names a rendered report document type.
type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

var exportContentTypes = map[ExportFormat]string{
	ExportPDF:  "application/pdf",
	ExportCSV:  "text/csv",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type reportStore interface {
	Supports(entity models.ReportEntity) bool
	Fetch(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter, window *models.PageWindow, today time.Time) (*models.ReportSnapshot, error)
	Statistics(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter, today time.Time) (*models.ReportAggregates, error)
}

type lookupStore interface {
	Campuses(ctx context.Context) ([]models.Option, error)
	Colleges(ctx context.Context) ([]models.Option, error)
	Projects(ctx context.Context) ([]models.Option, error)
	Users(ctx context.Context) ([]models.Option, error)
	Exists(ctx context.Context, table repository.LookupTable, id string) (bool, error)
}

// DocumentRenderer turns a report document into one export format.
type DocumentRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// ReportServiceConfig tunes report pages and export documents.
type ReportServiceConfig struct {
	Location *time.Location
	PageSize int
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
	Rows        int
}

// ReportService composes report pages and export documents from one filter.
type ReportService struct {
	reports   reportStore
	lookups   lookupStore
	renderers map[ExportFormat]DocumentRenderer
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ReportServiceConfig
	layouts   map[models.ReportEntity]reportLayout
	now       func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(reports reportStore, lookups lookupStore, renderers map[ExportFormat]DocumentRenderer, metrics *MetricsService, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultReportPageSize
	}
	return &ReportService{
		reports:   reports,
		lookups:   lookups,
		renderers: renderers,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		layouts:   reportLayouts(),
		now:       time.Now,
	}
}

// Title returns the display title of a report.
func (s *ReportService) Title(entity models.ReportEntity) string {
	return s.layouts[entity].title
}

// Page returns one page of records with statistics over the full filtered set.
func (s *ReportService) Page(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter) (*dto.ReportPageResponse, *models.Pagination, error) {
	if err := s.validate(ctx, entity, filter); err != nil {
		return nil, nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	today := s.today()
	window := &models.PageWindow{Limit: s.cfg.PageSize, Offset: (filter.Page - 1) * s.cfg.PageSize}

	start := time.Now()
	snapshot, err := s.reports.Fetch(ctx, entity, filter, window, today)
	s.metrics.ObserveReportQuery(entity, "page", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	annotate(snapshot.Records, today)

	options, err := s.options(ctx, entity)
	if err != nil {
		return nil, nil, err
	}

	stats := Summarize(&snapshot.Aggregates)
	pagination := &models.Pagination{
		Page:       filter.Page,
		PageSize:   s.cfg.PageSize,
		TotalCount: int(stats.Total),
		TotalPages: totalPages(stats.Total, s.cfg.PageSize),
	}

	records := snapshot.Records
	if records == nil {
		records = []models.ReportRecord{}
	}
	return &dto.ReportPageResponse{
		Entity:     entity,
		Title:      s.Title(entity),
		Records:    records,
		Statistics: stats,
		Options:    options,
		Filters:    filter.Applied(),
	}, pagination, nil
}

// Statistics summarises the filtered set without loading records.
func (s *ReportService) Statistics(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter) (models.ReportStatistics, error) {
	if err := s.validate(ctx, entity, filter); err != nil {
		return models.ReportStatistics{}, err
	}
	start := time.Now()
	raw, err := s.reports.Statistics(ctx, entity, filter, s.today())
	s.metrics.ObserveReportQuery(entity, "statistics", time.Since(start))
	if err != nil {
		return models.ReportStatistics{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise report")
	}
	return Summarize(raw), nil
}

// Export renders every filtered record in the requested format. actor is the display name
// of the requesting user and may be empty.
func (s *ReportService) Export(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter, format ExportFormat, actor string) (*ExportFile, error) {
	if err := s.validate(ctx, entity, filter); err != nil {
		return nil, err
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("export format %q is not supported", format))
	}

	now := s.now().In(s.cfg.Location)
	today := civilDate(now)

	start := time.Now()
	snapshot, err := s.reports.Fetch(ctx, entity, filter, nil, today)
	s.metrics.ObserveReportQuery(entity, "export", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	annotate(snapshot.Records, today)

	filters, err := s.describeFilters(ctx, filter)
	if err != nil {
		return nil, err
	}

	layout := s.layouts[entity]
	stats := Summarize(&snapshot.Aggregates)
	if actor == "" {
		actor = unknownActor
	}
	doc := export.Document{
		Title:       layout.title,
		GeneratedAt: now.Format(generatedAtLayout),
		GeneratedBy: actor,
		Filters:     filters,
		Summary:     summaryFields(stats),
		Breakdowns:  breakdownSections(stats),
		Records:     export.Dataset{Headers: layout.headers(), Rows: layout.rows(snapshot.Records)},
	}

	start = time.Now()
	payload, err := renderer.Render(doc)
	if err != nil {
		s.logger.Error("report render failed", zap.String("entity", string(entity)), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrRenderFailed.Code, appErrors.ErrRenderFailed.Status, appErrors.ErrRenderFailed.Message)
	}
	s.metrics.ObserveReportRender(entity, string(format), len(snapshot.Records), time.Since(start))

	return &ExportFile{
		Filename:    fmt.Sprintf("%s-report-%s.%s", entity, now.Format("2006-01-02"), format),
		ContentType: exportContentTypes[format],
		Payload:     payload,
		Rows:        len(snapshot.Records),
	}, nil
}

func (s *ReportService) today() time.Time {
	return civilDate(s.now().In(s.cfg.Location))
}

// validate rejects unknown reports and identifier filters that do not resolve.
func (s *ReportService) validate(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter) error {
	if !s.reports.Supports(entity) {
		return appErrors.Clone(appErrors.ErrNotFound, "report not found")
	}
	checks := []struct {
		table repository.LookupTable
		id    string
		name  string
	}{
		{repository.LookupCampuses, filter.CampusID, "campus"},
		{repository.LookupColleges, filter.CollegeID, "college"},
		{repository.LookupProjects, filter.ProjectID, "project"},
		{repository.LookupUsers, filter.UserID, "user"},
	}
	for _, check := range checks {
		if check.id == "" {
			continue
		}
		exists, err := s.lookups.Exists(ctx, check.table, check.id)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve filter")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrNotFound, check.name+" not found")
		}
	}
	return nil
}

func (s *ReportService) options(ctx context.Context, entity models.ReportEntity) (dto.ReportOptions, error) {
	var options dto.ReportOptions
	var err error
	if options.Campuses, err = s.lookups.Campuses(ctx); err != nil {
		return options, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campuses")
	}
	if options.Colleges, err = s.lookups.Colleges(ctx); err != nil {
		return options, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load colleges")
	}
	switch entity {
	case models.ReportModalities, models.ReportImpactAssessments:
		if options.Projects, err = s.lookups.Projects(ctx); err != nil {
			return options, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load projects")
		}
	case models.ReportAuditLogs:
		if options.Users, err = s.lookups.Users(ctx); err != nil {
			return options, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load users")
		}
	case models.ReportResolutions:
		options.Statuses = append([]string{}, models.ResolutionStatuses...)
	case models.ReportUsers:
		options.UserTypes = []string{string(models.UserTypeAdmin), string(models.UserTypeUser)}
	}
	return options, nil
}

var filterLabels = map[string]string{
	"search":           "Search",
	"campus_id":        "Campus",
	"college_id":       "College",
	"date_from":        "Date From",
	"date_to":          "Date To",
	"participants_min": "Participants (min)",
	"participants_max": "Participants (max)",
	"committee_min":    "Committee (min)",
	"committee_max":    "Committee (max)",
	"direct_min":       "Direct Beneficiaries (min)",
	"direct_max":       "Direct Beneficiaries (max)",
	"indirect_min":     "Indirect Beneficiaries (min)",
	"indirect_max":     "Indirect Beneficiaries (max)",
	"modality_type":    "Modality",
	"project_id":       "Project",
	"user_id":          "User",
	"user_type":        "User Type",
	"status":           "Status",
	"category":         "Category",
	"action":           "Action",
	"sort_by":          "Sort By",
	"sort_order":       "Sort Order",
}

// describeFilters lists the applied filters with identifiers replaced by display names.
func (s *ReportService) describeFilters(ctx context.Context, filter models.ReportFilter) ([]export.Field, error) {
	params := filter.Params()
	if len(params) == 0 {
		return []export.Field{{Label: "Filters", Value: "None"}}, nil
	}
	sources := map[string]func(context.Context) ([]models.Option, error){
		"campus_id":  s.lookups.Campuses,
		"college_id": s.lookups.Colleges,
		"project_id": s.lookups.Projects,
		"user_id":    s.lookups.Users,
	}
	fields := make([]export.Field, 0, len(params))
	for _, param := range params {
		value := param.Value
		if source, ok := sources[param.Key]; ok {
			options, err := source(ctx)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve filter names")
			}
			value = optionName(options, param.Value)
		}
		if param.Key == "status" {
			if title, ok := statusTitles[value]; ok {
				value = title
			}
		}
		fields = append(fields, export.Field{Label: filterLabels[param.Key], Value: value})
	}
	return fields, nil
}

func optionName(options []models.Option, id string) string {
	for _, option := range options {
		if option.ID == id {
			return option.Name
		}
	}
	return id
}

func summaryFields(stats models.ReportStatistics) []export.Field {
	fields := []export.Field{
		{Label: "Total Records", Value: fmt.Sprintf("%d", stats.Total)},
		{Label: "Overall Total", Value: fmt.Sprintf("%d", stats.OverallTotal)},
	}
	for _, aggregate := range stats.Aggregates {
		fields = append(fields,
			export.Field{Label: "Total " + aggregate.Label, Value: fmt.Sprintf("%d", aggregate.Sum)},
			export.Field{Label: "Average " + aggregate.Label, Value: fmt.Sprintf("%.2f", aggregate.Average)},
		)
	}
	if stats.Statuses != nil {
		fields = append(fields,
			export.Field{Label: statusTitles[models.ResolutionActive], Value: fmt.Sprintf("%d", stats.Statuses.Active)},
			export.Field{Label: statusTitles[models.ResolutionExpired], Value: fmt.Sprintf("%d", stats.Statuses.Expired)},
			export.Field{Label: statusTitles[models.ResolutionExpiringSoon], Value: fmt.Sprintf("%d", stats.Statuses.ExpiringSoon)},
			export.Field{Label: statusTitles[models.ResolutionPending], Value: fmt.Sprintf("%d", stats.Statuses.Pending)},
		)
	}
	return fields
}

func breakdownSections(stats models.ReportStatistics) []export.Breakdown {
	sections := make([]export.Breakdown, 0, len(stats.Breakdowns))
	for _, breakdown := range stats.Breakdowns {
		section := export.Breakdown{Title: breakdown.Title}
		for _, bucket := range breakdown.Buckets {
			section.Rows = append(section.Rows, export.Field{Label: bucket.Label, Value: fmt.Sprintf("%d", bucket.Count)})
		}
		sections = append(sections, section)
	}
	return sections
}

func annotate(records []models.ReportRecord, today time.Time) {
	for _, record := range records {
		if resolution, ok := record.(*models.Resolution); ok {
			resolution.Statuses = ClassifyResolution(resolution.YearOfEffectivity, resolution.Expiration, today)
		}
	}
}

func totalPages(total int64, size int) int {
	if total == 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
