package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ttms-admin-api/internal/models"
	"github.com/noah-isme/ttms-admin-api/internal/repository"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
	"github.com/noah-isme/ttms-admin-api/pkg/export"
)

type reportStoreStub struct {
	snapshot   *models.ReportSnapshot
	aggregates *models.ReportAggregates
	err        error
	windows    []*models.PageWindow
	filters    []models.ReportFilter
	today      time.Time
}

func (s *reportStoreStub) Supports(entity models.ReportEntity) bool {
	_, ok := models.ParseReportEntity(string(entity))
	return ok
}

func (s *reportStoreStub) Fetch(_ context.Context, _ models.ReportEntity, filter models.ReportFilter, window *models.PageWindow, today time.Time) (*models.ReportSnapshot, error) {
	s.windows = append(s.windows, window)
	s.filters = append(s.filters, filter)
	s.today = today
	if s.err != nil {
		return nil, s.err
	}
	if s.snapshot == nil {
		return &models.ReportSnapshot{}, nil
	}
	return s.snapshot, nil
}

func (s *reportStoreStub) Statistics(_ context.Context, _ models.ReportEntity, _ models.ReportFilter, today time.Time) (*models.ReportAggregates, error) {
	s.today = today
	if s.err != nil {
		return nil, s.err
	}
	return s.aggregates, nil
}

type lookupStoreStub struct {
	missing map[repository.LookupTable]bool
	calls   []repository.LookupTable
}

func (s *lookupStoreStub) Campuses(context.Context) ([]models.Option, error) {
	return []models.Option{{ID: "campus-1", Name: "Main Campus"}}, nil
}

func (s *lookupStoreStub) Colleges(context.Context) ([]models.Option, error) {
	return []models.Option{{ID: "college-1", Name: "Engineering"}}, nil
}

func (s *lookupStoreStub) Projects(context.Context) ([]models.Option, error) {
	return []models.Option{{ID: "project-1", Name: "Solar Pilot"}}, nil
}

func (s *lookupStoreStub) Users(context.Context) ([]models.Option, error) {
	return []models.Option{{ID: "user-1", Name: "Ada Reyes"}}, nil
}

func (s *lookupStoreStub) Exists(_ context.Context, table repository.LookupTable, _ string) (bool, error) {
	s.calls = append(s.calls, table)
	return !s.missing[table], nil
}

type rendererStub struct {
	doc export.Document
	err error
}

func (r *rendererStub) Render(doc export.Document) ([]byte, error) {
	r.doc = doc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-stub"), nil
}

func strPtr(v string) *string { return &v }

func int64Ptr(v int64) *int64 { return &v }

func newTestReportService(store *reportStoreStub, lookups *lookupStoreStub, renderer *rendererStub) *ReportService {
	manila, _ := time.LoadLocation("Asia/Manila")
	if manila == nil {
		manila = time.FixedZone("PHT", 8*60*60)
	}
	svc := NewReportService(store, lookups, map[ExportFormat]DocumentRenderer{ExportPDF: renderer}, nil, zap.NewNop(),
		ReportServiceConfig{Location: manila})
	svc.now = func() time.Time { return time.Date(2024, 6, 30, 18, 5, 0, 0, time.UTC) }
	return svc
}

func TestReportServicePagePaginatesAndSummarises(t *testing.T) {
	store := &reportStoreStub{snapshot: &models.ReportSnapshot{
		Records: []models.ReportRecord{&models.Project{ID: "p-1", Name: "Solar Pilot"}},
		Aggregates: models.ReportAggregates{
			Total:   51,
			Overall: 80,
			Breakdowns: []models.Breakdown{{Key: "monthly", Kind: models.BreakdownMonthly, Buckets: []models.Bucket{
				{Label: "2024-01", Count: 3}, {Label: "2024-05", Count: 2},
			}}},
		},
	}}
	svc := newTestReportService(store, &lookupStoreStub{}, &rendererStub{})

	page, pagination, err := svc.Page(context.Background(), models.ReportProjects, models.ReportFilter{Page: 3, Search: "solar"})
	require.NoError(t, err)

	require.Len(t, store.windows, 1)
	assert.Equal(t, &models.PageWindow{Limit: 25, Offset: 50}, store.windows[0])
	assert.Equal(t, 3, pagination.Page)
	assert.Equal(t, 25, pagination.PageSize)
	assert.Equal(t, 51, pagination.TotalCount)
	assert.Equal(t, 3, pagination.TotalPages)

	assert.Equal(t, "Projects Report", page.Title)
	assert.Equal(t, int64(80), page.Statistics.OverallTotal)
	assert.Equal(t, "May 2024", page.Statistics.Breakdowns[0].Buckets[0].Label)
	assert.Equal(t, map[string]string{"search": "solar"}, page.Filters)
	assert.Len(t, page.Options.Campuses, 1)
	assert.Nil(t, page.Options.Projects)
}

func TestReportServicePageUsesTodayInConfiguredZone(t *testing.T) {
	store := &reportStoreStub{}
	svc := newTestReportService(store, &lookupStoreStub{}, &rendererStub{})

	_, _, err := svc.Page(context.Background(), models.ReportResolutions, models.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), store.today)
}

func TestReportServicePageAnnotatesResolutions(t *testing.T) {
	eff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	resolution := &models.Resolution{ID: "r-1", YearOfEffectivity: &eff, Expiration: &exp}
	store := &reportStoreStub{snapshot: &models.ReportSnapshot{Records: []models.ReportRecord{resolution}}}
	svc := newTestReportService(store, &lookupStoreStub{}, &rendererStub{})

	page, pagination, err := svc.Page(context.Background(), models.ReportResolutions, models.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{models.ResolutionActive, models.ResolutionExpiringSoon}, resolution.Statuses)
	assert.Equal(t, models.ResolutionStatuses, page.Options.Statuses)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 0, pagination.TotalPages)
}

func TestReportServicePageEntityOptions(t *testing.T) {
	svc := newTestReportService(&reportStoreStub{}, &lookupStoreStub{}, &rendererStub{})

	page, _, err := svc.Page(context.Background(), models.ReportModalities, models.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Options.Projects, 1)

	page, _, err = svc.Page(context.Background(), models.ReportAuditLogs, models.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Options.Users, 1)
	assert.NotNil(t, page.Records)
}

func TestReportServiceRejectsUnknownEntity(t *testing.T) {
	svc := newTestReportService(&reportStoreStub{}, &lookupStoreStub{}, &rendererStub{})

	_, _, err := svc.Page(context.Background(), models.ReportEntity("students"), models.ReportFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestReportServiceUnresolvedIdentifierIsNotFound(t *testing.T) {
	lookups := &lookupStoreStub{missing: map[repository.LookupTable]bool{repository.LookupProjects: true}}
	store := &reportStoreStub{}
	svc := newTestReportService(store, lookups, &rendererStub{})

	_, _, err := svc.Page(context.Background(), models.ReportModalities, models.ReportFilter{CampusID: "campus-1", ProjectID: "gone"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, []repository.LookupTable{repository.LookupCampuses, repository.LookupProjects}, lookups.calls)
	assert.Empty(t, store.windows)
}

func TestReportServiceExportBuildsDocument(t *testing.T) {
	store := &reportStoreStub{snapshot: &models.ReportSnapshot{
		Records: []models.ReportRecord{
			&models.InternationalPartner{ID: "ip-1", AgencyPartner: "JICA", NumberOfParticipants: int64Ptr(12),
				Relations: models.Relations{CampusCollege: &models.CampusCollege{CampusName: "Main Campus", CollegeName: "Engineering"}}},
		},
		Aggregates: models.ReportAggregates{
			Total:   1,
			Overall: 4,
			Sums:    []models.NumericAggregate{{Key: "participants", Label: "Participants", Sum: 12}},
		},
	}}
	renderer := &rendererStub{}
	svc := newTestReportService(store, &lookupStoreStub{}, renderer)

	file, err := svc.Export(context.Background(), models.ReportInternationalPartners, models.ReportFilter{CampusID: "campus-1", Page: 4}, ExportPDF, "Ada Reyes")
	require.NoError(t, err)

	require.Len(t, store.windows, 1)
	assert.Nil(t, store.windows[0])
	assert.Equal(t, "international-partners-report-2024-07-01.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, []byte("%PDF-stub"), file.Payload)
	assert.Equal(t, 1, file.Rows)

	doc := renderer.doc
	assert.Equal(t, "International Partners Report", doc.Title)
	assert.Equal(t, "July 01, 2024 at 02:05 AM", doc.GeneratedAt)
	assert.Equal(t, "Ada Reyes", doc.GeneratedBy)
	assert.Equal(t, []export.Field{{Label: "Campus", Value: "Main Campus"}}, doc.Filters)
	assert.Contains(t, doc.Summary, export.Field{Label: "Average Participants", Value: "12.00"})
	assert.Contains(t, doc.Summary, export.Field{Label: "Overall Total", Value: "4"})
	require.Len(t, doc.Records.Rows, 1)
	assert.Equal(t, "12", doc.Records.Rows[0]["Participants"])
	assert.Equal(t, "Engineering", doc.Records.Rows[0]["College"])
}

func TestReportServiceExportWithoutActor(t *testing.T) {
	renderer := &rendererStub{}
	svc := newTestReportService(&reportStoreStub{}, &lookupStoreStub{}, renderer)

	_, err := svc.Export(context.Background(), models.ReportAwards, models.ReportFilter{}, ExportPDF, "")
	require.NoError(t, err)
	assert.Equal(t, "Unknown User", renderer.doc.GeneratedBy)
	assert.Equal(t, []export.Field{{Label: "Filters", Value: "None"}}, renderer.doc.Filters)
	assert.Empty(t, renderer.doc.Records.Rows)
}

func TestReportServiceExportRenderFailure(t *testing.T) {
	renderer := &rendererStub{err: errors.New("font not found")}
	svc := newTestReportService(&reportStoreStub{}, &lookupStoreStub{}, renderer)

	_, err := svc.Export(context.Background(), models.ReportProjects, models.ReportFilter{}, ExportPDF, "Ada Reyes")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrRenderFailed)
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}

func TestReportServiceExportUnsupportedFormat(t *testing.T) {
	svc := newTestReportService(&reportStoreStub{}, &lookupStoreStub{}, &rendererStub{})

	_, err := svc.Export(context.Background(), models.ReportProjects, models.ReportFilter{}, ExportXLSX, "")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestReportServiceStoreFailureIsInternal(t *testing.T) {
	svc := newTestReportService(&reportStoreStub{err: errors.New("connection reset")}, &lookupStoreStub{}, &rendererStub{})

	_, _, err := svc.Page(context.Background(), models.ReportProjects, models.ReportFilter{})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestReportServiceStatistics(t *testing.T) {
	store := &reportStoreStub{aggregates: &models.ReportAggregates{Total: 0, Sums: []models.NumericAggregate{{Key: "direct", Sum: 0}}}}
	svc := newTestReportService(store, &lookupStoreStub{}, &rendererStub{})

	stats, err := svc.Statistics(context.Background(), models.ReportImpactAssessments, models.ReportFilter{DirectMin: int64Ptr(10), DirectMax: int64Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, 0.0, stats.Aggregates[0].Average)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 25))
	assert.Equal(t, 1, totalPages(25, 25))
	assert.Equal(t, 2, totalPages(26, 25))
}
