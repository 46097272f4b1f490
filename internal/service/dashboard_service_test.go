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
)

type statisticsProviderStub struct {
	calls int
	err   error
}

func (s *statisticsProviderStub) Statistics(_ context.Context, entity models.ReportEntity, filter models.ReportFilter) (models.ReportStatistics, error) {
	s.calls++
	if s.err != nil {
		return models.ReportStatistics{}, s.err
	}
	stats := models.ReportStatistics{
		Total: int64(len(entity)),
		Breakdowns: []models.Breakdown{
			{Key: "category", Kind: models.BreakdownCategory, Buckets: []models.Bucket{{Label: "Other", Count: 1}}},
			{Key: "month", Kind: models.BreakdownMonthly, Buckets: []models.Bucket{{Label: "Jun 2024", Count: 2}}},
		},
	}
	if entity == models.ReportResolutions {
		stats.Statuses = &models.ResolutionStatusCounts{Active: 3, ExpiringSoon: 1}
	}
	return stats, nil
}

func (s *statisticsProviderStub) Title(entity models.ReportEntity) string {
	return string(entity)
}

type campusSummaryStub struct {
	campuses []models.CampusSummary
}

func (c campusSummaryStub) Campuses(context.Context) ([]models.CampusSummary, error) {
	return c.campuses, nil
}

func TestDashboardServiceComposesAndCaches(t *testing.T) {
	reports := &statisticsProviderStub{}
	campuses := campusSummaryStub{campuses: []models.CampusSummary{{ID: "c-1", Name: "Main", ScopedCounts: models.ScopedCounts{Projects: 2}}}}
	cache := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(reports, campuses, cache, zap.NewNop(), DashboardServiceConfig{})
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }

	summary, hit, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, len(models.ReportEntities), reports.calls)
	require.Len(t, summary.Totals, len(models.ReportEntities))
	assert.Equal(t, models.ReportProjects, summary.Totals[0].Entity)
	assert.Equal(t, int64(len("projects")), summary.Totals[0].Total)
	assert.Equal(t, "Jun 2024", summary.Monthly[0].Buckets[0].Label)
	require.NotNil(t, summary.Resolutions)
	assert.Equal(t, int64(3), summary.Resolutions.Active)
	assert.Equal(t, int64(2), summary.ByCampus[0].Projects)
	assert.Equal(t, "2024-06-01T08:00:00Z", summary.GeneratedAt)

	cached, hit, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, len(models.ReportEntities), reports.calls)
	assert.Equal(t, summary.Totals, cached.Totals)
}

func TestDashboardServiceWithoutCache(t *testing.T) {
	reports := &statisticsProviderStub{}
	svc := NewDashboardService(reports, campusSummaryStub{}, nil, nil, DashboardServiceConfig{})

	_, hit, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2*len(models.ReportEntities), reports.calls)
}

func TestDashboardServicePropagatesErrors(t *testing.T) {
	svc := NewDashboardService(&statisticsProviderStub{err: errors.New("boom")}, campusSummaryStub{}, nil, nil, DashboardServiceConfig{})

	_, _, err := svc.Admin(context.Background())
	assert.Error(t, err)
}
