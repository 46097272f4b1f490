package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
)

const (
	dashboardCacheKey     = "dash:admin"
	dashboardCachePattern = "dash:*"
)

type statisticsProvider interface {
	Statistics(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter) (models.ReportStatistics, error)
	Title(entity models.ReportEntity) string
}

type campusSummaryLister interface {
	Campuses(ctx context.Context) ([]models.CampusSummary, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the admin dashboard from unfiltered report statistics.
type DashboardService struct {
	reports  statisticsProvider
	campuses campusSummaryLister
	cache    *CacheService
	logger   *zap.Logger
	now      func() time.Time
	cfg      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(reports statisticsProvider, campuses campusSummaryLister, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		reports:  reports,
		campuses: campuses,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
	}
}

// Admin returns the admin dashboard summary and indicates cache utilisation.
func (s *DashboardService) Admin(ctx context.Context) (*dto.AdminDashboardResponse, bool, error) {
	var cached dto.AdminDashboardResponse
	if s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return &cached, true, nil
	}

	summary, err := s.composeAdminSummary(ctx)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(ctx, dashboardCacheKey, summary, s.cfg.CacheTTL)
	return summary, false, nil
}

func (s *DashboardService) composeAdminSummary(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	summary := &dto.AdminDashboardResponse{
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Totals:      make([]dto.EntityTotal, 0, len(models.ReportEntities)),
		Monthly:     make([]dto.EntityMonthly, 0, len(models.ReportEntities)),
	}

	for _, entity := range models.ReportEntities {
		stats, err := s.reports.Statistics(ctx, entity, models.ReportFilter{})
		if err != nil {
			return nil, err
		}
		summary.Totals = append(summary.Totals, dto.EntityTotal{Entity: entity, Title: s.reports.Title(entity), Total: stats.Total})

		monthly := dto.EntityMonthly{Entity: entity, Buckets: []models.Bucket{}}
		for _, breakdown := range stats.Breakdowns {
			if breakdown.Kind == models.BreakdownMonthly {
				monthly.Buckets = breakdown.Buckets
				break
			}
		}
		summary.Monthly = append(summary.Monthly, monthly)

		if stats.Statuses != nil {
			summary.Resolutions = stats.Statuses
		}
	}

	campuses, err := s.campuses.Campuses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campus summaries")
	}
	summary.ByCampus = campuses
	return summary, nil
}
