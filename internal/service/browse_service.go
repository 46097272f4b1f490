package service

import (
	"context"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
)

type browseStore interface {
	Campuses(ctx context.Context) ([]models.CampusSummary, error)
	Colleges(ctx context.Context, campusID string) ([]models.CollegeSummary, error)
	Offers(ctx context.Context, campusID, collegeID string) (bool, error)
}

type reportPager interface {
	Page(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter) (*dto.ReportPageResponse, *models.Pagination, error)
}

// BrowseService drills down from campuses to colleges to scoped report pages.
type BrowseService struct {
	store   browseStore
	lookups lookupStore
	reports reportPager
}

// NewBrowseService constructs the browse service.
func NewBrowseService(store browseStore, lookups lookupStore, reports reportPager) *BrowseService {
	return &BrowseService{store: store, lookups: lookups, reports: reports}
}

// Campuses lists every campus with its record counts.
func (s *BrowseService) Campuses(ctx context.Context) ([]models.CampusSummary, error) {
	campuses, err := s.store.Campuses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campuses")
	}
	return campuses, nil
}

// Colleges lists the colleges offered on a campus.
func (s *BrowseService) Colleges(ctx context.Context, campusID string) (*dto.BrowseCollegesResponse, error) {
	campuses, err := s.lookups.Campuses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load campuses")
	}
	campus, ok := findOption(campuses, campusID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "campus not found")
	}
	colleges, err := s.store.Colleges(ctx, campusID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load colleges")
	}
	return &dto.BrowseCollegesResponse{Campus: campus, Colleges: colleges}, nil
}

// Report returns a report page restricted to one campus college. Only campus-scoped
// reports can be browsed.
func (s *BrowseService) Report(ctx context.Context, campusID, collegeID string, entity models.ReportEntity, filter models.ReportFilter) (*dto.ReportPageResponse, *models.Pagination, error) {
	if !browsable(entity) {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
	}
	offered, err := s.store.Offers(ctx, campusID, collegeID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve campus college")
	}
	if !offered {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "college is not offered on this campus")
	}
	filter.CampusID = campusID
	filter.CollegeID = collegeID
	return s.reports.Page(ctx, entity, filter)
}

func browsable(entity models.ReportEntity) bool {
	return entity.Archivable() || entity == models.ReportUsers
}

func findOption(options []models.Option, id string) (models.Option, bool) {
	for _, option := range options {
		if option.ID == id {
			return option, true
		}
	}
	return models.Option{}, false
}
