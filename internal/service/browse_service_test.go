package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
)

type browseStoreStub struct {
	offered bool
}

func (b browseStoreStub) Campuses(context.Context) ([]models.CampusSummary, error) {
	return []models.CampusSummary{{ID: "campus-1", Name: "Main Campus"}}, nil
}

func (b browseStoreStub) Colleges(context.Context, string) ([]models.CollegeSummary, error) {
	return []models.CollegeSummary{{ID: "college-1", Name: "Engineering", CampusCollegeID: "cc-1"}}, nil
}

func (b browseStoreStub) Offers(context.Context, string, string) (bool, error) {
	return b.offered, nil
}

type reportPagerStub struct {
	filter models.ReportFilter
}

func (r *reportPagerStub) Page(_ context.Context, entity models.ReportEntity, filter models.ReportFilter) (*dto.ReportPageResponse, *models.Pagination, error) {
	r.filter = filter
	return &dto.ReportPageResponse{Entity: entity}, &models.Pagination{Page: 1}, nil
}

func TestBrowseServiceColleges(t *testing.T) {
	svc := NewBrowseService(browseStoreStub{}, &lookupStoreStub{}, &reportPagerStub{})

	resp, err := svc.Colleges(context.Background(), "campus-1")
	require.NoError(t, err)
	assert.Equal(t, "Main Campus", resp.Campus.Name)
	assert.Len(t, resp.Colleges, 1)

	_, err = svc.Colleges(context.Background(), "campus-9")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestBrowseServiceReportScopesFilter(t *testing.T) {
	pager := &reportPagerStub{}
	svc := NewBrowseService(browseStoreStub{offered: true}, &lookupStoreStub{}, pager)

	page, _, err := svc.Report(context.Background(), "campus-1", "college-1", models.ReportProjects,
		models.ReportFilter{CampusID: "other", Search: "solar"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportProjects, page.Entity)
	assert.Equal(t, "campus-1", pager.filter.CampusID)
	assert.Equal(t, "college-1", pager.filter.CollegeID)
	assert.Equal(t, "solar", pager.filter.Search)
}

func TestBrowseServiceReportRejects(t *testing.T) {
	svc := NewBrowseService(browseStoreStub{offered: false}, &lookupStoreStub{}, &reportPagerStub{})

	_, _, err := svc.Report(context.Background(), "campus-1", "college-1", models.ReportAwards, models.ReportFilter{})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	svc = NewBrowseService(browseStoreStub{offered: true}, &lookupStoreStub{}, &reportPagerStub{})
	_, _, err = svc.Report(context.Background(), "campus-1", "college-1", models.ReportAuditLogs, models.ReportFilter{})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
