package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/middleware"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	"github.com/noah-isme/ttms-admin-api/internal/service"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
)

var adminClaims = &models.JWTClaims{UserID: "admin-1", Email: "admin@example.edu", FullName: "Ada Reyes", UserType: models.UserTypeAdmin}

func newTestContext(method, target string, body []byte, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

type fakeAuthService struct {
	req models.LoginRequest
	err error
}

func (f *fakeAuthService) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{AccessToken: "token", ExpiresIn: 3600}, nil
}

func (f *fakeAuthService) Me(_ context.Context, userID string) (*models.UserInfo, error) {
	return &models.UserInfo{ID: userID, UserType: models.UserTypeAdmin}, f.err
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &fakeAuthService{}
	c, rec := newTestContext(http.MethodPost, "/auth/login", []byte(`{"email":"ada@example.edu","password":"secret"}`), nil)
	c.Request.Header.Set("User-Agent", "test-agent")

	NewAuthHandler(svc).Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada@example.edu", svc.req.Email)
	assert.Equal(t, "test-agent", svc.req.UserAgent)
	assert.Contains(t, rec.Body.String(), `"access_token":"token"`)
}

func TestAuthHandlerLoginRejectsBadPayload(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "/auth/login", []byte(`{`), nil)
	NewAuthHandler(&fakeAuthService{}).Login(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{err: appErrors.ErrInvalidCredentials}
	c, rec := newTestContext(http.MethodPost, "/auth/login", []byte(`{"email":"ada@example.edu","password":"x"}`), nil)
	NewAuthHandler(svc).Login(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/auth/me", nil, adminClaims)
	NewAuthHandler(&fakeAuthService{}).Me(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"admin-1"`)

	c, rec = newTestContext(http.MethodGet, "/auth/me", nil, nil)
	NewAuthHandler(&fakeAuthService{}).Me(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeArchiveService struct {
	entity   models.ReportEntity
	id       string
	actor    string
	password string
	archived *bool
	err      error
}

func (f *fakeArchiveService) record(entity models.ReportEntity, id, actor string, req dto.ArchiveRequest, archived bool) (*models.ArchiveState, error) {
	f.entity, f.id, f.actor, f.password, f.archived = entity, id, actor, req.Password, &archived
	if f.err != nil {
		return nil, f.err
	}
	return &models.ArchiveState{Entity: entity, ID: id, IsArchived: archived}, nil
}

func (f *fakeArchiveService) Archive(_ context.Context, entity models.ReportEntity, id, actor string, req dto.ArchiveRequest) (*models.ArchiveState, error) {
	return f.record(entity, id, actor, req, true)
}

func (f *fakeArchiveService) Unarchive(_ context.Context, entity models.ReportEntity, id, actor string, req dto.ArchiveRequest) (*models.ArchiveState, error) {
	return f.record(entity, id, actor, req, false)
}

func archiveContext(t *testing.T, entity, id, body string, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newTestContext(http.MethodPatch, "/admin/"+entity+"/"+id+"/archive", []byte(body), claims)
	c.Params = gin.Params{{Key: "entity", Value: entity}, {Key: "id", Value: id}}
	return c, rec
}

func TestArchiveHandlerArchive(t *testing.T) {
	svc := &fakeArchiveService{}
	c, rec := archiveContext(t, "awards", "a-1", `{"password":"secret"}`, adminClaims)

	NewArchiveHandler(svc).Archive(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ReportAwards, svc.entity)
	assert.Equal(t, "a-1", svc.id)
	assert.Equal(t, "admin-1", svc.actor)
	assert.Equal(t, "secret", svc.password)
	require.NotNil(t, svc.archived)
	assert.True(t, *svc.archived)
	assert.Contains(t, rec.Body.String(), `"is_archived":true`)
}

func TestArchiveHandlerUnarchive(t *testing.T) {
	svc := &fakeArchiveService{}
	c, rec := archiveContext(t, "projects", "p-1", `{"password":"secret"}`, adminClaims)

	NewArchiveHandler(svc).Unarchive(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.archived)
	assert.False(t, *svc.archived)
}

func TestArchiveHandlerWrongPassword(t *testing.T) {
	svc := &fakeArchiveService{err: appErrors.WithDetails(appErrors.ErrValidation, "password confirmation failed",
		map[string]string{"password": "The provided password is incorrect."})}
	c, rec := archiveContext(t, "awards", "a-1", `{"password":"nope"}`, adminClaims)

	NewArchiveHandler(svc).Archive(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The provided password is incorrect.", body.Error.Details["password"])
}

func TestArchiveHandlerRejections(t *testing.T) {
	c, rec := archiveContext(t, "students", "s-1", `{"password":"x"}`, adminClaims)
	NewArchiveHandler(&fakeArchiveService{}).Archive(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = archiveContext(t, "awards", "a-1", `not-json`, adminClaims)
	NewArchiveHandler(&fakeArchiveService{}).Archive(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = archiveContext(t, "awards", "a-1", `{"password":"x"}`, nil)
	NewArchiveHandler(&fakeArchiveService{}).Archive(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeDashboardService struct {
	resp *dto.AdminDashboardResponse
	hit  bool
	err  error
}

func (f *fakeDashboardService) Admin(context.Context) (*dto.AdminDashboardResponse, bool, error) {
	return f.resp, f.hit, f.err
}

func TestDashboardHandlerAdmin(t *testing.T) {
	svc := &fakeDashboardService{resp: &dto.AdminDashboardResponse{Totals: []dto.EntityTotal{{Entity: models.ReportAwards, Total: 4}}}, hit: true}
	c, rec := newTestContext(http.MethodGet, "/admin/dashboard", nil, adminClaims)
	middleware.WithResponseMeta()(c)

	NewDashboardHandler(svc).Admin(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data dto.AdminDashboardResponse `json:"data"`
		Meta map[string]interface{}     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Totals, 1)
	assert.Equal(t, int64(4), body.Data.Totals[0].Total)
	assert.Equal(t, true, body.Meta["cache_hit"])
	assert.Contains(t, body.Meta, "processing_time_ms")
}

func TestDashboardHandlerAdminError(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/admin/dashboard", nil, adminClaims)
	NewDashboardHandler(&fakeDashboardService{err: appErrors.ErrInternal}).Admin(c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/admin/dashboard", nil, adminClaims)
	NewDashboardHandler(nil).Admin(c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type fakeBrowseService struct {
	campusID  string
	collegeID string
	entity    models.ReportEntity
	filter    models.ReportFilter
	err       error
}

func (f *fakeBrowseService) Campuses(context.Context) ([]models.CampusSummary, error) {
	return []models.CampusSummary{{ID: "c-1", Name: "Main Campus"}}, f.err
}

func (f *fakeBrowseService) Colleges(_ context.Context, campusID string) (*dto.BrowseCollegesResponse, error) {
	f.campusID = campusID
	if f.err != nil {
		return nil, f.err
	}
	return &dto.BrowseCollegesResponse{Campus: models.Option{ID: campusID, Name: "Main Campus"}}, nil
}

func (f *fakeBrowseService) Report(_ context.Context, campusID, collegeID string, entity models.ReportEntity, filter models.ReportFilter) (*dto.ReportPageResponse, *models.Pagination, error) {
	f.campusID, f.collegeID, f.entity, f.filter = campusID, collegeID, entity, filter
	if f.err != nil {
		return nil, nil, f.err
	}
	return &dto.ReportPageResponse{Entity: entity}, &models.Pagination{Page: 1, TotalPages: 2}, nil
}

func TestBrowseHandlerCampuses(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/admin/browse/campuses", nil, adminClaims)
	NewBrowseHandler(&fakeBrowseService{}).Campuses(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Main Campus")
}

func TestBrowseHandlerCollegesNotFound(t *testing.T) {
	svc := &fakeBrowseService{err: appErrors.Clone(appErrors.ErrNotFound, "campus not found")}
	c, rec := newTestContext(http.MethodGet, "/admin/browse/campuses/x/colleges", nil, adminClaims)
	c.Params = gin.Params{{Key: "campusId", Value: "x"}}

	NewBrowseHandler(svc).Colleges(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "x", svc.campusID)
}

func TestBrowseHandlerReport(t *testing.T) {
	svc := &fakeBrowseService{}
	c, rec := newTestContext(http.MethodGet, "/admin/browse/campuses/c-1/colleges/k-1/awards?search=gold", nil, adminClaims)
	c.Params = gin.Params{{Key: "campusId", Value: "c-1"}, {Key: "collegeId", Value: "k-1"}, {Key: "entity", Value: "awards"}}

	NewBrowseHandler(svc).Report(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c-1", svc.campusID)
	assert.Equal(t, "k-1", svc.collegeID)
	assert.Equal(t, models.ReportAwards, svc.entity)
	assert.Equal(t, "gold", svc.filter.Search)

	var body struct {
		Pagination models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Pagination.Links.Next)
	assert.Equal(t, "/admin/browse/campuses/c-1/colleges/k-1/awards?page=2&search=gold", *body.Pagination.Links.Next)
}

func TestMetricsHandler(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordCacheOperation(true, 0)
	h := NewMetricsHandler(metrics, nil)

	c, rec := newTestContext(http.MethodGet, "/admin/system/metrics", nil, adminClaims)
	h.System(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache_hits":1`)

	c, rec = newTestContext(http.MethodGet, "/metrics", nil, nil)
	h.Prometheus(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cache_hits_total 1")

	c, rec = newTestContext(http.MethodGet, "/health", nil, nil)
	h.Health(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/metrics", nil, nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestMetricsHandlerHealthPingsDatabase(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", nil, nil)
	NewMetricsHandler(nil, stubPinger{}).Health(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)

	c, rec = newTestContext(http.MethodGet, "/health", nil, nil)
	NewMetricsHandler(nil, stubPinger{err: assert.AnError}).Health(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"unreachable"`)
}
