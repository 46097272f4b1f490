package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/middleware"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	"github.com/noah-isme/ttms-admin-api/pkg/response"
)

type browseService interface {
	Campuses(ctx context.Context) ([]models.CampusSummary, error)
	Colleges(ctx context.Context, campusID string) (*dto.BrowseCollegesResponse, error)
	Report(ctx context.Context, campusID, collegeID string, entity models.ReportEntity, filter models.ReportFilter) (*dto.ReportPageResponse, *models.Pagination, error)
}

// BrowseHandler serves the campus and college drill-down.
type BrowseHandler struct {
	service browseService
}

// NewBrowseHandler constructs the handler.
func NewBrowseHandler(service browseService) *BrowseHandler {
	return &BrowseHandler{service: service}
}

// Campuses godoc
// @Summary List campuses with record counts
// @Tags Browse
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/browse/campuses [get]
func (h *BrowseHandler) Campuses(c *gin.Context) {
	campuses, err := h.service.Campuses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campuses, nil)
}

// Colleges godoc
// @Summary List colleges offered on a campus
// @Tags Browse
// @Produce json
// @Param campusId path string true "Campus ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/browse/campuses/{campusId}/colleges [get]
func (h *BrowseHandler) Colleges(c *gin.Context) {
	result, err := h.service.Colleges(c.Request.Context(), c.Param("campusId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Report godoc
// @Summary Report page scoped to a campus college
// @Tags Browse
// @Produce json
// @Param campusId path string true "Campus ID"
// @Param collegeId path string true "College ID"
// @Param entity path string true "Report name" Enums(projects, awards, international-partners, modalities, impact-assessments, users)
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/browse/campuses/{campusId}/colleges/{collegeId}/{entity} [get]
func (h *BrowseHandler) Report(c *gin.Context) {
	entity, ok := reportEntity(c)
	if !ok {
		return
	}
	page, pagination, err := h.service.Report(c.Request.Context(), c.Param("campusId"), c.Param("collegeId"), entity, parseReportFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	paginationLinks(c, pagination)
	response.JSON(c, http.StatusOK, page, pagination, middleware.ExtractMeta(c))
}
