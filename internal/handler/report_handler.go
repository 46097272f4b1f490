package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/middleware"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	"github.com/noah-isme/ttms-admin-api/internal/service"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
	"github.com/noah-isme/ttms-admin-api/pkg/response"
)

type reportService interface {
	Page(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter) (*dto.ReportPageResponse, *models.Pagination, error)
	Statistics(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter) (models.ReportStatistics, error)
	Export(ctx context.Context, entity models.ReportEntity, filter models.ReportFilter, format service.ExportFormat, actor string) (*service.ExportFile, error)
}

// ReportHandler exposes report pages and exports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Page godoc
// @Summary Paginated report
// @Description Lists 25 records per page with statistics over the full filtered set
// @Tags Reports
// @Produce json
// @Param entity path string true "Report name" Enums(projects, awards, international-partners, modalities, impact-assessments, resolutions, users, audit-logs)
// @Param search query string false "Search term"
// @Param campus_id query string false "Campus ID"
// @Param college_id query string false "College ID"
// @Param date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param sort_by query string false "Sort key"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/report/{entity} [get]
func (h *ReportHandler) Page(c *gin.Context) {
	entity, ok := reportEntity(c)
	if !ok {
		return
	}
	page, pagination, err := h.service.Page(c.Request.Context(), entity, parseReportFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	paginationLinks(c, pagination)
	response.JSON(c, http.StatusOK, page, pagination, middleware.ExtractMeta(c))
}

// Statistics godoc
// @Summary Report statistics
// @Tags Reports
// @Produce json
// @Param entity path string true "Report name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/report/{entity}/statistics [get]
func (h *ReportHandler) Statistics(c *gin.Context) {
	entity, ok := reportEntity(c)
	if !ok {
		return
	}
	stats, err := h.service.Statistics(c.Request.Context(), entity, parseReportFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export report
// @Description Renders every filtered record as a PDF, CSV or XLSX attachment
// @Tags Reports
// @Produce application/pdf
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param entity path string true "Report name"
// @Param format path string true "Document format" Enums(pdf, csv, xlsx)
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/report/{entity}/{format} [get]
func (h *ReportHandler) Export(c *gin.Context) {
	entity, ok := reportEntity(c)
	if !ok {
		return
	}
	format := service.ExportFormat(strings.ToLower(c.Param("format")))
	file, err := h.service.Export(c.Request.Context(), entity, parseReportFilter(c), format, actorName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Payload)
}

func reportEntity(c *gin.Context) (models.ReportEntity, bool) {
	entity, ok := models.ParseReportEntity(c.Param("entity"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report not found"))
		return "", false
	}
	return entity, true
}
