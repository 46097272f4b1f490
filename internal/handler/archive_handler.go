package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ttms-admin-api/internal/dto"
	"github.com/noah-isme/ttms-admin-api/internal/models"
	appErrors "github.com/noah-isme/ttms-admin-api/pkg/errors"
	"github.com/noah-isme/ttms-admin-api/pkg/response"
)

type archiveService interface {
	Archive(ctx context.Context, entity models.ReportEntity, id, actorID string, req dto.ArchiveRequest) (*models.ArchiveState, error)
	Unarchive(ctx context.Context, entity models.ReportEntity, id, actorID string, req dto.ArchiveRequest) (*models.ArchiveState, error)
}

// ArchiveHandler toggles the archive flag of report records.
type ArchiveHandler struct {
	service archiveService
}

// NewArchiveHandler constructs the handler.
func NewArchiveHandler(service archiveService) *ArchiveHandler {
	return &ArchiveHandler{service: service}
}

// Archive godoc
// @Summary Archive a record
// @Description Hides a record from every report after confirming the admin password
// @Tags Archive
// @Accept json
// @Produce json
// @Param entity path string true "Report name" Enums(projects, awards, international-partners, modalities, impact-assessments)
// @Param id path string true "Record ID"
// @Param payload body dto.ArchiveRequest true "Password confirmation"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/{entity}/{id}/archive [patch]
func (h *ArchiveHandler) Archive(c *gin.Context) {
	h.toggle(c, h.service.Archive)
}

// Unarchive godoc
// @Summary Restore an archived record
// @Tags Archive
// @Accept json
// @Produce json
// @Param entity path string true "Report name"
// @Param id path string true "Record ID"
// @Param payload body dto.ArchiveRequest true "Password confirmation"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/{entity}/{id}/unarchive [patch]
func (h *ArchiveHandler) Unarchive(c *gin.Context) {
	h.toggle(c, h.service.Unarchive)
}

type archiveFunc func(ctx context.Context, entity models.ReportEntity, id, actorID string, req dto.ArchiveRequest) (*models.ArchiveState, error)

func (h *ArchiveHandler) toggle(c *gin.Context, apply archiveFunc) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	entity, ok := models.ParseReportEntity(c.Param("entity"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "resource not found"))
		return
	}
	var req dto.ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, "password confirmation failed",
			map[string]string{"password": "The password field is required."}))
		return
	}
	state, err := apply(c.Request.Context(), entity, c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}
