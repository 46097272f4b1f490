package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ttms-admin-api/internal/service"
	"github.com/noah-isme/ttms-admin-api/pkg/response"
)

const healthPingTimeout = 2 * time.Second

// databasePinger is satisfied by *sqlx.DB.
type databasePinger interface {
	PingContext(ctx context.Context) error
}

// MetricsHandler serves health, Prometheus and process metric endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	db      databasePinger
}

// NewMetricsHandler constructs a metrics handler. db may be nil, in which case
// health only reports that the process is up.
func NewMetricsHandler(metrics *service.MetricsService, db databasePinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, db: db}
}

// Prometheus serves the scrape endpoint, or 503 when metrics are disabled.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health reports 200 while the database answers a ping and 503 otherwise.
func (h *MetricsHandler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}

// System godoc
// @Summary Process metrics snapshot
// @Description Cache hit ratio, request and export counters
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/system/metrics [get]
func (h *MetricsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
