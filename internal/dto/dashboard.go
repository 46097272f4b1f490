package dto

import "github.com/noah-isme/ttms-admin-api/internal/models"

// AdminDashboardResponse captures the aggregated admin dashboard payload.
type AdminDashboardResponse struct {
	GeneratedAt string                         `json:"generated_at"`
	Totals      []EntityTotal                  `json:"totals"`
	ByCampus    []models.CampusSummary         `json:"by_campus"`
	Monthly     []EntityMonthly                `json:"monthly"`
	Resolutions *models.ResolutionStatusCounts `json:"resolutions,omitempty"`
}

// EntityTotal is the non-archived record count of one entity.
type EntityTotal struct {
	Entity models.ReportEntity `json:"entity"`
	Title  string              `json:"title"`
	Total  int64               `json:"total"`
}

// EntityMonthly is the per-month activity of one entity, most recent month first.
type EntityMonthly struct {
	Entity  models.ReportEntity `json:"entity"`
	Buckets []models.Bucket     `json:"buckets"`
}
