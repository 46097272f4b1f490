package dto

import "github.com/noah-isme/ttms-admin-api/internal/models"

// ReportPageResponse is the view model of one paginated report.
type ReportPageResponse struct {
	Entity     models.ReportEntity     `json:"entity"`
	Title      string                  `json:"title"`
	Records    []models.ReportRecord   `json:"records"`
	Statistics models.ReportStatistics `json:"statistics"`
	Options    ReportOptions           `json:"options"`
	Filters    map[string]string       `json:"filters"`
}

// ReportOptions populates report filter controls. They are never narrowed by the current filter.
type ReportOptions struct {
	Campuses  []models.Option `json:"campuses"`
	Colleges  []models.Option `json:"colleges"`
	Projects  []models.Option `json:"projects,omitempty"`
	Users     []models.Option `json:"users,omitempty"`
	Statuses  []string        `json:"statuses,omitempty"`
	UserTypes []string        `json:"user_types,omitempty"`
}
