package dto

import "github.com/noah-isme/ttms-admin-api/internal/models"

// BrowseCollegesResponse lists the colleges offered on one campus.
type BrowseCollegesResponse struct {
	Campus   models.Option           `json:"campus"`
	Colleges []models.CollegeSummary `json:"colleges"`
}
