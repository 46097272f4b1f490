package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ttms-admin-api/internal/middleware"
	"github.com/noah-isme/ttms-admin-api/internal/models"
)

const filterDateLayout = "2006-01-02"

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.CurrentClaims(c)
}

func actorName(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims == nil {
		return ""
	}
	if name := strings.TrimSpace(claims.FullName); name != "" {
		return name
	}
	return claims.Email
}

// parseReportFilter reads report filters from the query string. Malformed dates and
// numbers are dropped rather than rejected.
func parseReportFilter(c *gin.Context) models.ReportFilter {
	query := func(key string) string { return strings.TrimSpace(c.Query(key)) }

	filter := models.ReportFilter{
		Search:    query("search"),
		CampusID:  query("campus_id"),
		CollegeID: query("college_id"),
		DateFrom:  queryDate(query("date_from")),
		DateTo:    queryDate(query("date_to")),
		SortBy:    query("sort_by"),
		SortOrder: query("sort_order"),

		ParticipantsMin: queryInt(query("participants_min")),
		ParticipantsMax: queryInt(query("participants_max")),
		CommitteeMin:    queryInt(query("committee_min")),
		CommitteeMax:    queryInt(query("committee_max")),
		DirectMin:       queryInt(query("direct_min")),
		DirectMax:       queryInt(query("direct_max")),
		IndirectMin:     queryInt(query("indirect_min")),
		IndirectMax:     queryInt(query("indirect_max")),

		ModalityType: query("modality_type"),
		ProjectID:    query("project_id"),
		UserID:       query("user_id"),
		UserType:     query("user_type"),
		Status:       query("status"),
		Category:     query("category"),
		Action:       query("action"),
	}
	if page, err := strconv.Atoi(query("page")); err == nil && page > 0 {
		filter.Page = page
	} else {
		filter.Page = 1
	}
	return filter
}

func queryDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(filterDateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

func queryInt(raw string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// paginationLinks fills page URLs that keep every query parameter of the current request.
func paginationLinks(c *gin.Context, p *models.Pagination) {
	if p == nil {
		return
	}
	last := p.TotalPages
	if last < 1 {
		last = 1
	}
	link := func(page int) string {
		values := c.Request.URL.Query()
		values.Set("page", strconv.Itoa(page))
		return c.Request.URL.Path + "?" + values.Encode()
	}
	p.Links.First = link(1)
	p.Links.Last = link(last)
	if p.Page > 1 {
		prev := link(min(p.Page-1, last))
		p.Links.Prev = &prev
	}
	if p.Page < last {
		next := link(p.Page + 1)
		p.Links.Next = &next
	}
}
