package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

const recordDateLayout = "Jan 02, 2006"

type reportColumn struct {
	header string
	value  func(models.ReportRecord) string
}

type reportLayout struct {
	title   string
	columns []reportColumn
}

func column[T any](header string, value func(*T) string) reportColumn {
	return reportColumn{header: header, value: func(record models.ReportRecord) string {
		typed, ok := any(record).(*T)
		if !ok {
			return ""
		}
		return value(typed)
	}}
}

func (l reportLayout) headers() []string {
	headers := make([]string, len(l.columns))
	for i, c := range l.columns {
		headers[i] = c.header
	}
	return headers
}

func (l reportLayout) rows(records []models.ReportRecord) []map[string]string {
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		row := make(map[string]string, len(l.columns))
		for _, c := range l.columns {
			row[c.header] = c.value(record)
		}
		rows = append(rows, row)
	}
	return rows
}

func text(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func day(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.Format(recordDateLayout)
}

func number(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func ownerName(rel *models.Relations) string {
	if rel.Owner == nil {
		return ""
	}
	return rel.Owner.FullName()
}

func campusName(rel *models.Relations) string {
	switch {
	case rel.CampusCollege != nil:
		return rel.CampusCollege.CampusName
	case rel.Campus != nil:
		return rel.Campus.Name
	}
	return ""
}

func collegeName(rel *models.Relations) string {
	switch {
	case rel.CampusCollege != nil:
		return rel.CampusCollege.CollegeName
	case rel.College != nil:
		return rel.College.Name
	}
	return ""
}

func projectName(rel *models.Relations) string {
	if rel.Project == nil {
		return ""
	}
	return rel.Project.Name
}

func reportLayouts() map[models.ReportEntity]reportLayout {
	return map[models.ReportEntity]reportLayout{
		models.ReportProjects: {title: "Projects Report", columns: []reportColumn{
			column("Name", func(p *models.Project) string { return p.Name }),
			column("Leader", func(p *models.Project) string { return text(p.Leader) }),
			column("Agency Partner", func(p *models.Project) string { return text(p.AgencyPartner) }),
			column("Category", func(p *models.Project) string { return text(p.Category) }),
			column("Start Date", func(p *models.Project) string { return day(p.StartDate) }),
			column("End Date", func(p *models.Project) string { return day(p.EndDate) }),
			column("Campus", func(p *models.Project) string { return campusName(p.Related()) }),
			column("College", func(p *models.Project) string { return collegeName(p.Related()) }),
			column("Encoded By", func(p *models.Project) string { return ownerName(p.Related()) }),
		}},
		models.ReportAwards: {title: "Awards Report", columns: []reportColumn{
			column("Award", func(a *models.Award) string { return a.AwardName }),
			column("Awarding Body", func(a *models.Award) string { return text(a.AwardingBody) }),
			column("People Involved", func(a *models.Award) string { return text(a.PeopleInvolved) }),
			column("Level", func(a *models.Award) string { return text(a.Level) }),
			column("Date Received", func(a *models.Award) string { return day(a.DateReceived) }),
			column("Campus", func(a *models.Award) string { return campusName(a.Related()) }),
			column("College", func(a *models.Award) string { return collegeName(a.Related()) }),
			column("Encoded By", func(a *models.Award) string { return ownerName(a.Related()) }),
		}},
		models.ReportInternationalPartners: {title: "International Partners Report", columns: []reportColumn{
			column("Agency Partner", func(p *models.InternationalPartner) string { return p.AgencyPartner }),
			column("Location", func(p *models.InternationalPartner) string { return text(p.Location) }),
			column("Activity", func(p *models.InternationalPartner) string { return text(p.ActivityConducted) }),
			column("Start Date", func(p *models.InternationalPartner) string { return day(p.StartDate) }),
			column("End Date", func(p *models.InternationalPartner) string { return day(p.EndDate) }),
			column("Participants", func(p *models.InternationalPartner) string { return number(p.NumberOfParticipants) }),
			column("Committee", func(p *models.InternationalPartner) string { return number(p.NumberOfCommittee) }),
			column("Campus", func(p *models.InternationalPartner) string { return campusName(p.Related()) }),
			column("College", func(p *models.InternationalPartner) string { return collegeName(p.Related()) }),
		}},
		models.ReportModalities: {title: "Modalities Report", columns: []reportColumn{
			column("Project", func(m *models.Modality) string { return projectName(m.Related()) }),
			column("Modality", func(m *models.Modality) string { return m.Modality }),
			column("TV Channel", func(m *models.Modality) string { return text(m.TVChannel) }),
			column("Radio", func(m *models.Modality) string { return text(m.Radio) }),
			column("Online Link", func(m *models.Modality) string { return text(m.OnlineLink) }),
			column("Period", func(m *models.Modality) string { return text(m.Period) }),
			column("Partner Agency", func(m *models.Modality) string { return text(m.PartnerAgency) }),
			column("Campus", func(m *models.Modality) string { return campusName(m.Related()) }),
			column("College", func(m *models.Modality) string { return collegeName(m.Related()) }),
		}},
		models.ReportImpactAssessments: {title: "Impact Assessments Report", columns: []reportColumn{
			column("Project", func(i *models.ImpactAssessment) string { return projectName(i.Related()) }),
			column("Beneficiary", func(i *models.ImpactAssessment) string { return i.Beneficiary }),
			column("Geographic Coverage", func(i *models.ImpactAssessment) string { return text(i.GeographicCoverage) }),
			column("Direct Beneficiaries", func(i *models.ImpactAssessment) string { return number(i.NumDirectBeneficiary) }),
			column("Indirect Beneficiaries", func(i *models.ImpactAssessment) string { return number(i.NumIndirectBeneficiary) }),
			column("Campus", func(i *models.ImpactAssessment) string { return campusName(i.Related()) }),
			column("College", func(i *models.ImpactAssessment) string { return collegeName(i.Related()) }),
		}},
		models.ReportResolutions: {title: "Resolutions Report", columns: []reportColumn{
			column("Resolution Number", func(r *models.Resolution) string { return r.ResolutionNumber }),
			column("Partner Agency", func(r *models.Resolution) string { return text(r.PartnerAgency) }),
			column("Effectivity", func(r *models.Resolution) string { return day(r.YearOfEffectivity) }),
			column("Expiration", func(r *models.Resolution) string { return day(r.Expiration) }),
			column("Status", func(r *models.Resolution) string { return statusLabels(r.Statuses) }),
			column("Encoded By", func(r *models.Resolution) string { return ownerName(r.Related()) }),
		}},
		models.ReportUsers: {title: "Users Report", columns: []reportColumn{
			column("Name", func(u *models.User) string { return u.FullName() }),
			column("Email", func(u *models.User) string { return u.Email }),
			column("User Type", func(u *models.User) string { return string(u.UserType) }),
			column("Campus", func(u *models.User) string { return campusName(u.Related()) }),
			column("College", func(u *models.User) string { return collegeName(u.Related()) }),
			column("Registered", func(u *models.User) string { return day(&u.CreatedAt) }),
		}},
		models.ReportAuditLogs: {title: "Audit Logs Report", columns: []reportColumn{
			column("Date", func(a *models.AuditLog) string { return a.CreatedAt.Format(recordDateLayout + " 15:04") }),
			column("User", func(a *models.AuditLog) string { return ownerName(a.Related()) }),
			column("Action", func(a *models.AuditLog) string { return a.Action }),
			column("Model", func(a *models.AuditLog) string { return text(a.ModelType) }),
			column("Description", func(a *models.AuditLog) string { return text(a.Description) }),
			column("IP Address", func(a *models.AuditLog) string { return text(a.IPAddress) }),
		}},
	}
}

var statusTitles = map[string]string{
	models.ResolutionActive:       "Active",
	models.ResolutionExpired:      "Expired",
	models.ResolutionExpiringSoon: "Expiring Soon",
	models.ResolutionPending:      "Pending",
}

func statusLabels(statuses []string) string {
	labels := make([]string, 0, len(statuses))
	for _, status := range statuses {
		labels = append(labels, statusTitles[status])
	}
	return strings.Join(labels, ", ")
}
