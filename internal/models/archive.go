package models

// Archivable reports whether the entity carries an is_archived flag.
func (e ReportEntity) Archivable() bool {
	switch e {
	case ReportProjects, ReportAwards, ReportInternationalPartners, ReportModalities, ReportImpactAssessments:
		return true
	default:
		return false
	}
}

// ArchiveState is the archive flag of one record after a mutation.
type ArchiveState struct {
	Entity     ReportEntity `json:"entity"`
	ID         string       `json:"id"`
	IsArchived bool         `json:"is_archived"`
}
