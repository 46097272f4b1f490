package models

// ScopedCounts counts the non-archived records scoped under a campus or campus college.
type ScopedCounts struct {
	Projects              int64 `db:"projects" json:"projects"`
	Awards                int64 `db:"awards" json:"awards"`
	InternationalPartners int64 `db:"international_partners" json:"international_partners"`
	Modalities            int64 `db:"modalities" json:"modalities"`
	ImpactAssessments     int64 `db:"impact_assessments" json:"impact_assessments"`
}

// CampusSummary is a campus with its record counts.
type CampusSummary struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	ScopedCounts
}

// CollegeSummary is a college offered on a campus with its record counts.
type CollegeSummary struct {
	ID              string `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	CampusCollegeID string `db:"campus_college_id" json:"campus_college_id"`
	ScopedCounts
}
