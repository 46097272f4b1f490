package models

// Relations holds the display relations eager loaded for a report row.
type Relations struct {
	Owner         *User          `db:"-" json:"owner,omitempty"`
	Project       *Project       `db:"-" json:"project,omitempty"`
	CampusCollege *CampusCollege `db:"-" json:"campus_college,omitempty"`
	Campus        *Campus        `db:"-" json:"campus,omitempty"`
	College       *College       `db:"-" json:"college,omitempty"`
}

// RelationKeys lists the foreign keys a row needs resolved.
type RelationKeys struct {
	UserID          *string
	ProjectID       *string
	CampusCollegeID *string
	CampusID        *string
	CollegeID       *string
}

// ReportRecord is implemented by every entity a report can list.
type ReportRecord interface {
	RelationKeys() RelationKeys
	Related() *Relations
}
