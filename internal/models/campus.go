package models

import "time"

// Campus is a top-level institutional site.
type Campus struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Logo      *string   `db:"logo" json:"logo,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// College is an academic unit offered on one or more campuses.
type College struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Logo      *string   `db:"logo" json:"logo,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CampusCollege pairs one campus with one college and scopes most reportable records.
type CampusCollege struct {
	ID          string `db:"id" json:"id"`
	CampusID    string `db:"campus_id" json:"campus_id"`
	CollegeID   string `db:"college_id" json:"college_id"`
	CampusName  string `db:"campus_name" json:"campus_name"`
	CollegeName string `db:"college_name" json:"college_name"`
}
