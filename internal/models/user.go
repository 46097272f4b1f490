package models

import (
	"strings"
	"time"
)

// UserType separates portal administrators from regular contributors.
type UserType string

const (
	UserTypeAdmin UserType = "admin"
	UserTypeUser  UserType = "user"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	MiddleName   *string   `db:"middle_name" json:"middle_name,omitempty"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	UserType     UserType  `db:"user_type" json:"user_type"`
	CampusID     *string   `db:"campus_id" json:"campus_id,omitempty"`
	CollegeID    *string   `db:"college_id" json:"college_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	Relations
}

// FullName joins the name parts, skipping an empty middle name.
func (u User) FullName() string {
	parts := []string{u.FirstName}
	if u.MiddleName != nil && strings.TrimSpace(*u.MiddleName) != "" {
		parts = append(parts, strings.TrimSpace(*u.MiddleName))
	}
	parts = append(parts, u.LastName)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// IsAdmin reports whether the user may access admin routes.
func (u User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

func (u *User) RelationKeys() RelationKeys {
	return RelationKeys{CampusID: u.CampusID, CollegeID: u.CollegeID}
}

func (u *User) Related() *Relations { return &u.Relations }

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Links      PaginationLinks `json:"links"`
}

// PaginationLinks carries page URLs that keep every filter query parameter.
type PaginationLinks struct {
	First string  `json:"first"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
	Last  string  `json:"last"`
}
