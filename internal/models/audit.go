package models

import "time"

// Audit actions recorded by the admin API.
const (
	AuditActionLogin     = "LOGIN"
	AuditActionArchive   = "ARCHIVE"
	AuditActionUnarchive = "UNARCHIVE"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID          string    `db:"id" json:"id"`
	UserID      *string   `db:"user_id" json:"user_id,omitempty"`
	Action      string    `db:"action" json:"action"`
	ModelType   *string   `db:"model_type" json:"model_type,omitempty"`
	ModelID     *string   `db:"model_id" json:"model_id,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	OldValues   *string   `db:"old_values" json:"old_values,omitempty"`
	NewValues   *string   `db:"new_values" json:"new_values,omitempty"`
	IPAddress   *string   `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent   *string   `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Relations
}

func (a *AuditLog) RelationKeys() RelationKeys { return RelationKeys{UserID: a.UserID} }

func (a *AuditLog) Related() *Relations { return &a.Relations }
