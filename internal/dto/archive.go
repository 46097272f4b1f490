package dto

// ArchiveRequest confirms an archive mutation with the acting admin's password.
type ArchiveRequest struct {
	Password string `json:"password" validate:"required"`
}
