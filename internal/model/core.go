package model

import "time"

// Upload statuses
const (
	StatusValid    = "valid"
	StatusRejected = "rejected"
)

// Upload represents one processed CSV file
type Upload struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	Checksum    string    `json:"checksum"`
	Status      string    `json:"status"`
	RecordCount int       `json:"recordCount"`
	ErrorCount  int       `json:"errorCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsValid reports whether the upload passed validation.
func (u *Upload) IsValid() bool {
	return u.Status == StatusValid
}
