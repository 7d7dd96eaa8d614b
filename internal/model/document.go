package model

import "time"

// Ingestion status for an uploaded document. A document stays pending until the
// background worker has chunked and indexed it; failed is terminal.
const (
	DocumentStatusPending = "pending"
	DocumentStatusReady   = "ready"
	DocumentStatusFailed  = "failed"
)

type Document struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProjectID        uint      `gorm:"not null;index" json:"project_id"`
	Filename         string    `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string    `gorm:"size:255;not null" json:"original_filename"`
	FilePath         string    `gorm:"size:500;not null" json:"-"`
	FileSize         int64     `gorm:"not null" json:"file_size"`
	FileType         string    `gorm:"size:50;not null" json:"file_type"`
	Status           string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	StatusDetail     string    `gorm:"size:500" json:"status_detail,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
