package model

import "time"

// GeneratedDocument is one version of an AI-generated strategic document.
// For a given (project_id, document_type) at most one row carries is_latest.
type GeneratedDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProjectID    uint      `gorm:"not null;index:idx_gen_latest,priority:1" json:"project_id"`
	DocumentType string    `gorm:"size:50;not null;index:idx_gen_latest,priority:2" json:"document_type"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Content      string    `gorm:"type:longtext;not null" json:"content"`
	Version      int       `gorm:"not null;default:1" json:"version"`
	IsLatest     bool      `gorm:"not null;default:true;index:idx_gen_latest,priority:3" json:"is_latest"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
