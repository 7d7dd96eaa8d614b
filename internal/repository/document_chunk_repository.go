package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kairosai/internal/model"
)

type DocumentChunkRepository struct {
	db *gorm.DB
}

func NewDocumentChunkRepository(db *gorm.DB) *DocumentChunkRepository {
	return &DocumentChunkRepository{db: db}
}

// Upsert inserts chunks, replacing text, metadata and embedding on
// (document_id, chunk_index) conflicts so re-ingestion is idempotent.
func (r *DocumentChunkRepository) Upsert(chunks []model.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}, {Name: "chunk_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"chunk_text", "metadata", "embedding"}),
	}).Create(&chunks).Error
	if err != nil {
		return fmt.Errorf("upsert document chunks failed: %w", err)
	}
	return nil
}

func (r *DocumentChunkRepository) ListByProjectID(projectID uint) ([]model.DocumentChunk, error) {
	var chunks []model.DocumentChunk
	if err := r.db.Where("project_id = ?", projectID).Order("document_id ASC, chunk_index ASC").Find(&chunks).Error; err != nil {
		return nil, fmt.Errorf("list document chunks failed: %w", err)
	}
	return chunks, nil
}

func (r *DocumentChunkRepository) DeleteByDocumentID(documentID uint) error {
	if err := r.db.Where("document_id = ?", documentID).Delete(&model.DocumentChunk{}).Error; err != nil {
		return fmt.Errorf("delete document chunks failed: %w", err)
	}
	return nil
}

func (r *DocumentChunkRepository) DeleteByProjectID(projectID uint) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&model.DocumentChunk{}).Error; err != nil {
		return fmt.Errorf("delete document chunks by project failed: %w", err)
	}
	return nil
}

func (r *DocumentChunkRepository) CountByDocumentID(documentID uint) (int64, error) {
	var n int64
	if err := r.db.Model(&model.DocumentChunk{}).Where("document_id = ?", documentID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count document chunks failed: %w", err)
	}
	return n, nil
}

func (r *DocumentChunkRepository) CountByProjectID(projectID uint) (chunks, documents int64, err error) {
	if err = r.db.Model(&model.DocumentChunk{}).Where("project_id = ?", projectID).Count(&chunks).Error; err != nil {
		return 0, 0, fmt.Errorf("count project chunks failed: %w", err)
	}
	err = r.db.Model(&model.DocumentChunk{}).Where("project_id = ?", projectID).
		Distinct("document_id").Count(&documents).Error
	if err != nil {
		return 0, 0, fmt.Errorf("count project chunk documents failed: %w", err)
	}
	return chunks, documents, nil
}
