package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kairosai/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(id uint) (*model.Document, error) {
	var doc model.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByProjectID(projectID uint) ([]model.Document, error) {
	var list []model.Document
	if err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return list, nil
}

// ListFilePathsByProjectID returns stored file paths for cascade cleanup.
func (r *DocumentRepository) ListFilePathsByProjectID(projectID uint) ([]string, error) {
	var paths []string
	if err := r.db.Model(&model.Document{}).Where("project_id = ?", projectID).Pluck("file_path", &paths).Error; err != nil {
		return nil, fmt.Errorf("list document file paths failed: %w", err)
	}
	return paths, nil
}

func (r *DocumentRepository) UpdateStatus(id uint, status, detail string) error {
	updates := map[string]any{"status": status, "status_detail": detail}
	if err := r.db.Model(&model.Document{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update document status failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Document{}, id).Error; err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) DeleteByProjectID(projectID uint) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&model.Document{}).Error; err != nil {
		return fmt.Errorf("delete documents by project failed: %w", err)
	}
	return nil
}
