package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kairosai/internal/model"
)

type GeneratedDocumentRepository struct {
	db *gorm.DB
}

func NewGeneratedDocumentRepository(db *gorm.DB) *GeneratedDocumentRepository {
	return &GeneratedDocumentRepository{db: db}
}

// CreateNewVersion stores doc as the latest version of its (project, type)
// pair. Prior versions keep their rows but lose the latest flag; the new
// version number is assigned inside the transaction.
func (r *GeneratedDocumentRepository) CreateNewVersion(doc *model.GeneratedDocument) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.GeneratedDocument{}).
			Where("project_id = ? AND document_type = ? AND is_latest = ?", doc.ProjectID, doc.DocumentType, true).
			Update("is_latest", false).Error; err != nil {
			return err
		}

		var maxVersion int
		if err := tx.Model(&model.GeneratedDocument{}).
			Where("project_id = ? AND document_type = ?", doc.ProjectID, doc.DocumentType).
			Select("COALESCE(MAX(version), 0)").Scan(&maxVersion).Error; err != nil {
			return err
		}

		doc.Version = maxVersion + 1
		doc.IsLatest = true
		return tx.Create(doc).Error
	})
	if err != nil {
		return fmt.Errorf("create generated document version failed: %w", err)
	}
	return nil
}

func (r *GeneratedDocumentRepository) GetByID(id uint) (*model.GeneratedDocument, error) {
	var doc model.GeneratedDocument
	if err := r.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get generated document failed: %w", err)
	}
	return &doc, nil
}

func (r *GeneratedDocumentRepository) GetLatest(projectID uint, documentType string) (*model.GeneratedDocument, error) {
	var doc model.GeneratedDocument
	err := r.db.Where("project_id = ? AND document_type = ? AND is_latest = ?", projectID, documentType, true).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest generated document failed: %w", err)
	}
	return &doc, nil
}

// ListLatestByProjectID returns the latest version of each document type in
// the project. documentType narrows the result when non-empty.
func (r *GeneratedDocumentRepository) ListLatestByProjectID(projectID uint, documentType string) ([]model.GeneratedDocument, error) {
	q := r.db.Where("project_id = ? AND is_latest = ?", projectID, true)
	if documentType != "" {
		q = q.Where("document_type = ?", documentType)
	}
	var list []model.GeneratedDocument
	if err := q.Order("updated_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list generated documents failed: %w", err)
	}
	return list, nil
}

func (r *GeneratedDocumentRepository) ListVersions(projectID uint, documentType string) ([]model.GeneratedDocument, error) {
	var list []model.GeneratedDocument
	err := r.db.Where("project_id = ? AND document_type = ?", projectID, documentType).
		Order("version DESC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list generated document versions failed: %w", err)
	}
	return list, nil
}

func (r *GeneratedDocumentRepository) Update(doc *model.GeneratedDocument) error {
	if err := r.db.Save(doc).Error; err != nil {
		return fmt.Errorf("update generated document failed: %w", err)
	}
	return nil
}

// Delete removes one version. When the latest version is deleted the most
// recent remaining version is promoted so the latest flag stays meaningful.
func (r *GeneratedDocumentRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var doc model.GeneratedDocument
		if err := tx.First(&doc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&model.GeneratedDocument{}, id).Error; err != nil {
			return err
		}
		if !doc.IsLatest {
			return nil
		}

		var next model.GeneratedDocument
		err := tx.Where("project_id = ? AND document_type = ?", doc.ProjectID, doc.DocumentType).
			Order("version DESC").First(&next).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Model(&next).Update("is_latest", true).Error
	})
	if err != nil {
		return fmt.Errorf("delete generated document failed: %w", err)
	}
	return nil
}

func (r *GeneratedDocumentRepository) DeleteByProjectID(projectID uint) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&model.GeneratedDocument{}).Error; err != nil {
		return fmt.Errorf("delete generated documents by project failed: %w", err)
	}
	return nil
}
