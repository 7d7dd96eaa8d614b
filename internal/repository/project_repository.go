package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kairosai/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *model.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("create project failed: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project failed: %w", err)
	}
	return &project, nil
}

func (r *ProjectRepository) List() ([]model.Project, error) {
	var list []model.Project
	if err := r.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list projects failed: %w", err)
	}
	return list, nil
}

func (r *ProjectRepository) Update(project *model.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		return fmt.Errorf("update project failed: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Project{}, id).Error; err != nil {
		return fmt.Errorf("delete project failed: %w", err)
	}
	return nil
}
