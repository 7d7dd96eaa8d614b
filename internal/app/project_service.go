package app

import (
	"context"
	"os"
	"strings"

	"kairosai/internal/index"
	"kairosai/internal/model"
	"kairosai/internal/repository"
)

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	docRepo     *repository.DocumentRepository
	chatRepo    *repository.ChatMessageRepository
	genRepo     *repository.GeneratedDocumentRepository
	indexer     ChunkIndexer
	history     HistoryCache
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	docRepo *repository.DocumentRepository,
	chatRepo *repository.ChatMessageRepository,
	genRepo *repository.GeneratedDocumentRepository,
	indexer ChunkIndexer,
	history HistoryCache,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		docRepo:     docRepo,
		chatRepo:    chatRepo,
		genRepo:     genRepo,
		indexer:     indexer,
		history:     history,
	}
}

type ProjectInput struct {
	Name        string
	Description string
}

func (s *ProjectService) Create(input ProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	project := &model.Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Get(id uint) (*model.Project, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) List() ([]model.Project, error) {
	return s.projectRepo.List()
}

func (s *ProjectService) Update(id uint, input ProjectInput) (*model.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		project.Name = name
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		project.Description = desc
	}
	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and everything hanging off it: stored files,
// index chunks, document rows, chat history and generated documents.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	project, err := s.Get(id)
	if err != nil {
		return err
	}

	paths, err := s.docRepo.ListFilePathsByProjectID(project.ID)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if path != "" {
			_ = os.Remove(path)
		}
	}

	if err := s.indexer.RemoveByProject(project.ID); err != nil {
		return err
	}
	if err := s.docRepo.DeleteByProjectID(project.ID); err != nil {
		return err
	}
	if err := s.chatRepo.DeleteByProjectID(project.ID); err != nil {
		return err
	}
	if err := s.genRepo.DeleteByProjectID(project.ID); err != nil {
		return err
	}
	if s.history != nil {
		_ = s.history.DeleteHistory(ctx, project.ID)
	}
	return s.projectRepo.Delete(project.ID)
}

// Stats reports how much of the project is indexed.
func (s *ProjectService) Stats(id uint) (*index.Stats, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	stats, err := s.indexer.ProjectStats(id)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
