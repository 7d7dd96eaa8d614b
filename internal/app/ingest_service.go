package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"kairosai/internal/config"
	"kairosai/internal/index"
	"kairosai/internal/model"
	"kairosai/internal/pkg/docxextract"
	"kairosai/internal/pkg/pdfextract"
	"kairosai/internal/repository"
)

// ChunkIndexer is the indexing side of the chunk store as ingestion needs it.
type ChunkIndexer interface {
	Index(ctx context.Context, projectID uint, chunks []index.ChunkInput) error
	RemoveByDocument(documentID uint) error
	RemoveByProject(projectID uint) error
	DocumentStats(documentID uint) (index.Stats, error)
	ProjectStats(projectID uint) (index.Stats, error)
}

// IngestQueue hands uploaded documents to the background processing worker.
type IngestQueue interface {
	Publish(ctx context.Context, doc model.Document) error
}

// IngestService owns the upload-to-index pipeline. Upload validates and
// stores the file, then enqueues it; Process runs in the worker and does the
// extract, chunk and embed work.
type IngestService struct {
	projectRepo *repository.ProjectRepository
	docRepo     *repository.DocumentRepository
	indexer     ChunkIndexer
	queue       IngestQueue
	storage     config.StorageConfig
}

func NewIngestService(
	projectRepo *repository.ProjectRepository,
	docRepo *repository.DocumentRepository,
	indexer ChunkIndexer,
	queue IngestQueue,
	storage config.StorageConfig,
) *IngestService {
	return &IngestService{
		projectRepo: projectRepo,
		docRepo:     docRepo,
		indexer:     indexer,
		queue:       queue,
		storage:     storage,
	}
}

type UploadInput struct {
	ProjectID        uint
	OriginalFilename string
	Size             int64
	Content          io.Reader
}

// Upload validates the file, writes it to the upload directory under a
// unique name and enqueues it for background processing. The returned
// document starts in the pending state.
func (s *IngestService) Upload(ctx context.Context, input UploadInput) (*model.Document, error) {
	if input.ProjectID == 0 || input.Content == nil {
		return nil, ErrInvalidInput
	}
	project, err := s.projectRepo.GetByID(input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	fileType := normalizeFileType(input.OriginalFilename)
	if fileType == "" {
		return nil, ErrUnsupportedFileType
	}
	if input.Size > s.storage.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	if err := os.MkdirAll(s.storage.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	storedName := uuid.New().String() + "." + fileType
	storedPath := filepath.Join(s.storage.UploadDir, storedName)

	out, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("create upload file failed: %w", err)
	}
	written, err := io.Copy(out, io.LimitReader(input.Content, s.storage.MaxFileSize+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(storedPath)
		return nil, fmt.Errorf("write upload file failed: %w", err)
	}
	if written > s.storage.MaxFileSize {
		_ = os.Remove(storedPath)
		return nil, ErrFileTooLarge
	}

	doc := &model.Document{
		ProjectID:        input.ProjectID,
		Filename:         storedName,
		OriginalFilename: input.OriginalFilename,
		FilePath:         storedPath,
		FileSize:         written,
		FileType:         fileType,
		Status:           model.DocumentStatusPending,
	}
	if err := s.docRepo.Create(doc); err != nil {
		_ = os.Remove(storedPath)
		return nil, err
	}

	if err := s.queue.Publish(ctx, *doc); err != nil {
		_ = s.docRepo.UpdateStatus(doc.ID, model.DocumentStatusFailed, "enqueue failed")
		return nil, ErrIngestEnqueue
	}
	return doc, nil
}

// Process extracts, chunks and indexes one uploaded document. The outcome is
// recorded on the document row so clients can poll for it.
func (s *IngestService) Process(ctx context.Context, documentID uint) error {
	doc, err := s.docRepo.GetByID(documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}

	if err := s.process(ctx, doc); err != nil {
		_ = s.docRepo.UpdateStatus(doc.ID, model.DocumentStatusFailed, err.Error())
		return err
	}
	return nil
}

func (s *IngestService) process(ctx context.Context, doc *model.Document) error {
	text, err := s.extractText(doc.FilePath, doc.FileType)
	if err != nil {
		return fmt.Errorf("extract text failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("document has no extractable text")
	}

	pieces := splitText(text, s.storage.ChunkSize, s.storage.ChunkOverlap)
	chunks := make([]index.ChunkInput, len(pieces))
	for i, piece := range pieces {
		chunks[i] = index.ChunkInput{
			DocumentID: doc.ID,
			ChunkIndex: i,
			Text:       piece,
			Metadata: map[string]any{
				"document_name": doc.OriginalFilename,
				"chunk_id":      fmt.Sprintf("%d_%d", doc.ID, i),
			},
		}
	}
	if err := s.indexer.Index(ctx, doc.ProjectID, chunks); err != nil {
		return err
	}

	return s.docRepo.UpdateStatus(doc.ID, model.DocumentStatusReady, fmt.Sprintf("%d chunks indexed", len(chunks)))
}

type DocumentStatus struct {
	Document model.Document `json:"document"`
	Chunks   int64          `json:"chunks"`
}

func (s *IngestService) Status(documentID uint) (*DocumentStatus, error) {
	doc, err := s.docRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	stats, err := s.indexer.DocumentStats(documentID)
	if err != nil {
		return nil, err
	}
	return &DocumentStatus{Document: *doc, Chunks: stats.TotalChunks}, nil
}

func (s *IngestService) List(projectID uint) ([]model.Document, error) {
	if projectID == 0 {
		return nil, ErrInvalidInput
	}
	return s.docRepo.ListByProjectID(projectID)
}

// Delete removes the document row, its chunks and the stored file.
func (s *IngestService) Delete(documentID uint) error {
	doc, err := s.docRepo.GetByID(documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}
	if err := s.indexer.RemoveByDocument(documentID); err != nil {
		return err
	}
	if doc.FilePath != "" {
		_ = os.Remove(doc.FilePath)
	}
	return s.docRepo.Delete(documentID)
}

func (s *IngestService) extractText(path, fileType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open stored file failed: %w", err)
	}
	defer f.Close()

	switch fileType {
	case "pdf":
		return pdfextract.ExtractText(f)
	case "docx":
		return docxextract.ExtractText(f)
	case "txt":
		b, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", ErrUnsupportedFileType
	}
}

func normalizeFileType(filename string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "pdf":
		return "pdf"
	case "docx":
		return "docx"
	case "txt":
		return "txt"
	default:
		return ""
	}
}

// splitText cuts text into overlapping chunks of at most size runes,
// preferring to break on a paragraph, newline or space near the cut point
// so chunks stay readable.
func splitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}

	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); {
		end := start + size
		if end >= len(runes) {
			chunk := strings.TrimSpace(string(runes[start:]))
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}
		end = snapToBoundary(runes, start, end)

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// snapToBoundary walks back from end looking for a natural break, but never
// past the middle of the window.
func snapToBoundary(runes []rune, start, end int) int {
	limit := start + (end-start)/2
	for i := end - 1; i > limit; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}
	for i := end - 1; i > limit; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return end
}
