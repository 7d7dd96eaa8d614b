package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"kairosai/internal/model"
)

const (
	defaultTopK        = 5
	embeddingBatchSize = 10 // embedding APIs often limit batch size
)

// ErrIndex marks embedding/index failures; query callers are expected to
// degrade to "no results" rather than failing the request.
var ErrIndex = errors.New("embedding index operation failed")

// Embedder turns text into vectors. The same text must always produce the
// same vector (within floating-point tolerance).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkInput is one fragment to index. Embedding may be pre-computed;
// otherwise the store embeds Text itself.
type ChunkInput struct {
	DocumentID uint
	ChunkIndex int
	Text       string
	Metadata   map[string]any
	Embedding  []float32
}

// RetrievedChunk is an ephemeral similarity-search hit. Distance ascends with
// dissimilarity; results are always sorted by non-decreasing distance.
type RetrievedChunk struct {
	ChunkID  uint           `json:"chunk_id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Distance float32        `json:"distance"`
}

// Stats summarizes index contents for a document or project filter.
type Stats struct {
	TotalChunks    int64 `json:"total_chunks"`
	TotalDocuments int64 `json:"total_documents"`
}

type chunkRepository interface {
	Upsert(chunks []model.DocumentChunk) error
	ListByProjectID(projectID uint) ([]model.DocumentChunk, error)
	DeleteByDocumentID(documentID uint) error
	DeleteByProjectID(projectID uint) error
	CountByDocumentID(documentID uint) (int64, error)
	CountByProjectID(projectID uint) (chunks, documents int64, err error)
}

// ChunkStore is the embedding index: chunk rows with JSON-encoded vectors,
// searched by brute-force cosine distance filtered to one project. No result
// caching; projects mutate too often for that to be safe.
type ChunkStore struct {
	embedder Embedder
	repo     chunkRepository
}

func NewChunkStore(embedder Embedder, repo chunkRepository) *ChunkStore {
	return &ChunkStore{embedder: embedder, repo: repo}
}

// Index embeds chunks that arrive without a vector and upserts all of them.
// Idempotent on (document_id, chunk_index).
func (s *ChunkStore) Index(ctx context.Context, projectID uint, chunks []ChunkInput) error {
	if len(chunks) == 0 {
		return nil
	}

	var pendingTexts []string
	var pendingIdx []int
	for i := range chunks {
		if len(chunks[i].Embedding) == 0 {
			pendingTexts = append(pendingTexts, chunks[i].Text)
			pendingIdx = append(pendingIdx, i)
		}
	}
	for start := 0; start < len(pendingTexts); start += embeddingBatchSize {
		end := start + embeddingBatchSize
		if end > len(pendingTexts) {
			end = len(pendingTexts)
		}
		vectors, err := s.embedder.EmbedBatch(ctx, pendingTexts[start:end])
		if err != nil {
			return fmt.Errorf("%w: embed chunk batch: %v", ErrIndex, err)
		}
		if len(vectors) != end-start {
			return fmt.Errorf("%w: embedding count mismatch", ErrIndex)
		}
		for j, vec := range vectors {
			chunks[pendingIdx[start+j]].Embedding = vec
		}
	}

	rows := make([]model.DocumentChunk, len(chunks))
	for i, in := range chunks {
		metadata := map[string]any{
			"document_id":  in.DocumentID,
			"project_id":   projectID,
			"chunk_index":  in.ChunkIndex,
			"chunk_length": len(in.Text),
		}
		for k, v := range in.Metadata {
			metadata[k] = v
		}
		rows[i] = model.DocumentChunk{
			DocumentID: in.DocumentID,
			ProjectID:  projectID,
			ChunkIndex: in.ChunkIndex,
			ChunkText:  in.Text,
		}
		rows[i].SetEmbedding(in.Embedding)
		rows[i].SetMetadata(metadata)
	}
	if err := s.repo.Upsert(rows); err != nil {
		return fmt.Errorf("%w: upsert chunks: %v", ErrIndex, err)
	}
	return nil
}

// Query embeds the text and returns up to k chunks of the project ordered by
// increasing distance. A project with no indexed chunks yields an empty
// result, not an error.
func (s *ChunkStore) Query(ctx context.Context, text string, projectID uint, k int) ([]RetrievedChunk, error) {
	if k <= 0 {
		k = defaultTopK
	}

	rows, err := s.repo.ListByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: list project chunks: %v", ErrIndex, err)
	}
	if len(rows) == 0 {
		return []RetrievedChunk{}, nil
	}

	queryVec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", ErrIndex, err)
	}

	results := make([]RetrievedChunk, 0, len(rows))
	for i := range rows {
		results = append(results, RetrievedChunk{
			ChunkID:  rows[i].ID,
			Content:  rows[i].ChunkText,
			Metadata: rows[i].MetadataMap(),
			Distance: cosineDistance(queryVec, rows[i].EmbeddingVector()),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// RemoveByDocument deletes all chunks of the document; no-op when none exist.
func (s *ChunkStore) RemoveByDocument(documentID uint) error {
	if err := s.repo.DeleteByDocumentID(documentID); err != nil {
		return fmt.Errorf("%w: delete document chunks: %v", ErrIndex, err)
	}
	return nil
}

// RemoveByProject deletes all chunks of the project; no-op when none exist.
func (s *ChunkStore) RemoveByProject(projectID uint) error {
	if err := s.repo.DeleteByProjectID(projectID); err != nil {
		return fmt.Errorf("%w: delete project chunks: %v", ErrIndex, err)
	}
	return nil
}

func (s *ChunkStore) DocumentStats(documentID uint) (Stats, error) {
	count, err := s.repo.CountByDocumentID(documentID)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: document stats: %v", ErrIndex, err)
	}
	docs := int64(0)
	if count > 0 {
		docs = 1
	}
	return Stats{TotalChunks: count, TotalDocuments: docs}, nil
}

func (s *ChunkStore) ProjectStats(projectID uint) (Stats, error) {
	chunks, documents, err := s.repo.CountByProjectID(projectID)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: project stats: %v", ErrIndex, err)
	}
	return Stats{TotalChunks: chunks, TotalDocuments: documents}, nil
}

// cosineDistance is 1 - cosine similarity; mismatched or empty vectors rank last.
func cosineDistance(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 2
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 2
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}
