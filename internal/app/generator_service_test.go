package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairosai/internal/index"
	"kairosai/internal/model"
	"kairosai/internal/prompt"
)

type fakeGeneratedStore struct {
	saved  []*model.GeneratedDocument
	latest map[string]*model.GeneratedDocument
}

func (f *fakeGeneratedStore) CreateNewVersion(doc *model.GeneratedDocument) error {
	doc.ID = uint(len(f.saved) + 1)
	doc.Version = len(f.saved) + 1
	doc.IsLatest = true
	f.saved = append(f.saved, doc)
	return nil
}

func (f *fakeGeneratedStore) GetByID(uint) (*model.GeneratedDocument, error) { return nil, nil }

func (f *fakeGeneratedStore) GetLatest(_ uint, documentType string) (*model.GeneratedDocument, error) {
	return f.latest[documentType], nil
}

func (f *fakeGeneratedStore) ListLatestByProjectID(uint, string) ([]model.GeneratedDocument, error) {
	return nil, nil
}

func (f *fakeGeneratedStore) ListVersions(uint, string) ([]model.GeneratedDocument, error) {
	return nil, nil
}

func (f *fakeGeneratedStore) Update(*model.GeneratedDocument) error { return nil }

func (f *fakeGeneratedStore) Delete(uint) error { return nil }

func newTestGeneratorService(retriever *fakeRetriever, gen *fakeGenerator, store *fakeGeneratedStore) *GeneratorService {
	finder := &fakeProjectFinder{project: &model.Project{ID: 1, Name: "acme"}}
	return NewGeneratorService(finder, store, retriever, gen)
}

func TestGenerateNotConfiguredPersistsNothing(t *testing.T) {
	retriever := &fakeRetriever{}
	gen := &fakeGenerator{configured: false}
	store := &fakeGeneratedStore{}
	svc := newTestGeneratorService(retriever, gen, store)

	result, err := svc.Generate(context.Background(), 1, prompt.TypeMVP, "")
	require.NoError(t, err)

	assert.Equal(t, notConfiguredContent, result.Document.Content)
	assert.Zero(t, result.Document.ID)
	assert.Empty(t, store.saved)
	assert.Zero(t, retriever.queries)
	assert.Zero(t, gen.calls)
}

func TestGenerateIndexFailureContinuesWithoutContext(t *testing.T) {
	retriever := &fakeRetriever{err: fmt.Errorf("%w: embed query: connection refused", index.ErrIndex)}
	gen := &fakeGenerator{configured: true, provider: "claude", response: "# MVP Plan\n\ncontent"}
	store := &fakeGeneratedStore{}
	svc := newTestGeneratorService(retriever, gen, store)

	result, err := svc.Generate(context.Background(), 1, prompt.TypeMVP, "")
	require.NoError(t, err)

	assert.Equal(t, "# MVP Plan\n\ncontent", result.Document.Content)
	assert.Equal(t, "claude", result.Provider)
	assert.Contains(t, gen.lastPrompt, prompt.NoContentSentinel)
	require.Len(t, store.saved, 1)
	assert.True(t, store.saved[0].IsLatest)
}

func TestGenerateOtherRetrievalErrorsPropagate(t *testing.T) {
	retriever := &fakeRetriever{err: context.DeadlineExceeded}
	gen := &fakeGenerator{configured: true, provider: "claude", response: "doc"}
	store := &fakeGeneratedStore{}
	svc := newTestGeneratorService(retriever, gen, store)

	_, err := svc.Generate(context.Background(), 1, prompt.TypeMVP, "")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, store.saved)
}

func TestDefaultGenerateQuery(t *testing.T) {
	assert.Equal(t, "Generate MVP plan based on project requirements", defaultGenerateQuery(prompt.TypeMVP))
	assert.Equal(t, "Generate PRD based on project requirements", defaultGenerateQuery(prompt.TypePRD))
	assert.Equal(t, "project context requirements business goals user needs", defaultGenerateQuery(prompt.TypeDesign))
}

func TestGenerateOutlinePerType(t *testing.T) {
	for _, docType := range []prompt.DocumentType{
		prompt.TypeMVP, prompt.TypePRD, prompt.TypeRFP,
		prompt.TypeBusinessCase, prompt.TypeUserPersonas, prompt.TypeGTMStrategy,
	} {
		assert.NotEmpty(t, generateOutline(docType), "type %s", docType)
	}
}

func TestBuildGeneratePrompt(t *testing.T) {
	out := buildGeneratePrompt(prompt.TypeMVP, "focus on mobile", "some context")
	assert.Contains(t, out, "user request: 'focus on mobile'")
	assert.Contains(t, out, "DOCUMENT CONTEXT:\nsome context")
	assert.Contains(t, out, "Minimum Viable Product")

	// Blank requests get a type-derived default.
	out = buildGeneratePrompt(prompt.TypePRD, "  ", "ctx")
	assert.Contains(t, out, "user request: 'Generate Product Requirements Document'")
}

func TestBuildDesignPrompt(t *testing.T) {
	out := buildDesignPrompt("", "=== MVP Plan ===\ncontent")
	assert.Contains(t, out, "user request: 'Generate system design'")
	assert.Contains(t, out, "GENERATED DOCUMENTS CONTEXT:\n=== MVP Plan ===")
	assert.Contains(t, out, "## 1. Architecture Overview")
	assert.Contains(t, out, "## 7. Deployment Strategy")
}
