package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairosai/internal/index"
	"kairosai/internal/model"
)

type fakeProjectFinder struct {
	project *model.Project
	err     error
}

func (f *fakeProjectFinder) GetByID(uint) (*model.Project, error) { return f.project, f.err }

type fakeChatStore struct {
	created []model.ChatMessage
	recent  []model.ChatMessage
}

func (f *fakeChatStore) Create(message *model.ChatMessage) error {
	f.created = append(f.created, *message)
	return nil
}

func (f *fakeChatStore) GetByID(uint) (*model.ChatMessage, error) { return nil, nil }

func (f *fakeChatStore) ListByProjectID(uint, int) ([]model.ChatMessage, error) {
	return f.recent, nil
}

func (f *fakeChatStore) ListRecentByProjectID(uint, int) ([]model.ChatMessage, error) {
	return f.recent, nil
}

func (f *fakeChatStore) DeleteByProjectID(uint) error { return nil }

func newTestChatService(retriever *fakeRetriever, gen *fakeGenerator, store *fakeChatStore) *ChatService {
	finder := &fakeProjectFinder{project: &model.Project{ID: 1, Name: "acme"}}
	return NewChatService(finder, store, retriever, gen, nil)
}

func TestChatNotConfigured(t *testing.T) {
	gen := &fakeGenerator{configured: false}
	store := &fakeChatStore{}
	svc := newTestChatService(&fakeRetriever{}, gen, store)

	result, err := svc.Chat(context.Background(), ChatInput{ProjectID: 1, Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, notConfiguredResponse, result.Response)
	assert.Equal(t, []Source{}, result.Sources)
	assert.Zero(t, gen.calls)

	require.Len(t, store.created, 1)
	assert.Equal(t, notConfiguredResponse, store.created[0].Response)
}

func TestChatWithoutIndexedDocuments(t *testing.T) {
	gen := &fakeGenerator{configured: true, provider: "gemini"}
	store := &fakeChatStore{}
	svc := newTestChatService(&fakeRetriever{}, gen, store)

	result, err := svc.Chat(context.Background(), ChatInput{ProjectID: 1, Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, noDocumentsResponse, result.Response)
	assert.Equal(t, []Source{}, result.Sources)
	assert.Zero(t, gen.calls)

	require.Len(t, store.created, 1)
	assert.Equal(t, noDocumentsResponse, store.created[0].Response)
}

func TestChatIndexFailureDegradesToNoResults(t *testing.T) {
	retriever := &fakeRetriever{err: fmt.Errorf("%w: embed query: connection refused", index.ErrIndex)}
	gen := &fakeGenerator{configured: true, provider: "claude"}
	store := &fakeChatStore{}
	svc := newTestChatService(retriever, gen, store)

	result, err := svc.Chat(context.Background(), ChatInput{ProjectID: 1, Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, noDocumentsResponse, result.Response)
	assert.Equal(t, []Source{}, result.Sources)
	assert.Zero(t, gen.calls)
	require.Len(t, store.created, 1)
}

func TestChatOtherRetrievalErrorsPropagate(t *testing.T) {
	retriever := &fakeRetriever{err: context.Canceled}
	gen := &fakeGenerator{configured: true, provider: "claude"}
	store := &fakeChatStore{}
	svc := newTestChatService(retriever, gen, store)

	_, err := svc.Chat(context.Background(), ChatInput{ProjectID: 1, Message: "hello"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.created)
}

func TestChatAnswersFromChunks(t *testing.T) {
	retriever := &fakeRetriever{chunks: []index.RetrievedChunk{
		{Content: "budget is 100k", Distance: 0.1, Metadata: map[string]any{"document_id": float64(3), "chunk_index": float64(0)}},
	}}
	gen := &fakeGenerator{configured: true, provider: "claude", response: "The budget is 100k."}
	store := &fakeChatStore{}
	svc := newTestChatService(retriever, gen, store)

	result, err := svc.Chat(context.Background(), ChatInput{ProjectID: 1, Message: "what is the budget?"})
	require.NoError(t, err)

	assert.Equal(t, "The budget is 100k.", result.Response)
	assert.Equal(t, "claude", result.Provider)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "budget is 100k", result.Sources[0].ContentPreview)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.lastPrompt, "USER QUESTION: what is the budget?")

	require.Len(t, store.created, 1)
	assert.Equal(t, "what is the budget?", store.created[0].Message)
	assert.Equal(t, "The budget is 100k.", store.created[0].Response)
}

func TestSummarizeIndexFailureDegradesToNoResults(t *testing.T) {
	retriever := &fakeRetriever{err: fmt.Errorf("%w: list project chunks: timeout", index.ErrIndex)}
	gen := &fakeGenerator{configured: true, provider: "gemini"}
	svc := newTestChatService(retriever, gen, &fakeChatStore{})

	summary, err := svc.Summarize(context.Background(), 1, "general")
	require.NoError(t, err)
	assert.Equal(t, "No documents found for this project.", summary)
	assert.Zero(t, gen.calls)
}

func TestChatProjectNotFound(t *testing.T) {
	svc := NewChatService(&fakeProjectFinder{}, &fakeChatStore{}, &fakeRetriever{}, &fakeGenerator{configured: true}, nil)

	_, err := svc.Chat(context.Background(), ChatInput{ProjectID: 9, Message: "hi"})
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestFormatChatHistory(t *testing.T) {
	assert.Equal(t, "", formatChatHistory(nil))

	history := []model.ChatMessage{
		{Message: "first question", Response: "first answer"},
		{Message: "second question", Response: "second answer"},
	}
	out := formatChatHistory(history)
	assert.True(t, strings.HasPrefix(out, "PREVIOUS CONVERSATION:\n"))
	assert.Contains(t, out, "User: first question\nAssistant: first answer")
	assert.Contains(t, out, "User: second question\nAssistant: second answer")
}

func TestFormatChatHistoryKeepsRecentWindow(t *testing.T) {
	var history []model.ChatMessage
	for i := 0; i < 8; i++ {
		history = append(history, model.ChatMessage{
			Message:  "q" + strings.Repeat("x", i),
			Response: "a",
		})
	}
	out := formatChatHistory(history)

	assert.NotContains(t, out, "User: q\n")
	assert.Contains(t, out, "User: q"+strings.Repeat("x", 7))
	assert.Equal(t, chatHistoryWindow, strings.Count(out, "User: "))
}

func TestBuildRAGPrompt(t *testing.T) {
	out := buildRAGPrompt("what is the budget?", "Document 1:\nbudget is 100k", nil)
	assert.Contains(t, out, "DOCUMENT CONTEXT:\nDocument 1:\nbudget is 100k")
	assert.Contains(t, out, "USER QUESTION: what is the budget?")
	assert.NotContains(t, out, "PREVIOUS CONVERSATION")

	withHistory := buildRAGPrompt("and for next year?", "ctx", []model.ChatMessage{
		{Message: "what is the budget?", Response: "100k"},
	})
	assert.Contains(t, withHistory, "PREVIOUS CONVERSATION:\nUser: what is the budget?\nAssistant: 100k")
}

func TestBuildSources(t *testing.T) {
	long := strings.Repeat("é", sourcePreviewLen+50)
	sources := buildSources([]index.RetrievedChunk{
		{
			Content:  long,
			Distance: 0.25,
			Metadata: map[string]any{"document_id": float64(3), "chunk_index": float64(1)},
		},
		{Content: "short", Distance: 0.5, Metadata: map[string]any{}},
	})
	require.Len(t, sources, 2)

	preview := sources[0].ContentPreview
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.Len(t, []rune(preview), sourcePreviewLen+3)
	assert.Equal(t, float64(3), sources[0].DocumentID)
	assert.EqualValues(t, 0.25, sources[0].Distance)

	assert.Equal(t, "short", sources[1].ContentPreview)
	assert.Nil(t, sources[1].DocumentID)
}

func TestTrimHistory(t *testing.T) {
	history := []model.ChatMessage{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Len(t, trimHistory(history, 0), 3)
	assert.Len(t, trimHistory(history, 5), 3)

	trimmed := trimHistory(history, 2)
	require.Len(t, trimmed, 2)
	assert.Equal(t, uint(2), trimmed[0].ID)
	assert.Equal(t, uint(3), trimmed[1].ID)
}
