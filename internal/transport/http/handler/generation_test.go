package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairosai/internal/ai"
	"kairosai/internal/app"
	"kairosai/internal/index"
	"kairosai/internal/model"
	"kairosai/internal/prompt"
)

type stubRetriever struct{}

func (stubRetriever) Query(context.Context, string, uint, int) ([]index.RetrievedChunk, error) {
	return nil, nil
}

type stubGenerator struct{}

func (stubGenerator) Configured() bool { return true }

func (stubGenerator) Provider() string { return "claude" }

func (stubGenerator) Generate(context.Context, string, ai.GenerateOptions) (string, error) {
	return "# Stub Document\n\nGenerated body text for the stub document.", nil
}

func (stubGenerator) GenerateWithFallback(context.Context, string, string, string, ai.GenerateOptions) (string, string) {
	return "# Stub Document\n\nGenerated body text for the stub document.", "claude"
}

type stubDocumentStore struct{}

func (stubDocumentStore) CreateNewVersion(doc *model.GeneratedDocument) error {
	doc.ID = 1
	doc.Version = 1
	doc.IsLatest = true
	return nil
}

func newFactoryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	factory := app.NewFactoryService(stubRetriever{}, stubGenerator{}, prompt.NewRegistry(), stubDocumentStore{})
	h := NewGenerationHandler(nil, factory, nil)
	r := gin.New()
	r.POST("/api/v1/projects/:id/factory", h.Factory)
	return r
}

func postFactory(t *testing.T, r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/1/factory", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFactoryAcceptsUserPreferences(t *testing.T) {
	r := newFactoryRouter()

	w := postFactory(t, r, map[string]any{
		"document_type": "prd",
		"raw_brief":     "Build a B2B invoicing tool for small agencies.",
		"user_preferences": map[string]any{
			"tone":   "formal",
			"length": "short",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Code)

	var result app.FactoryResult
	require.NoError(t, json.Unmarshal(envelope.Data, &result))
	assert.True(t, result.Success)
	assert.Equal(t, uint(1), result.DocumentID)
}

func TestFactoryRejectsMissingBrief(t *testing.T) {
	r := newFactoryRouter()

	w := postFactory(t, r, map[string]any{"document_type": "prd"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
