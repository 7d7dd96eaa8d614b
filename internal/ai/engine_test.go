package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body["messages"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
}

func failingServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
}

func TestEngineNotConfigured(t *testing.T) {
	e := NewEngine(nil, "claude", ChatConfig{}, ChatConfig{})

	assert.False(t, e.Configured())
	assert.Equal(t, "", e.Provider())

	_, err := e.Generate(context.Background(), "hello", GenerateOptions{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	text, provider := e.GenerateWithFallback(context.Background(), "hello", "hello", "", GenerateOptions{})
	assert.Equal(t, "offline", provider)
	assert.NotEmpty(t, text)
}

func TestEngineProviderPreference(t *testing.T) {
	claude := ChatConfig{BaseURL: "http://localhost", APIKey: "ck", Model: "c"}
	gemini := ChatConfig{BaseURL: "http://localhost", APIKey: "gk", Model: "g"}

	assert.Equal(t, "claude", NewEngine(nil, "claude", claude, gemini).Provider())
	assert.Equal(t, "gemini", NewEngine(nil, "gemini", claude, gemini).Provider())

	// Preferred provider without credentials yields to the other.
	assert.Equal(t, "gemini", NewEngine(nil, "claude", ChatConfig{}, gemini).Provider())
}

func TestEngineGenerate(t *testing.T) {
	srv := completionServer(t, "  generated answer \n")
	defer srv.Close()

	e := NewEngine(nil, "claude",
		ChatConfig{BaseURL: srv.URL, APIKey: "key", Model: "test-model"},
		ChatConfig{},
	)

	text, err := e.Generate(context.Background(), "question", GenerateOptions{MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "generated answer", text)
}

func TestEngineGenerateWrapsProviderError(t *testing.T) {
	srv := failingServer()
	defer srv.Close()

	e := NewEngine(nil, "claude",
		ChatConfig{BaseURL: srv.URL, APIKey: "key", Model: "test-model"},
		ChatConfig{},
	)

	_, err := e.Generate(context.Background(), "question", GenerateOptions{})
	require.Error(t, err)
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "claude", perr.Provider)
}

func TestEngineGenerateWithFallbackChain(t *testing.T) {
	broken := failingServer()
	defer broken.Close()
	healthy := completionServer(t, "from the backup provider")
	defer healthy.Close()

	e := NewEngine(nil, "claude",
		ChatConfig{BaseURL: broken.URL, APIKey: "ck", Model: "c"},
		ChatConfig{BaseURL: healthy.URL, APIKey: "gk", Model: "g"},
	)

	text, provider := e.GenerateWithFallback(context.Background(), "question", "question", "", GenerateOptions{})
	assert.Equal(t, "gemini", provider)
	assert.Equal(t, "from the backup provider", text)
}

func TestEngineGenerateWithFallbackAllProvidersDown(t *testing.T) {
	broken := failingServer()
	defer broken.Close()

	e := NewEngine(nil, "claude",
		ChatConfig{BaseURL: broken.URL, APIKey: "ck", Model: "c"},
		ChatConfig{BaseURL: broken.URL, APIKey: "gk", Model: "g"},
	)

	text, provider := e.GenerateWithFallback(context.Background(), "what is this about", "what is this about",
		"a long enough document context to trigger the document analysis branch of the template", GenerateOptions{})
	assert.Equal(t, "offline", provider)
	assert.Contains(t, text, "Offline Mode")
}

func TestEngineRejectsEmptyCompletion(t *testing.T) {
	srv := completionServer(t, "   ")
	defer srv.Close()

	e := NewEngine(nil, "claude",
		ChatConfig{BaseURL: srv.URL, APIKey: "key", Model: "test-model"},
		ChatConfig{},
	)

	_, err := e.Generate(context.Background(), "question", GenerateOptions{})
	assert.Error(t, err)
}

func TestOfflineResponseBranches(t *testing.T) {
	longContext := "This project targets small logistics companies with a route planning product. " +
		"The documents describe market sizing, competitor analysis and a phased rollout plan."

	withDocs := OfflineResponse("give me a summary", longContext)
	assert.Contains(t, withDocs, "Document Analysis")

	mvp := OfflineResponse("build an mvp plan", longContext)
	assert.Contains(t, mvp, "MVP Strategy Generation")

	noDocs := OfflineResponse("how do I upload documents", "")
	assert.Contains(t, noDocs, "Document Upload & Analysis")

	generic := OfflineResponse("hi", "")
	assert.Contains(t, generic, "KairosAI")
}
