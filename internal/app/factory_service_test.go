package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairosai/internal/ai"
	"kairosai/internal/index"
	"kairosai/internal/model"
	"kairosai/internal/prompt"
)

type fakeRetriever struct {
	chunks  []index.RetrievedChunk
	err     error
	queries int
}

func (f *fakeRetriever) Query(context.Context, string, uint, int) ([]index.RetrievedChunk, error) {
	f.queries++
	return f.chunks, f.err
}

type fakeGenerator struct {
	configured bool
	provider   string
	response   string
	err        error

	calls      int
	lastPrompt string
	lastOpts   ai.GenerateOptions
}

func (f *fakeGenerator) Configured() bool { return f.configured }

func (f *fakeGenerator) Provider() string { return f.provider }

func (f *fakeGenerator) Generate(_ context.Context, prompt string, opts ai.GenerateOptions) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastOpts = opts
	return f.response, f.err
}

func (f *fakeGenerator) GenerateWithFallback(_ context.Context, prompt, _, _ string, opts ai.GenerateOptions) (string, string) {
	f.calls++
	f.lastPrompt = prompt
	f.lastOpts = opts
	if f.err != nil {
		return ai.OfflineResponse("", ""), "offline"
	}
	return f.response, f.provider
}

type fakeDocumentStore struct {
	saved *model.GeneratedDocument
	err   error
}

func (f *fakeDocumentStore) CreateNewVersion(doc *model.GeneratedDocument) error {
	if f.err != nil {
		return f.err
	}
	doc.ID = 42
	doc.Version = 1
	doc.IsLatest = true
	f.saved = doc
	return nil
}

func newTestFactory(gen *fakeGenerator, store *fakeDocumentStore) *FactoryService {
	return NewFactoryService(&fakeRetriever{}, gen, prompt.NewRegistry(), store)
}

func TestFactoryProcess(t *testing.T) {
	gen := &fakeGenerator{
		configured: true,
		provider:   "claude",
		response: "# Acme PRD\n\n## Overview\n\nSome overview text.\n\n## Requirements\n\n" +
			"Detailed requirements here.\n\n### FOR DEVELOPERS:\nTechnical notes.\n\n### FOR MANAGERS:\nTimeline notes.\n",
	}
	store := &fakeDocumentStore{}
	svc := newTestFactory(gen, store)

	result, err := svc.Process(context.Background(), FactoryInput{
		ProjectID:    1,
		DocumentType: prompt.TypePRD,
		RawBrief:     "Build a task manager for plumbers",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, uint(42), result.DocumentID)
	assert.Equal(t, "prd", result.DocumentType)
	assert.Equal(t, "Acme PRD", result.Title)
	assert.Equal(t, "Technical notes.", result.AudienceVersions["developers"])
	assert.Equal(t, "Timeline notes.", result.AudienceVersions["managers"])
	assert.Equal(t, "claude", result.ProcessingInfo.AIProvider)

	require.NotNil(t, store.saved)
	assert.Equal(t, "Acme PRD", store.saved.Title)
	assert.Equal(t, "prd", store.saved.DocumentType)

	assert.Equal(t, 4000, gen.lastOpts.MaxTokens)
	assert.Contains(t, gen.lastPrompt, "Build a task manager for plumbers")
	assert.NotContains(t, gen.lastPrompt, "{raw_brief}")
}

func TestFactoryProcessFallsBackToTemplate(t *testing.T) {
	gen := &fakeGenerator{configured: true, provider: "claude", err: errors.New("upstream down")}
	store := &fakeDocumentStore{}
	svc := newTestFactory(gen, store)

	result, err := svc.Process(context.Background(), FactoryInput{
		ProjectID:    1,
		DocumentType: prompt.TypeMVP,
		RawBrief:     "launch plan",
	})
	require.NoError(t, err)

	assert.Equal(t, "template", result.ProcessingInfo.AIProvider)
	assert.Equal(t, "template", result.Metadata["ai_provider"])
	assert.NotEmpty(t, result.Content)
	require.NotNil(t, store.saved)
}

func TestFactoryProcessValidation(t *testing.T) {
	gen := &fakeGenerator{configured: true, provider: "claude", response: "# Doc"}
	svc := newTestFactory(gen, &fakeDocumentStore{})

	_, err := svc.Process(context.Background(), FactoryInput{DocumentType: prompt.TypePRD, RawBrief: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Process(context.Background(), FactoryInput{ProjectID: 1, DocumentType: prompt.TypePRD, RawBrief: "  \n"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Process(context.Background(), FactoryInput{ProjectID: 1, DocumentType: prompt.TypeDesign, RawBrief: "x"})
	assert.ErrorIs(t, err, prompt.ErrUnsupportedDocumentType)
}

func TestFactoryProcessNotConfigured(t *testing.T) {
	svc := newTestFactory(&fakeGenerator{configured: false}, &fakeDocumentStore{})

	_, err := svc.Process(context.Background(), FactoryInput{
		ProjectID:    1,
		DocumentType: prompt.TypePRD,
		RawBrief:     "x",
	})
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "My Product", extractTitle("# My Product\n\nbody"))
	assert.Equal(t, "Late Title", extractTitle("intro line\n# Late Title\nbody"))

	// Subheadings and headings past the first five lines do not count.
	assert.Equal(t, "Generated Document", extractTitle("## Section\nbody"))
	assert.Equal(t, "Generated Document", extractTitle("a\nb\nc\nd\ne\n# Too Late"))
	assert.Equal(t, "Generated Document", extractTitle("no headings at all"))
}

func TestExtractAudienceVersions(t *testing.T) {
	content := "# Doc\n\n## Audience Summaries\n\n### FOR DEVELOPERS:\nUse the API.\nKeep it simple.\n\n" +
		"### FOR EXECUTIVES:\nRevenue doubles.\n\n## Next Section\n\nother text"

	versions := extractAudienceVersions(content)
	assert.Equal(t, "Use the API.\nKeep it simple.", versions["developers"])
	assert.Equal(t, "Revenue doubles.", versions["executives"])
	assert.NotContains(t, versions, "managers")
	assert.NotContains(t, versions, "corporate")
}

func TestCleanDocumentContent(t *testing.T) {
	dirty := "```markdown\n# Title\n\n\n\n\nBody with {raw_brief} and [INSERT RAW BRIEF HERE] left over.\n```\n"
	cleaned := cleanDocumentContent(dirty)

	assert.NotContains(t, cleaned, "```")
	assert.NotContains(t, cleaned, "{raw_brief}")
	assert.NotContains(t, cleaned, "[INSERT RAW BRIEF HERE]")
	assert.NotContains(t, cleaned, "\n\n\n")
	assert.True(t, len(cleaned) > 0)
}

func TestBuildFactoryMetadata(t *testing.T) {
	content := "# Title\n\n## First Section\n\none two three four five six seven eight\n\n## Second Section\n\nnine ten"
	meta := buildFactoryMetadata(prompt.TypePRD, "one two three four", content, map[string]string{"developers": "x"}, "claude")

	assert.Equal(t, "prd", meta["document_type"])
	assert.Equal(t, []string{"First Section", "Second Section"}, meta["sections"])
	assert.Equal(t, 2, meta["sections_count"])
	assert.Equal(t, 4, meta["brief_word_count"])
	assert.Equal(t, true, meta["has_audience_versions"])
	assert.Equal(t, "claude", meta["ai_provider"])

	// Heading markers count as words too: 18 content words over a 4 word brief.
	assert.Equal(t, 18, meta["word_count"])
	assert.Equal(t, 4.5, meta["expansion_ratio"])
}

func TestBuildFactoryMetadataEmptyBrief(t *testing.T) {
	meta := buildFactoryMetadata(prompt.TypeMVP, "", "one two", nil, "template")
	assert.Equal(t, 0, meta["brief_word_count"])
	assert.Equal(t, 2.0, meta["expansion_ratio"])
	assert.Equal(t, false, meta["has_audience_versions"])
}
