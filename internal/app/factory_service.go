package app

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"kairosai/internal/ai"
	"kairosai/internal/model"
	"kairosai/internal/prompt"
)

const factoryDiscoveryQuery = "project context requirements business goals user needs"

// DocumentStore persists generated documents with version bookkeeping.
type DocumentStore interface {
	CreateNewVersion(doc *model.GeneratedDocument) error
}

// FactoryService turns a raw brief into a structured document: it gathers
// project context, runs the type's master prompt, then extracts title,
// audience versions and metadata from the completion.
type FactoryService struct {
	retriever ContextRetriever
	engine    Generator
	registry  *prompt.Registry
	store     DocumentStore
}

func NewFactoryService(retriever ContextRetriever, engine Generator, registry *prompt.Registry, store DocumentStore) *FactoryService {
	return &FactoryService{
		retriever: retriever,
		engine:    engine,
		registry:  registry,
		store:     store,
	}
}

type FactoryInput struct {
	ProjectID        uint
	DocumentType     prompt.DocumentType
	RawBrief         string
	ContextDocuments []string
}

type ProcessingInfo struct {
	AIProvider     string `json:"ai_provider"`
	ContextSources int    `json:"context_sources"`
	BriefLength    int    `json:"brief_length"`
	OutputLength   int    `json:"output_length"`
}

type FactoryResult struct {
	Success          bool              `json:"success"`
	DocumentID       uint              `json:"document_id"`
	DocumentType     string            `json:"document_type"`
	Title            string            `json:"title"`
	Content          string            `json:"content"`
	AudienceVersions map[string]string `json:"audience_versions"`
	Metadata         map[string]any    `json:"metadata"`
	ProcessingInfo   ProcessingInfo    `json:"processing_info"`
}

// Process runs the full factory pipeline. A panic anywhere in the pipeline is
// converted into an error so one bad generation cannot take the server down.
func (s *FactoryService) Process(ctx context.Context, input FactoryInput) (result *FactoryResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("document factory processing failed: %v", r)
		}
	}()

	if input.ProjectID == 0 || strings.TrimSpace(input.RawBrief) == "" {
		return nil, ErrInvalidInput
	}
	if !s.engine.Configured() {
		return nil, ai.ErrNotConfigured
	}

	masterPrompt, err := s.registry.MasterPrompt(input.DocumentType)
	if err != nil {
		return nil, err
	}

	enhancedContext := s.prepareContext(ctx, input.ProjectID, input.ContextDocuments)
	enhancedBrief := enhanceBriefWithContext(input.RawBrief, enhancedContext)
	formattedPrompt := prompt.Format(masterPrompt, enhancedBrief)

	providerName := s.engine.Provider()
	content, genErr := s.engine.Generate(ctx, formattedPrompt, ai.GenerateOptions{
		MaxTokens:   prompt.MaxTokens(input.DocumentType),
		Temperature: 0.1,
	})
	if genErr != nil {
		log.Printf("factory generation failed, using template fallback: %v", genErr)
		content = prompt.FallbackTemplate(input.DocumentType)
		providerName = "template"
	}

	title := extractTitle(content)
	audienceVersions := extractAudienceVersions(content)
	cleaned := cleanDocumentContent(content)

	doc := &model.GeneratedDocument{
		ProjectID:    input.ProjectID,
		DocumentType: string(input.DocumentType),
		Title:        title,
		Content:      cleaned,
	}
	if err := s.store.CreateNewVersion(doc); err != nil {
		return nil, err
	}

	return &FactoryResult{
		Success:          true,
		DocumentID:       doc.ID,
		DocumentType:     string(input.DocumentType),
		Title:            title,
		Content:          cleaned,
		AudienceVersions: audienceVersions,
		Metadata:         buildFactoryMetadata(input.DocumentType, input.RawBrief, cleaned, audienceVersions, providerName),
		ProcessingInfo: ProcessingInfo{
			AIProvider:     providerName,
			ContextSources: len(input.ContextDocuments),
			BriefLength:    len(input.RawBrief),
			OutputLength:   len(cleaned),
		},
	}, nil
}

// prepareContext gathers indexed project chunks plus any caller-provided
// documents. Retrieval failures degrade to an empty context instead of
// failing the whole request.
func (s *FactoryService) prepareContext(ctx context.Context, projectID uint, contextDocuments []string) string {
	var parts []string

	chunks, err := s.retriever.Query(ctx, factoryDiscoveryQuery, projectID, 10)
	if err != nil {
		log.Printf("warning: could not retrieve project context: %v", err)
	} else if len(chunks) > 0 {
		parts = append(parts, "=== EXISTING PROJECT CONTEXT ===")
		for i, chunk := range chunks {
			parts = append(parts, fmt.Sprintf("Context %d: %s", i+1, chunk.Content))
		}
		parts = append(parts, "")
	}

	if len(contextDocuments) > 0 {
		parts = append(parts, "=== PROVIDED CONTEXT DOCUMENTS ===")
		for i, doc := range contextDocuments {
			parts = append(parts, fmt.Sprintf("Document %d: %s", i+1, doc))
		}
		parts = append(parts, "")
	}

	return strings.Join(parts, "\n")
}

func enhanceBriefWithContext(rawBrief, contextText string) string {
	if strings.TrimSpace(contextText) == "" {
		return rawBrief
	}
	return fmt.Sprintf(`%s

=== USER REQUEST/BRIEF ===
%s

=== PROCESSING INSTRUCTIONS ===
Use the provided context above to inform your document generation. Reference specific context elements where relevant, but focus on the user's brief as the primary requirement.`, contextText, rawBrief)
}

// extractTitle takes the first top-level heading within the first five lines.
func extractTitle(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		if strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "##") {
			return strings.TrimSpace(strings.ReplaceAll(line, "#", ""))
		}
	}
	return "Generated Document"
}

var audiencePatterns = map[string]*regexp.Regexp{
	"developers": regexp.MustCompile(`(?is)(?:FOR DEVELOPERS?|DEVELOPER SUMMARY):?\s*\n(.*?)(?:\nFOR [A-Z]|\n###|\n##|\z)`),
	"managers":   regexp.MustCompile(`(?is)(?:FOR MANAGERS?|MANAGER SUMMARY):?\s*\n(.*?)(?:\nFOR [A-Z]|\n###|\n##|\z)`),
	"corporate":  regexp.MustCompile(`(?is)(?:FOR CORPORATE|CORPORATE SUMMARY|FOR SALES|FOR MARKETING):?\s*\n(.*?)(?:\nFOR [A-Z]|\n###|\n##|\z)`),
	"executives": regexp.MustCompile(`(?is)(?:FOR EXECUTIVES?|EXECUTIVE SUMMARY):?\s*\n(.*?)(?:\nFOR [A-Z]|\n###|\n##|\z)`),
}

func extractAudienceVersions(content string) map[string]string {
	versions := make(map[string]string)
	for audience, pattern := range audiencePatterns {
		if match := pattern.FindStringSubmatch(content); match != nil {
			versions[audience] = strings.TrimSpace(match[1])
		}
	}
	return versions
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

func cleanDocumentContent(content string) string {
	content = strings.ReplaceAll(content, "```markdown", "")
	content = strings.ReplaceAll(content, "```", "")
	content = excessNewlines.ReplaceAllString(content, "\n\n")
	content = strings.ReplaceAll(content, "[INSERT RAW BRIEF HERE]", "")
	content = strings.ReplaceAll(content, "{raw_brief}", "")
	return strings.TrimSpace(content)
}

func buildFactoryMetadata(docType prompt.DocumentType, rawBrief, content string, audienceVersions map[string]string, providerName string) map[string]any {
	wordCount := len(strings.Fields(content))
	briefWordCount := len(strings.Fields(rawBrief))

	var sections []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "##") && !strings.HasPrefix(line, "###") {
			sections = append(sections, strings.TrimSpace(strings.TrimPrefix(line, "##")))
		}
	}

	denominator := briefWordCount
	if denominator < 1 {
		denominator = 1
	}
	expansionRatio := math.Round(float64(wordCount)/float64(denominator)*10) / 10

	return map[string]any{
		"document_type":         string(docType),
		"word_count":            wordCount,
		"sections_count":        len(sections),
		"sections":              sections,
		"has_audience_versions": len(audienceVersions) > 0,
		"brief_word_count":      briefWordCount,
		"expansion_ratio":       expansionRatio,
		"generated_at":          time.Now().Format("2006-01-02"),
		"ai_provider":           providerName,
	}
}
