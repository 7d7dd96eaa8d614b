package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"kairosai/internal/ai"
	"kairosai/internal/index"
	"kairosai/internal/model"
	"kairosai/internal/prompt"
)

const (
	notConfiguredResponse = "Sorry, the AI service is not configured. Please check your API keys."
	noDocumentsResponse   = "I don't have any documents to reference for this project. Please upload some documents first."

	chatHistoryWindow = 5
	sourcePreviewLen  = 200
)

// ContextRetriever is the retrieval side of the chunk index as chat needs it.
type ContextRetriever interface {
	Query(ctx context.Context, text string, projectID uint, k int) ([]index.RetrievedChunk, error)
}

// Generator produces completions with provider fallback.
type Generator interface {
	Configured() bool
	Provider() string
	Generate(ctx context.Context, prompt string, opts ai.GenerateOptions) (string, error)
	GenerateWithFallback(ctx context.Context, prompt, query, contextText string, opts ai.GenerateOptions) (string, string)
}

// ProjectFinder looks up projects for request validation.
type ProjectFinder interface {
	GetByID(id uint) (*model.Project, error)
}

// ChatMessageStore persists and reads back chat exchanges.
type ChatMessageStore interface {
	Create(message *model.ChatMessage) error
	GetByID(id uint) (*model.ChatMessage, error)
	ListByProjectID(projectID uint, limit int) ([]model.ChatMessage, error)
	ListRecentByProjectID(projectID uint, limit int) ([]model.ChatMessage, error)
	DeleteByProjectID(projectID uint) error
}

type HistoryCache interface {
	GetHistory(ctx context.Context, projectID uint) ([]model.ChatMessage, bool, error)
	SetHistory(ctx context.Context, projectID uint, messages []model.ChatMessage) error
	DeleteHistory(ctx context.Context, projectID uint) error
	MarkDirty(ctx context.Context, projectID uint) error
	IsDirty(ctx context.Context, projectID uint) (bool, error)
}

type ChatService struct {
	projectRepo  ProjectFinder
	chatRepo     ChatMessageStore
	retriever    ContextRetriever
	engine       Generator
	historyCache HistoryCache
}

func NewChatService(
	projectRepo ProjectFinder,
	chatRepo ChatMessageStore,
	retriever ContextRetriever,
	engine Generator,
	historyCache HistoryCache,
) *ChatService {
	return &ChatService{
		projectRepo:  projectRepo,
		chatRepo:     chatRepo,
		retriever:    retriever,
		engine:       engine,
		historyCache: historyCache,
	}
}

type ChatInput struct {
	ProjectID uint
	Message   string
}

// Source points a chat answer back at the chunk it came from.
type Source struct {
	DocumentID     any     `json:"document_id"`
	ChunkIndex     any     `json:"chunk_index"`
	ContentPreview string  `json:"content_preview"`
	Distance       float32 `json:"distance"`
}

type ChatResult struct {
	Response string   `json:"response"`
	Sources  []Source `json:"sources"`
	Provider string   `json:"provider,omitempty"`
}

// Chat answers a question against the project's indexed documents. The
// exchange is persisted even when generation degrades, so history stays a
// faithful transcript of what the user saw.
func (s *ChatService) Chat(ctx context.Context, input ChatInput) (*ChatResult, error) {
	if input.ProjectID == 0 {
		return nil, ErrInvalidInput
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	project, err := s.projectRepo.GetByID(input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if !s.engine.Configured() {
		result := &ChatResult{Response: notConfiguredResponse, Sources: []Source{}}
		return result, s.persist(ctx, input.ProjectID, message, result.Response)
	}

	// The primary provider determines how much context fits comfortably.
	k := 5
	if s.engine.Provider() == "claude" {
		k = 8
	}
	chunks, err := s.retriever.Query(ctx, message, input.ProjectID, k)
	if err != nil {
		if !errors.Is(err, index.ErrIndex) {
			return nil, err
		}
		// An index failure reads as "no results"; the chat still answers.
		log.Printf("warning: could not retrieve project context: %v", err)
		chunks = nil
	}
	if len(chunks) == 0 {
		result := &ChatResult{Response: noDocumentsResponse, Sources: []Source{}}
		return result, s.persist(ctx, input.ProjectID, message, result.Response)
	}

	contextText := prompt.AssembleChat(chunks)
	history, err := s.chatRepo.ListRecentByProjectID(input.ProjectID, chatHistoryWindow)
	if err != nil {
		return nil, err
	}

	ragPrompt := buildRAGPrompt(message, contextText, history)
	response, providerName := s.engine.GenerateWithFallback(ctx, ragPrompt, message, contextText, ai.GenerateOptions{
		MaxTokens:   2000,
		Temperature: 0.1,
	})

	result := &ChatResult{
		Response: response,
		Sources:  buildSources(chunks),
		Provider: providerName,
	}
	return result, s.persist(ctx, input.ProjectID, message, response)
}

// GetHistory reads chat history through the cache when it is clean.
func (s *ChatService) GetHistory(ctx context.Context, projectID uint, limit int) ([]model.ChatMessage, error) {
	if projectID == 0 {
		return nil, ErrInvalidInput
	}
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, projectID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, projectID); cacheErr == nil && hit {
				return trimHistory(cached, limit), nil
			}
		}
	}

	messages, err := s.chatRepo.ListByProjectID(projectID, limit)
	if err != nil {
		return nil, err
	}
	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, projectID); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, projectID, messages)
		}
	}
	return messages, nil
}

// ClearHistory wipes the project's chat transcript and its cache entry.
func (s *ChatService) ClearHistory(ctx context.Context, projectID uint) error {
	if projectID == 0 {
		return ErrInvalidInput
	}
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	if err := s.chatRepo.DeleteByProjectID(projectID); err != nil {
		return err
	}
	if s.historyCache != nil {
		_ = s.historyCache.DeleteHistory(ctx, projectID)
	}
	return nil
}

// GetMessage returns one stored exchange by ID.
func (s *ChatService) GetMessage(id uint) (*model.ChatMessage, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	message, err := s.chatRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrChatMessageNotFound
	}
	return message, nil
}

// Summarize condenses everything indexed for the project into an executive
// style summary. summaryType colors the wording ("general", "technical", ...).
func (s *ChatService) Summarize(ctx context.Context, projectID uint, summaryType string) (string, error) {
	if projectID == 0 {
		return "", ErrInvalidInput
	}
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", ErrProjectNotFound
	}
	if !s.engine.Configured() {
		return "AI service not configured.", nil
	}
	if strings.TrimSpace(summaryType) == "" {
		summaryType = "general"
	}

	k := 10
	if s.engine.Provider() == "claude" {
		k = 15
	}
	// A broad query pulls diverse chunks instead of drilling into one topic.
	chunks, err := s.retriever.Query(ctx, "summary overview main points key findings", projectID, k)
	if err != nil {
		if !errors.Is(err, index.ErrIndex) {
			return "", err
		}
		log.Printf("warning: could not retrieve project context: %v", err)
		chunks = nil
	}
	if len(chunks) == 0 {
		return "No documents found for this project.", nil
	}

	contextText := prompt.AssembleChat(chunks)
	summaryPrompt := fmt.Sprintf(`As an expert business analyst, please provide a comprehensive %s summary of the following documents:

DOCUMENT CONTENT:
%s

Please structure your summary to include:

1. **Executive Overview**: High-level summary of the main themes and purpose
2. **Key Findings**: Most important insights and discoveries from the documents
3. **Main Topics**: Primary subjects and areas covered
4. **Critical Details**: Important specifics that require attention
5. **Recommendations & Action Items**: Suggested next steps or actions (if any are mentioned)
6. **Strategic Implications**: Business or strategic insights (if applicable)

Please provide a well-organized, professional summary that would be valuable for executive review:`, summaryType, contextText)

	summary, _ := s.engine.GenerateWithFallback(ctx, summaryPrompt, summaryType+" summary", contextText, ai.GenerateOptions{
		MaxTokens:   3000,
		Temperature: 0.2,
	})
	return summary, nil
}

func (s *ChatService) persist(ctx context.Context, projectID uint, message, response string) error {
	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, projectID)
		_ = s.historyCache.DeleteHistory(ctx, projectID)
	}
	return s.chatRepo.Create(&model.ChatMessage{
		ProjectID: projectID,
		Message:   message,
		Response:  response,
	})
}

func buildRAGPrompt(query, contextText string, history []model.ChatMessage) string {
	historyText := ""
	if formatted := formatChatHistory(history); formatted != "" {
		historyText = "\n\n" + formatted + "\n"
	}

	return fmt.Sprintf(`You are an expert AI assistant specializing in document analysis and business strategy. You help users extract insights, analyze content, and answer questions based on their uploaded documents.
%s
DOCUMENT CONTEXT:
%s

USER QUESTION: %s

INSTRUCTIONS:
- Analyze the provided document context carefully
- Give comprehensive, well-structured answers based solely on the document content
- When relevant, cite specific sections or documents
- If the documents don't contain sufficient information, clearly state this
- For complex questions, break down your analysis into logical sections
- Provide actionable insights when possible
- Maintain a professional, analytical tone

Please provide your response:`, historyText, contextText, query)
}

func formatChatHistory(history []model.ChatMessage) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}
	parts := []string{"PREVIOUS CONVERSATION:"}
	for _, msg := range history {
		parts = append(parts, "User: "+msg.Message)
		parts = append(parts, "Assistant: "+msg.Response)
	}
	return strings.Join(parts, "\n")
}

func buildSources(chunks []index.RetrievedChunk) []Source {
	sources := make([]Source, 0, len(chunks))
	for _, chunk := range chunks {
		preview := chunk.Content
		if runes := []rune(preview); len(runes) > sourcePreviewLen {
			preview = string(runes[:sourcePreviewLen]) + "..."
		}
		sources = append(sources, Source{
			DocumentID:     chunk.Metadata["document_id"],
			ChunkIndex:     chunk.Metadata["chunk_index"],
			ContentPreview: preview,
			Distance:       chunk.Distance,
		})
	}
	return sources
}

func trimHistory(messages []model.ChatMessage, limit int) []model.ChatMessage {
	if limit <= 0 || limit >= len(messages) {
		return messages
	}
	return messages[len(messages)-limit:]
}
