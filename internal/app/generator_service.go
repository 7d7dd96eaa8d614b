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

// GeneratedDocumentStore is the version-aware document storage as the
// generation paths need it.
type GeneratedDocumentStore interface {
	DocumentStore
	GetByID(id uint) (*model.GeneratedDocument, error)
	GetLatest(projectID uint, documentType string) (*model.GeneratedDocument, error)
	ListLatestByProjectID(projectID uint, documentType string) ([]model.GeneratedDocument, error)
	ListVersions(projectID uint, documentType string) ([]model.GeneratedDocument, error)
	Update(doc *model.GeneratedDocument) error
	Delete(id uint) error
}

// GeneratorService is the single-shot generation path: retrieve context,
// run one section-outline prompt, persist the result as a new version.
// The document factory is the richer pipeline; this one trades structure
// for latency and powers the per-type generate endpoints.
type GeneratorService struct {
	projectRepo ProjectFinder
	genRepo     GeneratedDocumentStore
	retriever   ContextRetriever
	engine      Generator
}

func NewGeneratorService(
	projectRepo ProjectFinder,
	genRepo GeneratedDocumentStore,
	retriever ContextRetriever,
	engine Generator,
) *GeneratorService {
	return &GeneratorService{
		projectRepo: projectRepo,
		genRepo:     genRepo,
		retriever:   retriever,
		engine:      engine,
	}
}

// notConfiguredContent is returned in place of generated content when no
// provider has credentials; nothing is persisted in that case.
const notConfiguredContent = "AI service not configured."

type GenerateResult struct {
	Document model.GeneratedDocument `json:"document"`
	Provider string                  `json:"provider"`
}

// Generate produces one document of the given type from the project's
// indexed content and saves it as the new latest version.
func (s *GeneratorService) Generate(ctx context.Context, projectID uint, docType prompt.DocumentType, userPrompt string) (*GenerateResult, error) {
	if projectID == 0 {
		return nil, ErrInvalidInput
	}
	if !docType.Valid() || docType == prompt.TypeDesign {
		return nil, prompt.ErrUnsupportedDocumentType
	}
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	// Unconfigured generation answers with the fixed text and writes nothing.
	if !s.engine.Configured() {
		return &GenerateResult{Document: model.GeneratedDocument{
			ProjectID:    projectID,
			DocumentType: string(docType),
			Title:        docType.Title(),
			Content:      notConfiguredContent,
		}}, nil
	}

	query := strings.TrimSpace(userPrompt)
	if query == "" {
		query = defaultGenerateQuery(docType)
	}
	k := 10
	if s.engine.Provider() == "claude" {
		k = 15
	}
	chunks, err := s.retriever.Query(ctx, query, projectID, k)
	if err != nil {
		if !errors.Is(err, index.ErrIndex) {
			return nil, err
		}
		log.Printf("warning: could not retrieve project context: %v", err)
		chunks = nil
	}
	contextText := prompt.AssembleSources(chunks)

	generatePrompt := buildGeneratePrompt(docType, userPrompt, contextText)
	content, providerName := s.engine.GenerateWithFallback(ctx, generatePrompt, query, contextText, ai.GenerateOptions{
		MaxTokens:   2500,
		Temperature: 0.1,
	})

	doc := &model.GeneratedDocument{
		ProjectID:    projectID,
		DocumentType: string(docType),
		Title:        docType.Title(),
		Content:      content,
	}
	if err := s.genRepo.CreateNewVersion(doc); err != nil {
		return nil, err
	}
	return &GenerateResult{Document: *doc, Provider: providerName}, nil
}

// GenerateDesign derives a system design document from the project's
// previously generated strategy documents rather than raw chunks.
func (s *GeneratorService) GenerateDesign(ctx context.Context, projectID uint, userPrompt string) (*GenerateResult, error) {
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

	if !s.engine.Configured() {
		return &GenerateResult{Document: model.GeneratedDocument{
			ProjectID:    projectID,
			DocumentType: string(prompt.TypeDesign),
			Title:        prompt.TypeDesign.Title(),
			Content:      notConfiguredContent,
		}}, nil
	}

	contextDocs, err := s.collectDesignContext(projectID)
	if err != nil {
		return nil, err
	}
	if contextDocs == "" {
		return nil, ErrGeneratedDocNotFound
	}

	designPrompt := buildDesignPrompt(userPrompt, contextDocs)
	content, providerName := s.engine.GenerateWithFallback(ctx, designPrompt, userPrompt, contextDocs, ai.GenerateOptions{
		MaxTokens:   prompt.MaxTokens(prompt.TypeDesign),
		Temperature: 0.1,
	})

	doc := &model.GeneratedDocument{
		ProjectID:    projectID,
		DocumentType: string(prompt.TypeDesign),
		Title:        prompt.TypeDesign.Title(),
		Content:      content,
	}
	if err := s.genRepo.CreateNewVersion(doc); err != nil {
		return nil, err
	}
	return &GenerateResult{Document: *doc, Provider: providerName}, nil
}

// ListGenerated returns the latest version of each generated document in the
// project, optionally narrowed to one type.
func (s *GeneratorService) ListGenerated(projectID uint, docType string) ([]model.GeneratedDocument, error) {
	if projectID == 0 {
		return nil, ErrInvalidInput
	}
	if docType != "" && !prompt.DocumentType(docType).Valid() {
		return nil, prompt.ErrUnsupportedDocumentType
	}
	return s.genRepo.ListLatestByProjectID(projectID, docType)
}

func (s *GeneratorService) ListVersions(projectID uint, docType string) ([]model.GeneratedDocument, error) {
	if projectID == 0 || !prompt.DocumentType(docType).Valid() {
		return nil, ErrInvalidInput
	}
	return s.genRepo.ListVersions(projectID, docType)
}

func (s *GeneratorService) GetGenerated(id uint) (*model.GeneratedDocument, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	doc, err := s.genRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrGeneratedDocNotFound
	}
	return doc, nil
}

// UpdateGenerated applies manual edits to a stored document.
func (s *GeneratorService) UpdateGenerated(id uint, title, content string) (*model.GeneratedDocument, error) {
	doc, err := s.GetGenerated(id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(title); t != "" {
		doc.Title = t
	}
	if c := strings.TrimSpace(content); c != "" {
		doc.Content = c
	}
	if err := s.genRepo.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *GeneratorService) DeleteGenerated(id uint) error {
	if _, err := s.GetGenerated(id); err != nil {
		return err
	}
	return s.genRepo.Delete(id)
}

func (s *GeneratorService) collectDesignContext(projectID uint) (string, error) {
	var parts []string
	for _, t := range []prompt.DocumentType{prompt.TypeMVP, prompt.TypePRD, prompt.TypeRFP} {
		doc, err := s.genRepo.GetLatest(projectID, string(t))
		if err != nil {
			return "", err
		}
		if doc == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("=== %s ===\n%s", strings.ToUpper(doc.Title), doc.Content))
	}
	return strings.Join(parts, "\n\n"), nil
}

func defaultGenerateQuery(t prompt.DocumentType) string {
	switch t {
	case prompt.TypeMVP:
		return "Generate MVP plan based on project requirements"
	case prompt.TypePRD:
		return "Generate PRD based on project requirements"
	case prompt.TypeRFP:
		return "Generate RFP based on project scope"
	case prompt.TypeBusinessCase:
		return "Generate business case based on project analysis"
	case prompt.TypeUserPersonas:
		return "Generate user personas based on user research and analysis"
	case prompt.TypeGTMStrategy:
		return "Generate go-to-market strategy based on market analysis"
	default:
		return "project context requirements business goals user needs"
	}
}

func buildGeneratePrompt(t prompt.DocumentType, userPrompt, contextText string) string {
	request := strings.TrimSpace(userPrompt)
	if request == "" {
		request = "Generate " + t.Title()
	}
	return fmt.Sprintf(`Based on the following document context and user request: '%s'

DOCUMENT CONTEXT:
%s

%s`, request, contextText, generateOutline(t))
}

func buildDesignPrompt(userPrompt, contextDocuments string) string {
	request := strings.TrimSpace(userPrompt)
	if request == "" {
		request = "Generate system design"
	}
	return fmt.Sprintf(`Based on the following generated strategic documents and user request: '%s'

GENERATED DOCUMENTS CONTEXT:
%s

Generate a comprehensive System Design Document with the following sections:

## 1. Architecture Overview
- High-level system architecture
- Key components and their responsibilities
- System boundaries and interfaces

## 2. System Components
- Frontend components
- Backend services
- Database design
- External integrations

## 3. Data Flow
- User interaction flow
- Data processing pipeline
- Information architecture

## 4. Technology Stack
- Frontend technologies
- Backend technologies
- Database selection
- Infrastructure requirements

## 5. Scalability Considerations
- Performance optimization
- Load balancing strategies
- Caching mechanisms
- Horizontal scaling approach

## 6. Security Architecture
- Authentication and authorization
- Data protection
- Security best practices
- Compliance considerations

## 7. Deployment Strategy
- Environment setup
- CI/CD pipeline
- Monitoring and logging
- Backup and recovery

Use technical terminology appropriate for developers and architects. Include diagrams using ASCII or mermaid syntax where helpful.`, request, contextDocuments)
}

func generateOutline(t prompt.DocumentType) string {
	switch t {
	case prompt.TypeMVP:
		return `Generate a comprehensive Minimum Viable Product (MVP) Plan with the following sections:

## Executive Summary
- Brief overview of the MVP concept
- Value proposition

## Core Features (Priority 1)
- List 3-5 essential features for the MVP
- Brief description of each feature
- Why each feature is critical

## User Stories
- 5-7 key user stories in the format: "As a [user type], I want [functionality] so that [benefit]"

## Success Metrics
- Key performance indicators (KPIs)
- Measurable success criteria
- User adoption metrics

## Timeline & Milestones
- High-level development phases
- Key milestones and deliverables
- Estimated timeframes

Keep the plan actionable, realistic, and grounded in the provided context.`
	case prompt.TypePRD:
		return `Generate a comprehensive Product Requirements Document (PRD) with the following sections:

## 1. Introduction & Goals
- Product overview
- Business objectives
- Success criteria

## 2. User Personas
- Primary target users
- User needs and pain points
- User journeys

## 3. Functional Requirements
- Core functionality
- Feature specifications
- User interface requirements
- Integration requirements

## 4. Non-Functional Requirements
- Performance requirements
- Security requirements
- Scalability requirements
- Usability requirements

## 5. Assumptions & Dependencies
- Technical assumptions
- Business assumptions
- External dependencies
- Risk factors

## 6. Acceptance Criteria
- Definition of done
- Testing requirements
- Quality standards

Make it detailed, professional, and actionable for a development team.`
	case prompt.TypeRFP:
		return `Generate a formal Request for Proposal (RFP) document with the following sections:

## 1. Company Overview
- Organization background
- Project context
- Strategic objectives

## 2. Project Scope
- Project objectives
- Deliverables
- Expected outcomes
- Timeline

## 3. Technical Requirements
- Technology stack preferences
- Integration requirements
- Performance specifications
- Security requirements

## 4. Vendor Requirements
- Qualifications and experience
- Team composition
- Portfolio requirements
- References

## 5. Proposal Requirements
- Proposal format
- Required documentation
- Technical approach
- Project timeline
- Cost breakdown

## 6. Evaluation Criteria
- Scoring methodology
- Technical expertise (weight)
- Cost considerations (weight)
- Timeline feasibility (weight)
- References and experience (weight)

## 7. Submission Guidelines
- Submission deadline
- Contact information
- Proposal format requirements
- Q&A process

Make it professional, comprehensive, and suitable for vendor evaluation.`
	case prompt.TypeBusinessCase:
		return `Generate a comprehensive Business Case document with the following sections:

## 1. Executive Summary
- Problem statement
- Proposed solution
- Key benefits
- Investment required
- Expected ROI

## 2. Problem Definition
- Current state analysis
- Pain points and challenges
- Impact of inaction
- Urgency and timing

## 3. Proposed Solution
- Solution overview
- Key capabilities
- Implementation approach
- Technology requirements

## 4. Benefits Analysis
- Quantitative benefits (cost savings, revenue increase)
- Qualitative benefits (efficiency, user satisfaction)
- Risk mitigation
- Competitive advantages

## 5. Cost Analysis
- Initial investment breakdown
- Ongoing operational costs
- Resource requirements
- Total cost of ownership (TCO)

## 6. Financial Projections
- ROI calculation
- Payback period
- Net present value (NPV)
- Break-even analysis

## 7. Risk Assessment
- Implementation risks
- Mitigation strategies
- Contingency planning
- Success factors

## 8. Recommendation
- Go/no-go recommendation
- Implementation timeline
- Key milestones
- Next steps

Make it compelling for executive decision-making with clear financial justification.`
	case prompt.TypeUserPersonas:
		return `Generate comprehensive User Personas with the following structure for each persona:

## Primary User Personas

### Persona 1: [Name]
**Demographics:**
- Age range
- Job title/role
- Industry
- Location
- Education level

**Goals & Motivations:**
- Primary goals
- Success metrics
- Motivations and drivers
- Aspirations

**Pain Points & Frustrations:**
- Current challenges
- Specific frustrations
- Barriers to success
- Unmet needs

**Behavior Patterns:**
- How they currently work
- Technology usage
- Decision-making process
- Communication preferences

**Preferred Solutions:**
- Ideal features/capabilities
- User experience expectations
- Integration requirements
- Support needs

### Persona 2: [Name]
[Repeat structure for secondary persona]

### Persona 3: [Name]
[Repeat structure for tertiary persona if applicable]

## Persona Insights Summary
- Common patterns across personas
- Key differentiators
- Priority persona for MVP
- Design implications

## User Journey Mapping
- Awareness stage
- Consideration stage
- Decision stage
- Onboarding stage
- Active usage stage

Make each persona realistic and actionable for product development decisions.`
	case prompt.TypeGTMStrategy:
		return `Generate a comprehensive Go-to-Market (GTM) Strategy with the following sections:

## 1. Market Overview
- Market size and growth
- Market segments
- Key trends and drivers
- Competitive landscape

## 2. Target Audience
- Primary target segments
- Secondary markets
- Customer profiles
- Decision-maker mapping

## 3. Value Proposition
- Unique value proposition
- Key differentiators
- Competitive advantages
- Messaging framework

## 4. Product Positioning
- Market positioning
- Brand positioning
- Competitive positioning
- Messaging strategy

## 5. Pricing Strategy
- Pricing model
- Price points
- Competitive pricing analysis
- Value-based pricing rationale

## 6. Sales Strategy
- Sales process
- Sales channels
- Channel partner strategy
- Sales enablement

## 7. Marketing Strategy
- Marketing objectives
- Lead generation strategy
- Content marketing plan
- Digital marketing channels
- Event and partnership marketing

## 8. Launch Plan
- Pre-launch activities
- Launch timeline
- Launch campaigns
- Success metrics

## 9. Customer Success
- Onboarding strategy
- Customer support
- Retention strategy
- Expansion opportunities

## 10. Success Metrics & KPIs
- Revenue targets
- Customer acquisition metrics
- Marketing metrics
- Sales metrics
- Customer success metrics

## 11. Budget & Resources
- Marketing budget allocation
- Sales team requirements
- Technology and tools
- External agency/partner needs

## 12. Risk Management
- Market risks
- Competitive risks
- Execution risks
- Mitigation strategies

Make it actionable with specific tactics, timelines, and measurable outcomes.`
	default:
		return "Generate a comprehensive, well-structured document grounded in the provided context."
	}
}
