package ai

import "strings"

// OfflineResponse builds a deterministic template answer used when every
// configured provider has failed or none is configured. The branch taken
// depends on whether document context is available and on keywords in the
// query; it always returns text.
func OfflineResponse(query, contextText string) string {
	queryLower := strings.ToLower(query)

	if len(strings.TrimSpace(contextText)) > 50 {
		switch {
		case containsAny(queryLower, "summary", "summarize", "what", "about"):
			excerpt := contextText
			if len(excerpt) > 800 {
				excerpt = excerpt[:800] + "..."
			}
			return "**Document Analysis** (Offline Mode)\n\n" +
				"Based on your uploaded documents, here is what was found:\n\n" +
				"**Key Content Areas:**\n" + excerpt + "\n\n" +
				"**Analysis:** Your documents contain strategic information that can be used for " +
				"business planning, technical specifications, and market analysis.\n\n" +
				"*Note: AI enhancement temporarily unavailable. Using document extraction and " +
				"template-based analysis.*"

		case containsAny(queryLower, "mvp", "plan", "strategy"):
			return "**MVP Strategy Generation** (Template Mode)\n\n" +
				"An MVP plan can be created using proven frameworks:\n\n" +
				"1. **Problem Definition** - based on your documents\n" +
				"2. **Target Market Analysis** - user persona identification\n" +
				"3. **Core Feature Set** - minimum viable features\n" +
				"4. **Technical Requirements** - development roadmap\n" +
				"5. **Go-to-Market Strategy** - launch plan\n" +
				"6. **Success Metrics** - KPIs and validation criteria\n\n" +
				"*Using built-in business strategy templates. AI enhancement will resume when available.*"

		case containsAny(queryLower, "prd", "requirements", "technical"):
			return "**Product Requirements Document** (Template Mode)\n\n" +
				"A comprehensive PRD can be created using standard frameworks:\n\n" +
				"- **Executive Summary** - project overview and goals\n" +
				"- **Product Overview** - vision, objectives, success criteria\n" +
				"- **User Stories & Use Cases** - functional requirements\n" +
				"- **Technical Specifications** - architecture and constraints\n" +
				"- **UI/UX Requirements** - design guidelines\n" +
				"- **Implementation Timeline** - development phases\n\n" +
				"*Generated using proven PRD templates and your document content.*"
		}
	}

	switch {
	case containsAny(queryLower, "documents", "upload"):
		return "**Document Upload & Analysis**\n\n" +
			"Various document types can be analyzed for strategic planning:\n\n" +
			"**Supported Formats:** PDF, Word, Text\n" +
			"**Analysis Capabilities:**\n" +
			"- Extract key insights and recommendations\n" +
			"- Generate strategic documents (MVP, PRD, RFP)\n" +
			"- Create business cases and user personas\n" +
			"- Develop go-to-market strategies\n\n" +
			"**To get started:** upload your business documents for strategic insights.\n\n" +
			"*Currently operating in template mode.*"

	case containsAny(queryLower, "mvp", "business", "strategy", "plan"):
		return "**Strategic Document Templates Available**\n\n" +
			"Comprehensive business documents can be generated using proven frameworks:\n\n" +
			"**MVP Plan** - market validation strategy, feature prioritization, development roadmap\n" +
			"**Business Case** - ROI analysis and projections, risk assessment, resource requirements\n" +
			"**User Personas** - target audience profiles, behavioral insights, use case scenarios\n" +
			"**Go-to-Market Strategy** - launch timeline, marketing channels, competitive positioning\n\n" +
			"Which document type would you like to create?"

	default:
		return "**KairosAI Strategic Intelligence Platform** (Offline Mode)\n\n" +
			"**Available Features:**\n" +
			"- **Document Analysis** - upload files for strategic insights\n" +
			"- **Template Generation** - MVP plans, PRDs, business cases\n" +
			"- **Strategic Planning** - user personas, GTM strategies\n\n" +
			"**Current Status:** operating with built-in templates and frameworks. " +
			"AI enhancement temporarily limited.\n\n" +
			"**How to proceed:**\n" +
			"1. Upload your business documents\n" +
			"2. Ask for specific document generation\n" +
			"3. Use strategic planning templates"
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
