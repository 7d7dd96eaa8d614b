package prompt

// FallbackTemplate returns a static document body used when no AI provider
// produced a result. Types without a dedicated template get a generic stub.
func FallbackTemplate(t DocumentType) string {
	switch t {
	case TypePRD:
		return prdFallbackTemplate
	case TypeMVP:
		return mvpFallbackTemplate
	case TypeBusinessCase:
		return businessCaseFallbackTemplate
	default:
		return "# Generated Document\n\nTemplate-based generation. AI enhancement temporarily unavailable."
	}
}

const prdFallbackTemplate = `# Product Requirements Document: [Product Name]

## Executive Summary
**Problem Statement:** Based on your input, we've identified a key user problem that needs addressing.

**Vision:** This feature aligns with strategic business objectives and user needs.

**Target Audience:** Primary users who will benefit from this solution.

## User Stories & Core Requirements
- US-001: As a user, I want to [core functionality] so that I can [achieve goal]
- US-002: As a user, I want to [secondary feature] so that I can [get benefit]

## Functional Requirements
- REQ-001: The system must provide core functionality
- REQ-002: Users should be able to interact intuitively

## Success Metrics
- Primary KPI: User engagement improvement
- Secondary KPI: Task completion rate
- Timeline: Measure within 30 days of launch

*Note: This is a template-based document. AI enhancement temporarily unavailable.*`

const mvpFallbackTemplate = `# MVP Strategy: [Product Name]

## Executive Summary
**MVP Concept:** Minimum viable version focusing on core user value

**Value Proposition:** Solving the primary user problem with essential features

## Core Features (Priority 1)
- **Feature 1:** Essential user functionality
- **Feature 2:** Core interaction capability
- **Feature 3:** Basic user experience

## Success Metrics
- **User Adoption:** Target engagement rate
- **Feature Usage:** Core feature utilization
- **User Feedback:** Satisfaction scores

## Timeline
- **Week 1-2:** Development setup
- **Week 3-4:** Core features
- **Week 5-6:** Testing and refinement
- **Week 7-8:** Launch preparation

*Note: This is a template-based document. AI enhancement temporarily unavailable.*`

const businessCaseFallbackTemplate = `# Business Case: [Project Name]

## Executive Summary
**Problem:** Business challenge requiring solution
**Solution:** Proposed approach to address the problem
**Investment:** Estimated resource requirements
**ROI:** Expected return on investment

## Benefits Analysis
### Quantitative Benefits
- Cost savings opportunities
- Revenue generation potential
- Efficiency improvements

### Qualitative Benefits
- User experience enhancement
- Competitive positioning
- Strategic alignment

## Financial Projections
- **Year 1:** Initial investment and early returns
- **Year 2:** Scaling benefits
- **Year 3:** Full realization of value

## Recommendation
Proceed with implementation based on compelling business case.

*Note: This is a template-based document. AI enhancement temporarily unavailable.*`
