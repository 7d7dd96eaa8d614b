package prompt

import (
	"errors"
	"strings"
)

// DocumentType enumerates the generated document kinds.
type DocumentType string

const (
	TypeMVP          DocumentType = "mvp"
	TypePRD          DocumentType = "prd"
	TypeRFP          DocumentType = "rfp"
	TypeBusinessCase DocumentType = "business_case"
	TypeUserPersonas DocumentType = "user_personas"
	TypeGTMStrategy  DocumentType = "gtm_strategy"
	TypeDesign       DocumentType = "design"
)

// ErrUnsupportedDocumentType is a caller error; it short-circuits before any
// AI call is made.
var ErrUnsupportedDocumentType = errors.New("unsupported document type")

// AllTypes lists every supported document type.
func AllTypes() []DocumentType {
	return []DocumentType{
		TypeMVP, TypePRD, TypeRFP, TypeBusinessCase,
		TypeUserPersonas, TypeGTMStrategy, TypeDesign,
	}
}

func (t DocumentType) Valid() bool {
	switch t {
	case TypeMVP, TypePRD, TypeRFP, TypeBusinessCase, TypeUserPersonas, TypeGTMStrategy, TypeDesign:
		return true
	}
	return false
}

// Title is the default display title for a generated document of this type.
func (t DocumentType) Title() string {
	switch t {
	case TypeMVP:
		return "MVP Plan"
	case TypePRD:
		return "Product Requirements Document"
	case TypeRFP:
		return "Request for Proposal"
	case TypeBusinessCase:
		return "Business Case"
	case TypeUserPersonas:
		return "User Personas"
	case TypeGTMStrategy:
		return "Go-to-Market Strategy"
	case TypeDesign:
		return "System Design Document"
	}
	return "Generated Document"
}

// briefPlaceholder is the single substitution point in every master prompt.
const briefPlaceholder = "{raw_brief}"

// Registry maps document types to their master prompts. The design type has
// no master prompt: it is generated only through the legacy path, from
// already-generated documents.
type Registry struct {
	templates map[DocumentType]string
}

func NewRegistry() *Registry {
	return &Registry{
		templates: map[DocumentType]string{
			TypePRD:          prdMasterPrompt,
			TypeRFP:          rfpMasterPrompt,
			TypeBusinessCase: businessCaseMasterPrompt,
			TypeMVP:          mvpMasterPrompt,
			TypeUserPersonas: userPersonasMasterPrompt,
			TypeGTMStrategy:  gtmMasterPrompt,
		},
	}
}

// MasterPrompt returns the template for the type or ErrUnsupportedDocumentType.
func (r *Registry) MasterPrompt(t DocumentType) (string, error) {
	template, ok := r.templates[t]
	if !ok {
		return "", ErrUnsupportedDocumentType
	}
	return template, nil
}

// Format substitutes the enhanced brief into the template's placeholder.
func Format(template, enhancedBrief string) string {
	return strings.ReplaceAll(template, briefPlaceholder, enhancedBrief)
}

// MaxTokens is the per-type generation budget; longer structured documents
// get more room. Static data, not user-controlled.
func MaxTokens(t DocumentType) int {
	switch t {
	case TypePRD, TypeRFP, TypeGTMStrategy:
		return 4000
	case TypeBusinessCase, TypeUserPersonas:
		return 3500
	case TypeMVP, TypeDesign:
		return 3000
	}
	return 3000
}
