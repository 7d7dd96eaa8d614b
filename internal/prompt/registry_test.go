package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMasterPrompts(t *testing.T) {
	registry := NewRegistry()

	factoryTypes := []DocumentType{
		TypePRD, TypeRFP, TypeBusinessCase, TypeMVP, TypeUserPersonas, TypeGTMStrategy,
	}
	for _, docType := range factoryTypes {
		template, err := registry.MasterPrompt(docType)
		require.NoError(t, err, "type %s", docType)
		assert.NotEmpty(t, template)
		assert.Equal(t, 1, strings.Count(template, "{raw_brief}"),
			"type %s must have exactly one brief placeholder", docType)
	}
}

func TestRegistryRejectsDesignAndUnknownTypes(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.MasterPrompt(TypeDesign)
	assert.ErrorIs(t, err, ErrUnsupportedDocumentType)

	_, err = registry.MasterPrompt(DocumentType("whitepaper"))
	assert.ErrorIs(t, err, ErrUnsupportedDocumentType)
}

func TestFormatSubstitutesBrief(t *testing.T) {
	formatted := Format("Before\n{raw_brief}\nAfter", "build a todo app")
	assert.Equal(t, "Before\nbuild a todo app\nAfter", formatted)
	assert.NotContains(t, formatted, "{raw_brief}")
}

func TestMaxTokensPerType(t *testing.T) {
	assert.Equal(t, 4000, MaxTokens(TypePRD))
	assert.Equal(t, 4000, MaxTokens(TypeRFP))
	assert.Equal(t, 4000, MaxTokens(TypeGTMStrategy))
	assert.Equal(t, 3500, MaxTokens(TypeBusinessCase))
	assert.Equal(t, 3500, MaxTokens(TypeUserPersonas))
	assert.Equal(t, 3000, MaxTokens(TypeMVP))
	assert.Equal(t, 3000, MaxTokens(TypeDesign))
	assert.Equal(t, 3000, MaxTokens(DocumentType("unknown")))
}

func TestDocumentTypeValid(t *testing.T) {
	for _, docType := range AllTypes() {
		assert.True(t, docType.Valid(), "type %s", docType)
	}
	assert.False(t, DocumentType("").Valid())
	assert.False(t, DocumentType("memo").Valid())
}

func TestDocumentTypeTitle(t *testing.T) {
	assert.Equal(t, "Product Requirements Document", TypePRD.Title())
	assert.Equal(t, "MVP Plan", TypeMVP.Title())
	assert.Equal(t, "Generated Document", DocumentType("memo").Title())
}
