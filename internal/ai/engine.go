package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrNotConfigured is returned when no provider has credentials.
var ErrNotConfigured = errors.New("ai service not configured")

// ProviderError wraps an upstream completion failure with the provider name.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

type provider struct {
	name string
	cfg  ChatConfig
}

// Engine invokes a configured LLM provider and degrades gracefully. The
// provider order is decided once at construction: the preferred provider wins
// when it has credentials, otherwise whichever of the two does; with no
// credentials at all the engine reports unconfigured instead of erroring on
// construction.
type Engine struct {
	client    *OpenAICompatibleClient
	providers []provider
}

func NewEngine(client *OpenAICompatibleClient, preferred string, claude, gemini ChatConfig) *Engine {
	if client == nil {
		client = NewOpenAICompatibleClient()
	}
	e := &Engine{client: client}

	named := []provider{{name: "claude", cfg: claude}, {name: "gemini", cfg: gemini}}
	if strings.EqualFold(preferred, "gemini") {
		named[0], named[1] = named[1], named[0]
	}
	for _, p := range named {
		if p.cfg.APIKey != "" {
			e.providers = append(e.providers, p)
		}
	}
	if len(e.providers) == 0 {
		log.Printf("warning: no AI provider credentials configured, generation degraded to offline templates")
	}
	return e
}

// Configured reports whether at least one provider has credentials.
func (e *Engine) Configured() bool { return len(e.providers) > 0 }

// Provider returns the active provider name, or empty when unconfigured.
func (e *Engine) Provider() string {
	if len(e.providers) == 0 {
		return ""
	}
	return e.providers[0].name
}

// Generate runs the prompt against the active provider only. Callers that
// need resilience wrap this with a fallback of their own (the document
// factory substitutes a static template; chat uses GenerateWithFallback).
func (e *Engine) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if len(e.providers) == 0 {
		return "", ErrNotConfigured
	}
	p := e.providers[0]
	text, err := e.complete(ctx, p, prompt, opts)
	if err != nil {
		return "", &ProviderError{Provider: p.name, Err: err}
	}
	return text, nil
}

// GenerateWithFallback tries each configured provider in order and, when all
// fail or none is configured, returns a deterministic offline template
// response built from the query and context. It never returns an error.
func (e *Engine) GenerateWithFallback(ctx context.Context, prompt, query, contextText string, opts GenerateOptions) (text string, providerName string) {
	for _, p := range e.providers {
		out, err := e.complete(ctx, p, prompt, opts)
		if err != nil {
			log.Printf("provider %s failed, trying next: %v", p.name, err)
			continue
		}
		return out, p.name
	}
	return OfflineResponse(query, contextText), "offline"
}

func (e *Engine) complete(ctx context.Context, p provider, prompt string, opts GenerateOptions) (string, error) {
	messages := []ChatMessage{{Role: "user", Content: prompt}}
	text, err := e.client.Complete(ctx, p.cfg, messages, opts)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}
