package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderNone     = "none"
)

// NewClient creates an LLM client based on provider configuration.
// An empty or "none" provider returns a nil client: coaching suggestions
// are simply skipped when no model is configured.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderNone, "off", "disabled":
		return nil, nil
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio, "lm-studio", "llmstudio":
		return NewLMStudioClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
