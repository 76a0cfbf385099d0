package services

import (
	"context"
	"fmt"

	"cvscreen/dreamteam/internal/config"
)

// Prompt is one request to a JSON-emitting model.
type Prompt struct {
	System      string
	User        string
	Temperature float32
}

// LLMClient returns the raw text of a model reply that was asked to be a
// JSON object. Parsing is left to the caller.
type LLMClient interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt Prompt) (string, error)
}

// NewLLMClient builds the client selected by cfg.Provider. Callers treat an
// error as "no client": evaluations then fail without touching the network.
func NewLLMClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	switch cfg.Provider {
	case config.LLMProviderGemini:
		return NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.LLMProviderLocal:
		return NewLocalLLMService(cfg.LocalURL, cfg.LocalModel, cfg.LocalAPIKey, cfg.LocalTimeout)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
