package ai

import (
	"context"
	"errors"
)

// Supported provider names for the `ai.provider` configuration key.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// ErrUnavailable reports that the configured LLM provider could not serve a
// request. Callers recover by switching to the deterministic fallback path
// instead of aborting.
var ErrUnavailable = errors.New("llm provider unavailable")

// Generator is the minimal surface the optimizer needs from an LLM provider:
// prompt in, completion text out.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
	Model() string
}
