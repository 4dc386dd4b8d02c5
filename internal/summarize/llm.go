// Package summarize turns a commit record into a bounded natural-language
// request, sends it to a remote model, and classifies failures into a fixed
// taxonomy. It defines a provider-agnostic LLM interface with a concrete
// OpenAI implementation and a deterministic mock for testing.
package summarize

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotInitialized is returned when the client has no LLM to call.
	ErrNotInitialized = errors.New("summarization client not initialized")

	// ErrNothingToSummarize is returned when a record carries no eligible
	// diff; no request is made.
	ErrNothingToSummarize = errors.New("no eligible files to summarize")

	// ErrInvalidConfig reports missing credentials or model configuration.
	ErrInvalidConfig = errors.New("invalid summarizer configuration")
)

// TokenUsage reports the token counters of one model call, when the provider
// returns them.
type TokenUsage struct {
	Prompt     int64 `json:"prompt"`
	Completion int64 `json:"completion"`
	Total      int64 `json:"total"`
}

// Completion is one model response: the text plus usage counters.
type Completion struct {
	Text  string
	Usage TokenUsage
}

// LLM is the interface to a language model provider. Implementations must be
// stateless and safe for concurrent use.
type LLM interface {
	// Complete sends a single prompt and returns the model's text response.
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// Config holds the summarizer settings.
type Config struct {
	// Model is the provider model identifier.
	Model string

	// APIKey authenticates against the provider. Falls back to the
	// OPENAI_API_KEY environment variable when empty.
	APIKey string

	// MaxSentences bounds the requested summary length. Advisory: it shapes
	// the instruction text, the response is not mechanically truncated.
	MaxSentences int

	// MaxPromptTokens is the prompt budget; estimated cost above it fails
	// fast without a network call.
	MaxPromptTokens int

	// Timeout bounds each model call.
	Timeout time.Duration
}

// DefaultConfig returns the default summarizer settings.
func DefaultConfig() Config {
	return Config{
		Model:           "gpt-4o-mini",
		MaxSentences:    2,
		MaxPromptTokens: 8000,
		Timeout:         30 * time.Second,
	}
}
