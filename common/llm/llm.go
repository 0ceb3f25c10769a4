package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

// Provider constants for LLM provider selection.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config holds LLM client configuration.
type Config struct {
	Provider string // "anthropic" or "openai"
	APIKey   string // Required: API key for the provider
	BaseURL  string // Optional: custom API endpoint
	Model    string // Model name (defaults per provider)
}

// Request describes one streaming generation call.
type Request struct {
	SystemPrompt string
	UserContent  string
	MaxTokens    int
}

// Stream is one in-flight generation call, consumed as text deltas.
// Next advances to the next delta; once it returns false the stream has
// ended and Err reports the terminal error, if any.
type Stream interface {
	Next() bool
	Text() string
	Err() error
	Close() error
}

// Streamer starts streaming generation calls against a model endpoint.
type Streamer interface {
	StreamMessage(ctx context.Context, req Request) Stream
	Model() string
}

// NewStreamer creates a Streamer for the configured provider.
// Defaults to Anthropic if no provider is specified.
func NewStreamer(cfg Config) (Streamer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderAnthropic
	}

	switch provider {
	case ProviderAnthropic:
		return newAnthropicStreamer(cfg)
	case ProviderOpenAI:
		return newOpenAIStreamer(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// StatusCode extracts the upstream HTTP status from a provider API error.
// Returns false for transport errors that never produced a response.
func StatusCode(err error) (int, bool) {
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode, true
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return openaiErr.StatusCode, true
	}

	return 0, false
}
