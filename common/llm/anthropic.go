package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

const defaultAnthropicModel = "claude-haiku-4-5-20251001"

type anthropicStreamer struct {
	client anthropic.Client
	model  string
}

func newAnthropicStreamer(cfg Config) (Streamer, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	return &anthropicStreamer{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

func (s *anthropicStreamer) StreamMessage(ctx context.Context, req Request) Stream {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(req.UserContent),
				},
			},
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Type: "text", Text: req.SystemPrompt},
		}
	}

	return &anthropicStream{inner: s.client.Messages.NewStreaming(ctx, params)}
}

func (s *anthropicStreamer) Model() string {
	return s.model
}

// anthropicStream filters the raw event stream down to text deltas.
type anthropicStream struct {
	inner *ssestream.Stream[anthropic.MessageStreamEventUnion]
	text  string
}

func (s *anthropicStream) Next() bool {
	for s.inner.Next() {
		event := s.inner.Current()
		delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		text, ok := delta.Delta.AsAny().(anthropic.TextDelta)
		if !ok || text.Text == "" {
			continue
		}
		s.text = text.Text
		return true
	}
	return false
}

func (s *anthropicStream) Text() string {
	return s.text
}

func (s *anthropicStream) Err() error {
	return s.inner.Err()
}

func (s *anthropicStream) Close() error {
	return s.inner.Close()
}
