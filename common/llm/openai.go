package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openaiStreamer struct {
	client openai.Client
	model  string
}

func newOpenAIStreamer(cfg Config) (Streamer, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &openaiStreamer{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (s *openaiStreamer) StreamMessage(ctx context.Context, req Request) Stream {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	params := openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserContent),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	}

	return &openaiStream{inner: s.client.Chat.Completions.NewStreaming(ctx, params)}
}

func (s *openaiStreamer) Model() string {
	return s.model
}

type openaiStream struct {
	inner *ssestream.Stream[openai.ChatCompletionChunk]
	text  string
}

func (s *openaiStream) Next() bool {
	for s.inner.Next() {
		chunk := s.inner.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			s.text = delta
			return true
		}
	}
	return false
}

func (s *openaiStream) Text() string {
	return s.text
}

func (s *openaiStream) Err() error {
	return s.inner.Err()
}

func (s *openaiStream) Close() error {
	return s.inner.Close()
}
