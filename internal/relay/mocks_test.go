package relay_test

import (
	"context"

	"github.com/cursorcontext/architect/common/llm"
)

type mockStreamer struct {
	streamFn func(ctx context.Context, req llm.Request) llm.Stream
	model    string
}

func (m *mockStreamer) StreamMessage(ctx context.Context, req llm.Request) llm.Stream {
	return m.streamFn(ctx, req)
}

func (m *mockStreamer) Model() string {
	if m.model == "" {
		return "test-model"
	}
	return m.model
}

// scriptedStream yields its deltas in order, then ends with err (nil for a
// normal completion).
type scriptedStream struct {
	deltas []string
	err    error
	idx    int
}

func (s *scriptedStream) Next() bool {
	if s.idx < len(s.deltas) {
		s.idx++
		return true
	}
	return false
}

func (s *scriptedStream) Text() string { return s.deltas[s.idx-1] }
func (s *scriptedStream) Err() error   { return s.err }
func (s *scriptedStream) Close() error { return nil }

// hangingStream yields its deltas, then blocks until the call context is
// cancelled, simulating an upstream that stops producing.
type hangingStream struct {
	ctx    context.Context
	deltas []string
	idx    int
}

func (s *hangingStream) Next() bool {
	if s.idx < len(s.deltas) {
		s.idx++
		return true
	}
	<-s.ctx.Done()
	return false
}

func (s *hangingStream) Text() string { return s.deltas[s.idx-1] }
func (s *hangingStream) Err() error   { return s.ctx.Err() }
func (s *hangingStream) Close() error { return nil }
