// Package relay turns one streaming generation call into an incrementally
// consumable event sequence with exactly one terminal outcome.
package relay

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cursorcontext/architect/common/llm"
	"github.com/cursorcontext/architect/common/logger"
)

// DefaultTimeout bounds one upstream generation call end to end.
const DefaultTimeout = 15 * time.Second

// Request is the immutable input of one relay invocation.
type Request struct {
	SystemPrompt string
	UserContent  string
}

// Event is either a text delta or the terminal error of a stream. At most
// one event with a non-nil Err is ever emitted, always last; a stream that
// completes normally just closes after its deltas.
type Event struct {
	Delta string
	Err   error
}

type Relay struct {
	streamer  llm.Streamer
	timeout   time.Duration
	maxTokens int
}

func New(streamer llm.Streamer, timeout time.Duration, maxTokens int) *Relay {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Relay{streamer: streamer, timeout: timeout, maxTokens: maxTokens}
}

// Generate starts the upstream call and returns the event channel. Deltas
// are forwarded verbatim in upstream order with no batching. The channel is
// always closed, after either the last delta (success) or a single terminal
// error event. Cancelling ctx (e.g. on client disconnect) aborts the
// upstream call.
func (r *Relay) Generate(ctx context.Context, req Request) <-chan Event {
	out := make(chan Event, 1)
	go r.run(ctx, req, out)
	return out
}

func (r *Relay) run(parent context.Context, req Request, out chan<- Event) {
	defer close(out)

	ctx := logger.WithLogFields(parent, logger.LogFields{
		Component: "architect.relay",
		Model:     logger.Ptr(r.streamer.Model()),
	})

	// Single timer per invocation; firing it cancels the in-flight call.
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// One-way latch: first terminal outcome wins, later attempts are no-ops
	// even if an upstream error and the timeout fire together.
	var terminated atomic.Bool

	fail := func(err error) {
		if !terminated.CompareAndSwap(false, true) {
			return
		}
		slog.ErrorContext(ctx, "generation stream failed", "error", err)
		select {
		case out <- Event{Err: Classify(err)}:
		case <-parent.Done():
			// caller is gone, nobody left to read the terminal event
		}
	}

	slog.DebugContext(ctx, "generation stream starting",
		"prompt_preview", logger.Truncate(req.UserContent, 200))

	stream := r.streamer.StreamMessage(ctx, llm.Request{
		SystemPrompt: req.SystemPrompt,
		UserContent:  req.UserContent,
		MaxTokens:    r.maxTokens,
	})
	defer stream.Close()

	start := time.Now()
	deltas := 0
	for stream.Next() {
		if terminated.Load() {
			return
		}
		select {
		case out <- Event{Delta: stream.Text()}:
			deltas++
		case <-ctx.Done():
			fail(ctx.Err())
			return
		}
	}

	if err := stream.Err(); err != nil {
		fail(err)
		return
	}
	// Late timeouts can race normal end of stream; the latch decides.
	if ctx.Err() != nil {
		fail(ctx.Err())
		return
	}
	if !terminated.CompareAndSwap(false, true) {
		return
	}

	slog.DebugContext(ctx, "generation stream completed",
		"deltas", deltas,
		"duration_ms", time.Since(start).Milliseconds())
}
