package relay_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cursorcontext/architect/common/llm"
	"github.com/cursorcontext/architect/internal/relay"
)

// drain reads the event channel to exhaustion, separating deltas from the
// terminal error event.
func drain(events <-chan relay.Event) (deltas []string, terminals []error) {
	for ev := range events {
		if ev.Err != nil {
			terminals = append(terminals, ev.Err)
			continue
		}
		deltas = append(deltas, ev.Delta)
	}
	return deltas, terminals
}

var _ = Describe("Relay", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	newRelay := func(stream llm.Stream) *relay.Relay {
		return relay.New(&mockStreamer{
			streamFn: func(context.Context, llm.Request) llm.Stream { return stream },
		}, time.Second, 0)
	}

	Describe("successful streams", func() {
		It("forwards all deltas in order and closes without an error event", func() {
			r := newRelay(&scriptedStream{deltas: []string{"one", "two", "three"}})

			deltas, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(deltas).To(Equal([]string{"one", "two", "three"}))
			Expect(terminals).To(BeEmpty())
		})

		It("closes immediately for an empty stream", func() {
			r := newRelay(&scriptedStream{})

			deltas, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(deltas).To(BeEmpty())
			Expect(terminals).To(BeEmpty())
		})

		It("passes the request through to the upstream call", func() {
			var captured llm.Request
			r := relay.New(&mockStreamer{
				streamFn: func(_ context.Context, req llm.Request) llm.Stream {
					captured = req
					return &scriptedStream{}
				},
			}, time.Second, 4096)

			drain(r.Generate(ctx, relay.Request{SystemPrompt: "sys", UserContent: "user"}))

			Expect(captured.SystemPrompt).To(Equal("sys"))
			Expect(captured.UserContent).To(Equal("user"))
			Expect(captured.MaxTokens).To(Equal(4096))
		})
	})

	Describe("failure classification", func() {
		It("maps upstream 400 to the credits message", func() {
			r := newRelay(&scriptedStream{err: &anthropic.Error{StatusCode: 400}})

			_, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(terminals).To(HaveLen(1))
			Expect(terminals[0]).To(MatchError(relay.ErrCreditsExhausted))
		})

		It("maps upstream 403 to the region message", func() {
			r := newRelay(&scriptedStream{err: &anthropic.Error{StatusCode: 403}})

			_, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(terminals).To(HaveLen(1))
			Expect(terminals[0]).To(MatchError(relay.ErrRegionBlocked))
		})

		It("maps DNS resolution failures, even wrapped, to the DNS message", func() {
			dnsErr := &net.DNSError{Err: "no such host", Name: "api.anthropic.com", IsNotFound: true}
			r := newRelay(&scriptedStream{err: fmt.Errorf("send request: %w", dnsErr)})

			_, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(terminals).To(HaveLen(1))
			Expect(terminals[0]).To(MatchError(relay.ErrUpstreamDNS))
		})

		It("passes unclassified upstream errors through opaquely", func() {
			upstream := errors.New("upstream exploded in a novel way")
			r := newRelay(&scriptedStream{err: upstream})

			_, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(terminals).To(HaveLen(1))
			Expect(terminals[0]).To(MatchError(upstream))
		})

		It("emits deltas produced before the failure, then exactly one error event", func() {
			r := newRelay(&scriptedStream{
				deltas: []string{"partial "},
				err:    &anthropic.Error{StatusCode: 400},
			})

			deltas, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(deltas).To(Equal([]string{"partial "}))
			Expect(terminals).To(HaveLen(1))
		})
	})

	Describe("timeout", func() {
		It("cancels a stalled upstream call and emits the timeout message once", func() {
			var streamCtx context.Context
			r := relay.New(&mockStreamer{
				streamFn: func(callCtx context.Context, _ llm.Request) llm.Stream {
					streamCtx = callCtx
					return &hangingStream{ctx: callCtx}
				},
			}, 30*time.Millisecond, 0)

			deltas, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(deltas).To(BeEmpty())
			Expect(terminals).To(HaveLen(1))
			Expect(terminals[0]).To(MatchError(relay.ErrTimeout))
			Expect(streamCtx.Err()).To(MatchError(context.DeadlineExceeded))
		})

		It("times out even after some deltas arrived", func() {
			r := relay.New(&mockStreamer{
				streamFn: func(callCtx context.Context, _ llm.Request) llm.Stream {
					return &hangingStream{ctx: callCtx, deltas: []string{"a", "b"}}
				},
			}, 30*time.Millisecond, 0)

			deltas, terminals := drain(r.Generate(ctx, relay.Request{UserContent: "hi"}))

			Expect(deltas).To(Equal([]string{"a", "b"}))
			Expect(terminals).To(HaveLen(1))
			Expect(terminals[0]).To(MatchError(relay.ErrTimeout))
		})
	})

	Describe("cancellation", func() {
		It("closes the stream when the caller disconnects", func() {
			callerCtx, cancel := context.WithCancel(ctx)
			r := relay.New(&mockStreamer{
				streamFn: func(callCtx context.Context, _ llm.Request) llm.Stream {
					return &hangingStream{ctx: callCtx}
				},
			}, time.Minute, 0)

			events := r.Generate(callerCtx, relay.Request{UserContent: "hi"})
			cancel()

			Eventually(events).WithTimeout(time.Second).Should(BeClosed())
		})
	})
})

var _ = Describe("Classify", func() {
	It("treats a deadline error as a timeout regardless of wrapping", func() {
		err := fmt.Errorf("stream: %w", context.DeadlineExceeded)
		Expect(relay.Classify(err)).To(MatchError(relay.ErrTimeout))
	})

	It("does not reinterpret caller cancellation", func() {
		Expect(relay.Classify(context.Canceled)).To(MatchError(context.Canceled))
	})
})
