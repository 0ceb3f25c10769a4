package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cursorcontext/architect/internal/gitsource"
	"github.com/cursorcontext/architect/internal/relay"
	"github.com/cursorcontext/architect/internal/service"
)

var _ = Describe("GeneratorService", func() {
	var (
		ctx      context.Context
		builder  *mockBuilder
		genRelay *mockRelay
		tracker  *mockTracker
		captured relay.Request
	)

	BeforeEach(func() {
		ctx = context.Background()
		builder = &mockBuilder{}
		tracker = &mockTracker{}
		captured = relay.Request{}
		genRelay = &mockRelay{
			generateFn: func(_ context.Context, req relay.Request) <-chan relay.Event {
				captured = req
				return closedEvents(relay.Event{Delta: "ok"})
			},
		}
	})

	newService := func() service.GeneratorService {
		return service.NewGeneratorService(builder, genRelay, tracker)
	}

	Describe("FromRepo", func() {
		It("builds the prompt, tracks the repo, and invokes the relay", func() {
			builder.buildFn = func(_ context.Context, id gitsource.Identity) string {
				return "Tech stack:\nProject: " + id.Repo
			}
			var tracked string
			tracker.trackFn = func(slug string) { tracked = slug }

			events := newService().FromRepo(ctx, gitsource.Identity{Owner: "octo", Repo: "cat"})

			Expect(events).To(Receive(Equal(relay.Event{Delta: "ok"})))
			Expect(tracked).To(Equal("octo/cat"))
			Expect(captured.UserContent).To(Equal("Tech stack:\nProject: cat"))
			Expect(captured.SystemPrompt).To(ContainSubstring("Senior Architect at Cursor.sh"))
		})
	})

	Describe("FromStack", func() {
		It("sends the manual stack description untouched", func() {
			newService().FromStack(ctx, "Rust, axum, sqlx")

			Expect(captured.UserContent).To(Equal("Rust, axum, sqlx"))
			Expect(captured.SystemPrompt).To(ContainSubstring("Senior Architect at Cursor.sh"))
		})

		It("does not track anything", func() {
			tracker.trackFn = func(string) { Fail("tracker must not be called") }

			newService().FromStack(ctx, "Rust")
		})
	})

	Describe("Refine", func() {
		It("wraps the existing rules and the change request", func() {
			newService().Refine(ctx, "use tabs", "switch to spaces")

			Expect(captured.SystemPrompt).To(ContainSubstring("refinement request"))
			Expect(captured.UserContent).To(Equal(
				"Here are the current .cursorrules:\n\nuse tabs\n\nThe user requested this change: switch to spaces"))
		})
	})
})
