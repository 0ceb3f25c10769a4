package handler_test

import (
	"context"

	"github.com/cursorcontext/architect/internal/gitsource"
	"github.com/cursorcontext/architect/internal/relay"
	"github.com/cursorcontext/architect/internal/trending"
)

type mockGeneratorService struct {
	fromRepoFn  func(ctx context.Context, id gitsource.Identity) <-chan relay.Event
	fromStackFn func(ctx context.Context, stack string) <-chan relay.Event
	refineFn    func(ctx context.Context, existingRules, refinementPrompt string) <-chan relay.Event
}

func (m *mockGeneratorService) FromRepo(ctx context.Context, id gitsource.Identity) <-chan relay.Event {
	if m.fromRepoFn != nil {
		return m.fromRepoFn(ctx, id)
	}
	return eventsOf()
}

func (m *mockGeneratorService) FromStack(ctx context.Context, stack string) <-chan relay.Event {
	if m.fromStackFn != nil {
		return m.fromStackFn(ctx, stack)
	}
	return eventsOf()
}

func (m *mockGeneratorService) Refine(ctx context.Context, existingRules, refinementPrompt string) <-chan relay.Event {
	if m.refineFn != nil {
		return m.refineFn(ctx, existingRules, refinementPrompt)
	}
	return eventsOf()
}

type mockGistService struct {
	shareFn func(ctx context.Context, content, repoName string) (string, error)
}

func (m *mockGistService) Share(ctx context.Context, content, repoName string) (string, error) {
	if m.shareFn != nil {
		return m.shareFn(ctx, content, repoName)
	}
	return "", nil
}

type mockTrendingReader struct {
	topFn func(ctx context.Context) []trending.Entry
}

func (m *mockTrendingReader) Top(ctx context.Context) []trending.Entry {
	if m.topFn != nil {
		return m.topFn(ctx)
	}
	return []trending.Entry{}
}

// eventsOf returns a closed channel pre-loaded with the given events.
func eventsOf(events ...relay.Event) <-chan relay.Event {
	ch := make(chan relay.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}
