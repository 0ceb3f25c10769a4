package service_test

import (
	"context"

	"github.com/cursorcontext/architect/internal/gitsource"
	"github.com/cursorcontext/architect/internal/relay"
)

type mockBuilder struct {
	buildFn func(ctx context.Context, id gitsource.Identity) string
}

func (m *mockBuilder) Build(ctx context.Context, id gitsource.Identity) string {
	if m.buildFn != nil {
		return m.buildFn(ctx, id)
	}
	return ""
}

type mockRelay struct {
	generateFn func(ctx context.Context, req relay.Request) <-chan relay.Event
}

func (m *mockRelay) Generate(ctx context.Context, req relay.Request) <-chan relay.Event {
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return closedEvents()
}

type mockTracker struct {
	trackFn func(slug string)
}

func (m *mockTracker) Track(slug string) {
	if m.trackFn != nil {
		m.trackFn(slug)
	}
}

type mockGistCreator struct {
	createFn func(ctx context.Context, description string, files map[string]string) (string, error)
}

func (m *mockGistCreator) CreateGist(ctx context.Context, description string, files map[string]string) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, description, files)
	}
	return "", nil
}

func closedEvents(events ...relay.Event) <-chan relay.Event {
	ch := make(chan relay.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}
