package service

import (
	"context"
	"fmt"

	"github.com/cursorcontext/architect/common/logger"
	"github.com/cursorcontext/architect/internal/gitsource"
	"github.com/cursorcontext/architect/internal/relay"
)

// GeneratorService produces one rules stream per request, in one of three
// modes: from a resolved repository, from a manually described stack, or by
// refining existing rules.
type GeneratorService interface {
	FromRepo(ctx context.Context, id gitsource.Identity) <-chan relay.Event
	FromStack(ctx context.Context, stack string) <-chan relay.Event
	Refine(ctx context.Context, existingRules, refinementPrompt string) <-chan relay.Event
}

// promptBuilder assembles the repository prompt body.
type promptBuilder interface {
	Build(ctx context.Context, id gitsource.Identity) string
}

// generationRelay streams one generation call.
type generationRelay interface {
	Generate(ctx context.Context, req relay.Request) <-chan relay.Event
}

// repoTracker records repository popularity off the critical path.
type repoTracker interface {
	Track(slug string)
}

type generatorService struct {
	builder promptBuilder
	relay   generationRelay
	tracker repoTracker
}

func NewGeneratorService(builder promptBuilder, generationRelay generationRelay, tracker repoTracker) GeneratorService {
	return &generatorService{
		builder: builder,
		relay:   generationRelay,
		tracker: tracker,
	}
}

func (s *generatorService) FromRepo(ctx context.Context, id gitsource.Identity) <-chan relay.Event {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Repo: logger.Ptr(id.Slug()),
		Mode: logger.Ptr("generate"),
	})

	input := s.builder.Build(ctx, id)
	s.tracker.Track(id.Slug())

	return s.relay.Generate(ctx, relay.Request{
		SystemPrompt: generateSystemPrompt,
		UserContent:  input,
	})
}

func (s *generatorService) FromStack(ctx context.Context, stack string) <-chan relay.Event {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Mode: logger.Ptr("generate"),
	})

	return s.relay.Generate(ctx, relay.Request{
		SystemPrompt: generateSystemPrompt,
		UserContent:  stack,
	})
}

func (s *generatorService) Refine(ctx context.Context, existingRules, refinementPrompt string) <-chan relay.Event {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Mode: logger.Ptr("refine"),
	})

	userContent := fmt.Sprintf(
		"Here are the current .cursorrules:\n\n%s\n\nThe user requested this change: %s",
		existingRules, refinementPrompt)

	return s.relay.Generate(ctx, relay.Request{
		SystemPrompt: refineSystemPrompt,
		UserContent:  userContent,
	})
}
