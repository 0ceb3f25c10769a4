package service

import (
	"github.com/cursorcontext/architect/internal/gitsource"
	"github.com/cursorcontext/architect/internal/promptctx"
	"github.com/cursorcontext/architect/internal/relay"
	"github.com/cursorcontext/architect/internal/trending"
)

// Services aggregates the service layer for handler wiring.
type Services struct {
	generator GeneratorService
	gist      GistService
	tracker   *trending.Tracker
}

type ServicesConfig struct {
	Builder *promptctx.Builder
	Relay   *relay.Relay
	Tracker *trending.Tracker
	GitHub  *gitsource.Client
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		generator: NewGeneratorService(cfg.Builder, cfg.Relay, cfg.Tracker),
		gist:      NewGistService(cfg.GitHub),
		tracker:   cfg.Tracker,
	}
}

func (s *Services) Generator() GeneratorService {
	return s.generator
}

func (s *Services) Gist() GistService {
	return s.gist
}

func (s *Services) Tracker() *trending.Tracker {
	return s.tracker
}
