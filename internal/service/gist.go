package service

import (
	"context"
	"fmt"
	"log/slog"
)

// GistService publishes generated rules as a public gist.
type GistService interface {
	Share(ctx context.Context, content, repoName string) (string, error)
}

// gistCreator is the slice of the gitsource client the service needs.
type gistCreator interface {
	CreateGist(ctx context.Context, description string, files map[string]string) (string, error)
}

type gistService struct {
	github gistCreator
}

func NewGistService(github gistCreator) GistService {
	return &gistService{github: github}
}

// Share creates a public gist holding content as a .cursorrules file and
// returns its URL. Upstream failures are returned as *gitsource.APIError so
// the handler can propagate status and message.
func (s *gistService) Share(ctx context.Context, content, repoName string) (string, error) {
	if repoName == "" {
		repoName = "your project"
	}

	url, err := s.github.CreateGist(ctx,
		fmt.Sprintf("Cursor rules for %s", repoName),
		map[string]string{".cursorrules": content},
	)
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "gist created", "url", url)
	return url, nil
}
