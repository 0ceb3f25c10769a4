// Package promptctx assembles the natural-language prompt body describing a
// repository: its dependency manifest, root directory layout and README.
package promptctx

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cursorcontext/architect/internal/gitsource"
)

// ReadmeMaxLength bounds the README section of the prompt.
const ReadmeMaxLength = 2000

// SourceFetcher is the subset of the gitsource client the builder needs.
type SourceFetcher interface {
	FetchManifest(ctx context.Context, id gitsource.Identity) (*gitsource.PackageJSON, error)
	FetchFile(ctx context.Context, id gitsource.Identity, path string) (string, error)
	FetchRootListing(ctx context.Context, id gitsource.Identity) ([]gitsource.ContentEntry, error)
}

type Builder struct {
	src SourceFetcher
}

func NewBuilder(src SourceFetcher) *Builder {
	return &Builder{src: src}
}

// Build fetches the three repository artifacts concurrently and assembles
// the prompt body. All three fetches are independent; any of them failing
// degrades to an omitted section, so Build itself never fails.
func (b *Builder) Build(ctx context.Context, id gitsource.Identity) string {
	var (
		pkg     *gitsource.PackageJSON
		readme  string
		entries []gitsource.ContentEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if pkg, err = b.src.FetchManifest(gctx, id); err != nil {
			slog.DebugContext(gctx, "manifest unavailable", "repo", id.Slug(), "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if readme, err = b.src.FetchFile(gctx, id, "README.md"); err != nil {
			slog.DebugContext(gctx, "readme unavailable", "repo", id.Slug(), "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if entries, err = b.src.FetchRootListing(gctx, id); err != nil {
			slog.DebugContext(gctx, "contents listing unavailable", "repo", id.Slug(), "error", err)
		}
		return nil
	})
	_ = g.Wait() // the goroutines above never return errors

	techStack := fmt.Sprintf(
		"Repository: %s (no package.json found, infer stack from README and directory structure)",
		id.Slug())
	if pkg != nil {
		techStack = TechStackSummary(pkg)
	}

	var body strings.Builder
	body.WriteString("Tech stack:\n")
	body.WriteString(techStack)

	if tree := RenderTree(entries); strings.TrimSpace(tree) != "" {
		body.WriteString("\n\nRoot directory structure:\n")
		body.WriteString(tree)
	}

	if strings.TrimSpace(readme) != "" {
		body.WriteString("\n\nREADME description:\n")
		body.WriteString(TruncateReadme(readme, ReadmeMaxLength))
	}

	return body.String()
}
