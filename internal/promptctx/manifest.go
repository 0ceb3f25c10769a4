package promptctx

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cursorcontext/architect/internal/gitsource"
)

// TechStackSummary renders a deterministic dependency summary from a
// package.json manifest. Declared and development dependencies are merged
// (dev wins on collision), keys sorted lexicographically so repeated runs
// produce identical prompts.
func TechStackSummary(pkg *gitsource.PackageJSON) string {
	merged := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name, version := range pkg.Dependencies {
		merged[name] = version
	}
	for name, version := range pkg.DevDependencies {
		merged[name] = version
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	if pkg.Name != "" {
		b.WriteString("Project: ")
		b.WriteString(pkg.Name)
		b.WriteString("\n")
	}
	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(merged[name])
	}
	return b.String()
}

// RenderTree renders a contents listing, directories first with a trailing
// slash, each group sorted case-sensitively by name.
func RenderTree(entries []gitsource.ContentEntry) string {
	sorted := make([]gitsource.ContentEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		iDir := sorted[i].Type == "dir"
		jDir := sorted[j].Type == "dir"
		if iDir != jDir {
			return iDir
		}
		return sorted[i].Name < sorted[j].Name
	})

	lines := make([]string, 0, len(sorted))
	for _, e := range sorted {
		if e.Type == "dir" {
			lines = append(lines, e.Name+"/")
		} else {
			lines = append(lines, e.Name)
		}
	}
	return strings.Join(lines, "\n")
}

// TruncateReadme trims the document and cuts it to at most maxLength bytes,
// marking the cut so the model knows content is missing. The cut backs up to
// the nearest rune boundary so a multi-byte character is never split.
func TruncateReadme(text string, maxLength int) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= maxLength {
		return trimmed
	}
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut] + "\n\n[... truncated]"
}
