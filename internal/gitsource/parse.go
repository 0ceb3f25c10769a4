package gitsource

import (
	"net/url"
	"strings"
)

// Identity uniquely addresses a hosted repository.
type Identity struct {
	Owner string
	Repo  string
}

// Slug returns the "owner/repo" form used as the trending counter key.
func (id Identity) Slug() string {
	return id.Owner + "/" + id.Repo
}

// ParseURL extracts an Identity from a full GitHub URL. Only github.com and
// www.github.com are accepted. Returns nil on any malformed input; this is
// a pure validation function and never errors.
func ParseURL(raw string) *Identity {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	if parsed.Hostname() != "github.com" && parsed.Hostname() != "www.github.com" {
		return nil
	}

	var parts []string
	for _, p := range strings.Split(parsed.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return nil
	}

	return &Identity{
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}
}

// ParseReference accepts either "owner/repo" shorthand or a full GitHub URL.
func ParseReference(value string) *Identity {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	if !strings.Contains(trimmed, "://") {
		var parts []string
		for _, p := range strings.Split(trimmed, "/") {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) < 2 {
			return nil
		}
		return &Identity{
			Owner: parts[0],
			Repo:  strings.TrimSuffix(parts[1], ".git"),
		}
	}

	return ParseURL(trimmed)
}
