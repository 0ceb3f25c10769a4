package gitsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultCDNBaseURL = "https://fastly.jsdelivr.net"
	defaultAPIBaseURL = "https://api.github.com"

	userAgent  = "CursorContext-Architect"
	apiVersion = "2022-11-28"
)

// branches tried in order when fetching raw files.
var branches = [2]string{"main", "master"}

// PackageJSON is the subset of a package.json manifest we care about.
type PackageJSON struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ContentEntry is one item of a repository contents listing.
type ContentEntry struct {
	Name string `json:"name"`
	Type string `json:"type"` // "file", "dir", "symlink" or "submodule"
}

// APIError is a non-2xx response from the GitHub API, carrying the upstream
// status and message so handlers can propagate them.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client fetches repository artifacts through the jsDelivr raw-file CDN and
// GitHub's REST API. It is intentionally light, just the endpoints the
// aggregator and gist sharing require.
type Client struct {
	http       *http.Client
	token      string
	cdnBaseURL string
	apiBaseURL string
}

type Option func(*Client)

// WithBaseURLs overrides the CDN and API endpoints. Used in tests.
func WithBaseURLs(cdn, api string) Option {
	return func(c *Client) {
		c.cdnBaseURL = cdn
		c.apiBaseURL = api
	}
}

// NewClient returns a ready-to-use client. token may be empty; it is only
// required for gist creation.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		token:      token,
		cdnBaseURL: defaultCDNBaseURL,
		apiBaseURL: defaultAPIBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchFile retrieves a raw file from the repository, trying the main branch
// first and falling back to master.
func (c *Client) FetchFile(ctx context.Context, id Identity, path string) (string, error) {
	for _, branch := range branches {
		u := fmt.Sprintf("%s/gh/%s/%s@%s/%s",
			c.cdnBaseURL, url.PathEscape(id.Owner), url.PathEscape(id.Repo), branch, path)

		body, err := c.get(ctx, u)
		if err != nil {
			continue // try next branch
		}
		return string(body), nil
	}
	return "", fmt.Errorf("%s not found on any branch of %s", path, id.Slug())
}

// FetchManifest retrieves and parses package.json with branch fallback.
// A branch whose manifest fails to parse is skipped, same as a missing one.
func (c *Client) FetchManifest(ctx context.Context, id Identity) (*PackageJSON, error) {
	for _, branch := range branches {
		u := fmt.Sprintf("%s/gh/%s/%s@%s/package.json",
			c.cdnBaseURL, url.PathEscape(id.Owner), url.PathEscape(id.Repo), branch)

		body, err := c.get(ctx, u)
		if err != nil {
			continue
		}
		var pkg PackageJSON
		if err := json.Unmarshal(body, &pkg); err != nil {
			continue
		}
		return &pkg, nil
	}
	return nil, fmt.Errorf("package.json not found on any branch of %s", id.Slug())
}

// FetchRootListing queries the contents API for the repository root.
func (c *Client) FetchRootListing(ctx context.Context, id Identity) ([]ContentEntry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents",
		c.apiBaseURL, url.PathEscape(id.Owner), url.PathEscape(id.Repo))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("GitHub API error: %d", resp.StatusCode),
		}
	}

	var entries []ContentEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode contents listing: %w", err)
	}
	return entries, nil
}

// CreateGist creates a public gist and returns its HTML URL.
// On upstream failure the returned error is an *APIError carrying GitHub's
// status code and message.
func (c *Client) CreateGist(ctx context.Context, description string, files map[string]string) (string, error) {
	type gistFile struct {
		Content string `json:"content"`
	}

	payload := struct {
		Description string              `json:"description"`
		Public      bool                `json:"public"`
		Files       map[string]gistFile `json:"files"`
	}{
		Description: description,
		Public:      true,
		Files:       make(map[string]gistFile, len(files)),
	}
	for name, content := range files {
		payload.Files[name] = gistFile{Content: content}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/gists", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.addHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("GitHub API error: %d", resp.StatusCode),
		}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return "", apiErr
	}

	var gist struct {
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gist); err != nil {
		return "", fmt.Errorf("decode gist response: %w", err)
	}
	return gist.HTMLURL, nil
}

// get fetches a URL and returns the body for 200 responses only.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// addHeaders sets authentication and API version headers.
func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
