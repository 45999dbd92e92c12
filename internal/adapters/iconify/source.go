// Package iconify adapts the Iconify API (https://api.iconify.design) as an
// icon source. Iconify aggregates icons from many open collections behind
// one search and SVG endpoint; icon names are "prefix:name".
package iconify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/corey/mdicon/internal/adapters/icons"
	"github.com/corey/mdicon/internal/ports"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Iconify API endpoint.
const DefaultBaseURL = "https://api.iconify.design"

const requestTimeout = 10 * time.Second

// Source implements ports.IconSource over the Iconify API.
type Source struct {
	baseURL string
	client  *http.Client
	cache   *icons.DiskCache
	log     *zap.Logger
}

// New creates an Iconify source caching downloads under cacheDir.
func New(cacheDir string, log *zap.Logger) (*Source, error) {
	return NewWithBaseURL(DefaultBaseURL, cacheDir, log)
}

// NewWithBaseURL creates a source against a specific API endpoint.
// Tests point this at an httptest server.
func NewWithBaseURL(baseURL, cacheDir string, log *zap.Logger) (*Source, error) {
	cache, err := icons.NewDiskCache(cacheDir)
	if err != nil {
		return nil, err
	}
	return &Source{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		cache:   cache,
		log:     log,
	}, nil
}

// Name returns the library identifier used in learned preferences.
func (s *Source) Name() string {
	return "iconify"
}

// searchResponse is the subset of the Iconify search payload we consume.
type searchResponse struct {
	Icons []string `json:"icons"` // "prefix:name" strings
}

// Search queries the Iconify search endpoint.
func (s *Source) Search(ctx context.Context, query string, limit int) ([]ports.IconDescriptor, error) {
	if limit <= 0 {
		return nil, nil
	}

	u := fmt.Sprintf("%s/search?query=%s&limit=%d", s.baseURL, url.QueryEscape(query), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("iconify search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("iconify search: unexpected status %s", resp.Status)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]ports.IconDescriptor, 0, len(payload.Icons))
	for _, name := range payload.Icons {
		if len(results) >= limit {
			break
		}
		prefix, bare, _ := strings.Cut(name, ":")
		results = append(results, ports.IconDescriptor{
			Name:      name,
			Library:   s.Name(),
			Keywords:  []string{query, prefix, bare},
			SourceURL: s.iconURL(name, 0),
			License:   "Various (depends on icon set)",
			Size:      24,
			Format:    "svg",
		})
	}
	return results, nil
}

// Fetch downloads an icon SVG, or returns its cached copy. Cancellation
// mid-download leaves the cache untouched: bytes land in a temp file that is
// only renamed into place after a complete read.
func (s *Source) Fetch(ctx context.Context, name string, size int) (string, error) {
	key := cacheKey(name, size)
	if path, ok := s.cache.Path(key); ok {
		return path, nil
	}

	u := s.iconURL(name, size)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("iconify fetch %q: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("iconify fetch %q: unexpected status %s", name, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("iconify fetch %q: read body: %w", name, err)
	}

	fileName := strings.ReplaceAll(key, ":", "_") + ".svg"
	path, err := s.cache.Put(icons.CachedIcon{
		Name:    key,
		URL:     u,
		License: "Various",
		Format:  "svg",
		Size:    size,
	}, fileName, data)
	if err != nil {
		return "", err
	}

	s.log.Debug("icon cached",
		zap.String("source", s.Name()),
		zap.String("icon", name),
		zap.String("path", path))
	return path, nil
}

// IsCached reports whether a complete default-size copy of the icon is on
// disk. Sized renditions are cached under their own key.
func (s *Source) IsCached(name string) bool {
	return s.cache.Contains(name)
}

// cacheKey keys cached files by rendered size so a fetch at one height never
// serves a copy rendered at another. Size zero means the server default.
func cacheKey(name string, size int) string {
	if size <= 0 {
		return name
	}
	return name + "@" + strconv.Itoa(size)
}

// iconURL builds the SVG endpoint for a "prefix:name" icon
// (/{prefix}/{name}.svg).
func (s *Source) iconURL(name string, size int) string {
	u := s.baseURL + "/" + strings.Replace(name, ":", "/", 1) + ".svg"
	if size > 0 {
		u += "?height=" + strconv.Itoa(size)
	}
	return u
}
