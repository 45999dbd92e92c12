// Package simpleicons adapts the Simple Icons CDN (https://cdn.simpleicons.org)
// as an icon source. Simple Icons serves brand SVGs under CC0; there is no
// search API, so search matches against a static slug list.
package simpleicons

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/corey/mdicon/internal/adapters/icons"
	"github.com/corey/mdicon/internal/ports"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Simple Icons CDN.
const DefaultBaseURL = "https://cdn.simpleicons.org"

const requestTimeout = 10 * time.Second

// knownSlugs is the brand subset offered by search. Fetch accepts any slug
// the CDN serves; this list only drives local search results.
var knownSlugs = []string{
	"amazon", "apple", "discord", "docker", "facebook", "github", "gitlab",
	"golang", "google", "instagram", "kubernetes", "linkedin", "linux",
	"mastodon", "microsoft", "mozilla", "python", "reddit", "rust", "slack",
	"spotify", "telegram", "twitch", "wikipedia", "youtube",
}

// Source implements ports.IconSource over the Simple Icons CDN.
type Source struct {
	baseURL string
	client  *http.Client
	cache   *icons.DiskCache
	log     *zap.Logger
}

// New creates a Simple Icons source caching downloads under cacheDir.
func New(cacheDir string, log *zap.Logger) (*Source, error) {
	return NewWithBaseURL(DefaultBaseURL, cacheDir, log)
}

// NewWithBaseURL creates a source against a specific CDN endpoint.
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
	return "simple-icons"
}

// Search matches the query against the known brand slugs, substring in
// either direction. Purely local; never fails.
func (s *Source) Search(_ context.Context, query string, limit int) ([]ports.IconDescriptor, error) {
	if limit <= 0 {
		return nil, nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var results []ports.IconDescriptor
	for _, slug := range knownSlugs {
		if !strings.Contains(slug, q) && !strings.Contains(q, slug) {
			continue
		}
		results = append(results, ports.IconDescriptor{
			Name:      slug,
			Library:   s.Name(),
			Keywords:  []string{slug, "brand", "logo"},
			SourceURL: s.baseURL + "/" + slug,
			License:   "CC0 1.0 Universal",
			Size:      24,
			Format:    "svg",
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Fetch downloads a brand SVG from the CDN, or returns its cached copy.
func (s *Source) Fetch(ctx context.Context, name string, size int) (string, error) {
	if path, ok := s.cache.Path(name); ok {
		return path, nil
	}

	u := s.baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("simple icons fetch %q: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("simple icons fetch %q: unexpected status %s", name, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("simple icons fetch %q: read body: %w", name, err)
	}

	path, err := s.cache.Put(icons.CachedIcon{
		Name:    name,
		URL:     u,
		License: "CC0 1.0 Universal",
		Format:  "svg",
		Size:    size,
	}, name+".svg", data)
	if err != nil {
		return "", err
	}

	s.log.Debug("icon cached",
		zap.String("source", s.Name()),
		zap.String("icon", name),
		zap.String("path", path))
	return path, nil
}

// IsCached reports whether a complete copy of the icon is on disk.
func (s *Source) IsCached(name string) bool {
	return s.cache.Contains(name)
}
