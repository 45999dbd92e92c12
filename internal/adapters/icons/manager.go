package icons

import (
	"context"
	"fmt"
	"time"

	"github.com/corey/mdicon/internal/ports"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// searchCacheSize bounds the number of cached search queries.
const searchCacheSize = 128

// searchCacheTTL expires cached search results; remote catalogs change
// rarely, so a generous TTL is fine.
const searchCacheTTL = 15 * time.Minute

// Manager fans a search out across all registered icon sources and merges
// the results. Per-query results are cached in an expirable LRU so repeated
// suggestion lookups in one editing session do not re-hit the network.
type Manager struct {
	sources []ports.IconSource
	cache   *expirable.LRU[string, []ports.IconDescriptor]
	log     *zap.Logger
}

// NewManager creates a manager over the given sources.
func NewManager(log *zap.Logger, sources ...ports.IconSource) *Manager {
	return &Manager{
		sources: sources,
		cache:   expirable.NewLRU[string, []ports.IconDescriptor](searchCacheSize, nil, searchCacheTTL),
		log:     log,
	}
}

// Sources returns the registered source names.
func (m *Manager) Sources() []string {
	names := make([]string, 0, len(m.sources))
	for _, s := range m.sources {
		names = append(names, s.Name())
	}
	return names
}

// Search queries every source for up to perSource results each and returns
// the merged list in source-registration order. A source failing does not
// abort the merge; its error is logged and its slot skipped.
func (m *Manager) Search(ctx context.Context, query string, perSource int) []ports.IconDescriptor {
	cacheKey := fmt.Sprintf("%s|%d", query, perSource)
	if cached, ok := m.cache.Get(cacheKey); ok {
		return cached
	}

	var merged []ports.IconDescriptor
	for _, src := range m.sources {
		results, err := src.Search(ctx, query, perSource)
		if err != nil {
			m.log.Warn("icon search failed",
				zap.String("source", src.Name()),
				zap.String("query", query),
				zap.Error(err))
			continue
		}
		merged = append(merged, results...)
	}

	m.cache.Add(cacheKey, merged)
	return merged
}

// Fetch downloads an icon from the named source and returns its local path.
func (m *Manager) Fetch(ctx context.Context, library, iconName string, size int) (string, error) {
	for _, src := range m.sources {
		if src.Name() == library {
			return src.Fetch(ctx, iconName, size)
		}
	}
	return "", fmt.Errorf("unknown icon library %q", library)
}
