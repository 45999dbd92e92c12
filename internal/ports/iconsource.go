package ports

import "context"

// IconDescriptor describes one icon offered by a source.
type IconDescriptor struct {
	Name      string   `json:"name"`
	Library   string   `json:"library"`
	Keywords  []string `json:"keywords"`
	SourceURL string   `json:"source_url"`
	License   string   `json:"license"`
	Size      int      `json:"size"`   // nominal pixel size; SVGs scale freely
	Format    string   `json:"format"` // "svg", "png", ...
}

// IconSource is a remote icon catalog with a local cache.
//
// Fetch must be cancellable without corrupting cache state: a half-downloaded
// icon must never be reported by IsCached.
type IconSource interface {
	// Name returns the source identifier used as the "library" key in
	// learned preferences (e.g. "iconify").
	Name() string

	// Search returns up to limit icons matching the query.
	Search(ctx context.Context, query string, limit int) ([]IconDescriptor, error)

	// Fetch downloads an icon (or returns its cached copy) and returns the
	// local file path. size is a pixel hint; zero means source default.
	Fetch(ctx context.Context, name string, size int) (string, error)

	// IsCached reports whether a fully downloaded copy exists locally.
	IsCached(name string) bool
}
