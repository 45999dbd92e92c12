// Package app wires the core together: store, matcher, session manager and
// icon sources are constructed once at startup and passed by handle, with no
// ambient globals.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	storeadapter "github.com/corey/mdicon/internal/adapters/bbolt"
	"github.com/corey/mdicon/internal/adapters/iconify"
	"github.com/corey/mdicon/internal/adapters/icons"
	"github.com/corey/mdicon/internal/adapters/simpleicons"
	"github.com/corey/mdicon/internal/domain/match"
	"github.com/corey/mdicon/internal/domain/session"
	"github.com/corey/mdicon/internal/ports"
	"go.uber.org/zap"
)

// Config is the on-disk configuration. All fields have working defaults; a
// missing config file is not an error.
type Config struct {
	DBPath              string `json:"db_path"`
	CacheDir            string `json:"cache_dir"`
	SimilarityThreshold int    `json:"similarity_threshold"`
	SessionRetainDays   int    `json:"session_retain_days"`
}

// DefaultConfig places data under ~/.mdicon.
func DefaultConfig() Config {
	base := ".mdicon"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".mdicon")
	}
	return Config{
		DBPath:              filepath.Join(base, "mdicon.db"),
		CacheDir:            filepath.Join(base, "icon-cache"),
		SimilarityThreshold: match.DefaultConfig().SimilarityThreshold,
		SessionRetainDays:   30,
	}
}

// LoadConfig reads a JSON config file, filling unset fields with defaults.
// An absent path (or empty string) returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = match.DefaultConfig().SimilarityThreshold
	}
	if cfg.SessionRetainDays <= 0 {
		cfg.SessionRetainDays = 30
	}
	return cfg, nil
}

// App owns the long-lived handles for one process.
type App struct {
	Config   Config
	Store    ports.KnowledgeStore
	Matcher  *match.Matcher
	Sessions *session.Manager
	Icons    *icons.Manager
	Log      *zap.Logger
}

// New opens the store and constructs the domain services and icon sources.
// The caller must Close the app when done.
func New(cfg Config, log *zap.Logger) (*App, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := storeadapter.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open knowledge store: %w", err)
	}

	matchCfg := match.DefaultConfig()
	matchCfg.SimilarityThreshold = cfg.SimilarityThreshold
	matcher := match.NewWithConfig(store, matchCfg)

	iconifySrc, err := iconify.New(filepath.Join(cfg.CacheDir, "iconify"), log)
	if err != nil {
		store.Close()
		return nil, err
	}
	simpleSrc, err := simpleicons.New(filepath.Join(cfg.CacheDir, "simple-icons"), log)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Store:    store,
		Matcher:  matcher,
		Sessions: session.New(store, matcher),
		Icons:    icons.NewManager(log, iconifySrc, simpleSrc),
		Log:      log,
	}, nil
}

// Close releases the store. An open session is deliberately left open: a
// document session spans process invocations until ended explicitly or
// pruned by retention, so replacements from an earlier run still bound
// duplicate detection in the next one.
func (a *App) Close() error {
	return a.Store.Close()
}
