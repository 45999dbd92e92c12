package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.Equal(t, 50, cfg.SimilarityThreshold)
	assert.Equal(t, 30, cfg.SessionRetainDays)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"similarity_threshold": 70}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.SimilarityThreshold)
	assert.Equal(t, DefaultConfig().DBPath, cfg.DBPath, "unset fields keep defaults")
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestNewApp(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		DBPath:              filepath.Join(dir, "data", "mdicon.db"),
		CacheDir:            filepath.Join(dir, "cache"),
		SimilarityThreshold: 60,
		SessionRetainDays:   30,
	}

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 60, a.Matcher.SimilarityThreshold())
	assert.ElementsMatch(t, []string{"iconify", "simple-icons"}, a.Icons.Sources())
	assert.False(t, a.Sessions.Active())
}

func TestAppClose_LeavesSessionOpen(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		DBPath:              filepath.Join(dir, "mdicon.db"),
		CacheDir:            filepath.Join(dir, "cache"),
		SimilarityThreshold: 50,
		SessionRetainDays:   30,
	}

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	id, err := a.Sessions.StartSession("/docs/readme.md")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// A later process must see the session still open and resume it, so
	// duplicate detection spans invocations.
	a2, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a2.Close()

	sessions, err := a2.Store.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
	assert.Nil(t, sessions[0].EndedAt)

	resumed, err := a2.Sessions.ResumeOrStart("/docs/readme.md")
	require.NoError(t, err)
	assert.Equal(t, id, resumed)
}
