package icons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskCache_PutAndPath(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "icons"))
	require.NoError(t, err)

	data := []byte("<svg>rocket</svg>")
	path, err := cache.Put(CachedIcon{Name: "lucide:rocket", Format: "svg"}, "lucide_rocket.svg", data)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	assert.True(t, cache.Contains("lucide:rocket"))
	cached, ok := cache.Path("lucide:rocket")
	require.True(t, ok)
	assert.Equal(t, path, cached)

	assert.False(t, cache.Contains("lucide:flame"))
}

func TestDiskCache_MetadataSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")

	cache, err := NewDiskCache(dir)
	require.NoError(t, err)
	_, err = cache.Put(CachedIcon{Name: "github", Format: "svg"}, "github.svg", []byte("<svg/>"))
	require.NoError(t, err)

	reopened, err := NewDiskCache(dir)
	require.NoError(t, err)
	assert.True(t, reopened.Contains("github"))
}

func TestDiskCache_MissingFileNotReported(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "icons"))
	require.NoError(t, err)

	path, err := cache.Put(CachedIcon{Name: "github"}, "github.svg", []byte("<svg/>"))
	require.NoError(t, err)

	// Metadata without the file behind it must not count as cached.
	require.NoError(t, os.Remove(path))
	assert.False(t, cache.Contains("github"))
}

func TestDiskCache_CorruptMetadataStartsFresh(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte("{not json"), 0644))

	cache, err := NewDiskCache(dir)
	require.NoError(t, err)
	assert.False(t, cache.Contains("anything"))
}

func TestDiskCache_NoTempFilesLeftBehind(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")
	cache, err := NewDiskCache(dir)
	require.NoError(t, err)

	_, err = cache.Put(CachedIcon{Name: "github"}, "github.svg", []byte("<svg/>"))
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "download-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDiskCache_Clear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")
	cache, err := NewDiskCache(dir)
	require.NoError(t, err)

	path, err := cache.Put(CachedIcon{Name: "github"}, "github.svg", []byte("<svg/>"))
	require.NoError(t, err)

	require.NoError(t, cache.Clear())
	assert.False(t, cache.Contains("github"))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
