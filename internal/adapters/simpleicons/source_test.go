package simpleicons

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSource(t *testing.T, handler http.Handler) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	src, err := NewWithBaseURL(server.URL, filepath.Join(t.TempDir(), "cache"), zap.NewNop())
	require.NoError(t, err)
	return src
}

func TestSearch_LocalSlugMatch(t *testing.T) {
	src := newTestSource(t, http.NotFoundHandler())

	results, err := src.Search(context.Background(), "git", 10)
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
		assert.Equal(t, "simple-icons", r.Library)
	}
	assert.Contains(t, names, "github")
	assert.Contains(t, names, "gitlab")
}

func TestSearch_CaseInsensitive(t *testing.T) {
	src := newTestSource(t, http.NotFoundHandler())

	results, err := src.Search(context.Background(), "GitHub", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "github", results[0].Name)
}

func TestSearch_LimitAndEmpty(t *testing.T) {
	src := newTestSource(t, http.NotFoundHandler())

	results, err := src.Search(context.Background(), "git", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = src.Search(context.Background(), "  ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = src.Search(context.Background(), "zzzzzz", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFetch(t *testing.T) {
	svg := `<svg>github</svg>`
	requests := 0
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "/github", r.URL.Path)
		w.Write([]byte(svg))
	}))

	path, err := src.Fetch(context.Background(), "github", 0)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, svg, string(data))
	assert.True(t, src.IsCached("github"))

	_, err = src.Fetch(context.Background(), "github", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, requests, "second fetch must come from cache")
}

func TestFetch_FailureNotCached(t *testing.T) {
	src := newTestSource(t, http.NotFoundHandler())

	_, err := src.Fetch(context.Background(), "notabrand", 0)
	require.Error(t, err)
	assert.False(t, src.IsCached("notabrand"))
}

func TestName(t *testing.T) {
	src := newTestSource(t, http.NotFoundHandler())
	assert.Equal(t, "simple-icons", src.Name())
}
