package iconify

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

func TestSearch(t *testing.T) {
	var gotQuery, gotLimit string
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"icons":["lucide:rocket","tabler:rocket-off"]}`))
	}))

	results, err := src.Search(context.Background(), "rocket", 5)
	require.NoError(t, err)
	assert.Equal(t, "rocket", gotQuery)
	assert.Equal(t, "5", gotLimit)

	require.Len(t, results, 2)
	assert.Equal(t, "lucide:rocket", results[0].Name)
	assert.Equal(t, "iconify", results[0].Library)
	assert.Equal(t, "svg", results[0].Format)
	assert.Contains(t, results[0].Keywords, "lucide")
	assert.Contains(t, results[0].Keywords, "rocket")
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"icons":["a:one","a:two","a:three"]}`))
	}))

	results, err := src.Search(context.Background(), "x", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_ZeroLimit(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	results, err := src.Search(context.Background(), "x", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ServerError(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))

	_, err := src.Search(context.Background(), "rocket", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestFetch(t *testing.T) {
	svg := `<svg><path d="M0 0"/></svg>`
	requests := 0
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "/lucide/rocket.svg", r.URL.Path)
		require.Empty(t, r.URL.Query().Get("height"))
		w.Write([]byte(svg))
	}))

	path, err := src.Fetch(context.Background(), "lucide:rocket", 0)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, svg, string(data))
	assert.True(t, src.IsCached("lucide:rocket"))

	// Second fetch is served from cache.
	again, err := src.Fetch(context.Background(), "lucide:rocket", 0)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, requests)
}

func TestFetch_SizeKeyedCache(t *testing.T) {
	requests := 0
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`<svg height="` + r.URL.Query().Get("height") + `"/>`))
	}))

	small, err := src.Fetch(context.Background(), "lucide:rocket", 24)
	require.NoError(t, err)
	large, err := src.Fetch(context.Background(), "lucide:rocket", 48)
	require.NoError(t, err)

	// Different sizes are distinct files holding distinct renditions.
	assert.NotEqual(t, small, large)
	assert.Equal(t, 2, requests)

	smallData, err := os.ReadFile(small)
	require.NoError(t, err)
	assert.Equal(t, `<svg height="24"/>`, string(smallData))
	largeData, err := os.ReadFile(large)
	require.NoError(t, err)
	assert.Equal(t, `<svg height="48"/>`, string(largeData))

	// Re-fetching either size hits its cached copy.
	again, err := src.Fetch(context.Background(), "lucide:rocket", 24)
	require.NoError(t, err)
	assert.Equal(t, small, again)
	assert.Equal(t, 2, requests)
}

func TestFetch_FailureNotCached(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := src.Fetch(context.Background(), "lucide:missing", 24)
	require.Error(t, err)
	assert.False(t, src.IsCached("lucide:missing"))
}

func TestFetch_CancelledContext(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<svg/>"))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Fetch(ctx, "lucide:rocket", 24)
	require.Error(t, err)
	assert.False(t, src.IsCached("lucide:rocket"))
}

func TestName(t *testing.T) {
	src := newTestSource(t, http.NotFoundHandler())
	assert.Equal(t, "iconify", src.Name())
}
