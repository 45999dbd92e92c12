package icons

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/corey/mdicon/internal/ports"
)

// stubSource is a scripted IconSource for manager tests.
type stubSource struct {
	name        string
	results     []ports.IconDescriptor
	searchErr   error
	searchCalls int
	fetchPath   string
	fetchErr    error
	fetchedName string
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(_ context.Context, query string, limit int) ([]ports.IconDescriptor, error) {
	s.searchCalls++
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.results, nil
}

func (s *stubSource) Fetch(_ context.Context, name string, size int) (string, error) {
	s.fetchedName = name
	return s.fetchPath, s.fetchErr
}

func (s *stubSource) IsCached(name string) bool { return false }

func descriptor(name, library string) ports.IconDescriptor {
	return ports.IconDescriptor{Name: name, Library: library, Format: "svg"}
}

func TestManager_SearchMergesAllSources(t *testing.T) {
	a := &stubSource{name: "alpha", results: []ports.IconDescriptor{descriptor("rocket", "alpha")}}
	b := &stubSource{name: "beta", results: []ports.IconDescriptor{descriptor("rocket-ship", "beta")}}
	m := NewManager(zap.NewNop(), a, b)

	results := m.Search(context.Background(), "rocket", 5)
	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].Library)
	assert.Equal(t, "beta", results[1].Library)
}

func TestManager_SearchSkipsFailingSource(t *testing.T) {
	broken := &stubSource{name: "broken", searchErr: errors.New("connection refused")}
	healthy := &stubSource{name: "healthy", results: []ports.IconDescriptor{descriptor("rocket", "healthy")}}
	m := NewManager(zap.NewNop(), broken, healthy)

	results := m.Search(context.Background(), "rocket", 5)
	require.Len(t, results, 1)
	assert.Equal(t, "healthy", results[0].Library)
}

func TestManager_SearchCachesQueries(t *testing.T) {
	src := &stubSource{name: "alpha", results: []ports.IconDescriptor{descriptor("rocket", "alpha")}}
	m := NewManager(zap.NewNop(), src)

	m.Search(context.Background(), "rocket", 5)
	m.Search(context.Background(), "rocket", 5)
	assert.Equal(t, 1, src.searchCalls, "repeat query must hit the cache")

	// Different limit is a different cache key.
	m.Search(context.Background(), "rocket", 10)
	assert.Equal(t, 2, src.searchCalls)
}

func TestManager_FetchDispatchesByLibrary(t *testing.T) {
	a := &stubSource{name: "alpha", fetchPath: "/cache/a.svg"}
	b := &stubSource{name: "beta", fetchPath: "/cache/b.svg"}
	m := NewManager(zap.NewNop(), a, b)

	path, err := m.Fetch(context.Background(), "beta", "rocket", 24)
	require.NoError(t, err)
	assert.Equal(t, "/cache/b.svg", path)
	assert.Equal(t, "rocket", b.fetchedName)
	assert.Empty(t, a.fetchedName)
}

func TestManager_FetchUnknownLibrary(t *testing.T) {
	m := NewManager(zap.NewNop(), &stubSource{name: "alpha"})

	_, err := m.Fetch(context.Background(), "nope", "rocket", 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown icon library")
}

func TestManager_Sources(t *testing.T) {
	m := NewManager(zap.NewNop(), &stubSource{name: "alpha"}, &stubSource{name: "beta"})
	assert.Equal(t, []string{"alpha", "beta"}, m.Sources())
}
