// Package icons holds the icon-source manager and the on-disk cache shared
// by the concrete source adapters.
package icons

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DiskCache stores downloaded icon files under one directory with a JSON
// metadata sidecar. Writes go through a temp file and rename, so a crashed
// or cancelled download is never visible as a cached icon.
type DiskCache struct {
	dir  string
	mu   sync.Mutex
	meta map[string]CachedIcon
}

// CachedIcon is the metadata kept for one cached icon file.
type CachedIcon struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	License  string `json:"license"`
	Format   string `json:"format"`
	Size     int    `json:"size"`
}

// NewDiskCache opens (or creates) a cache directory and loads its metadata
// sidecar. A corrupt sidecar starts the cache fresh rather than failing.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	c := &DiskCache{dir: dir, meta: make(map[string]CachedIcon)}
	data, err := os.ReadFile(c.metaPath())
	if err == nil {
		if jsonErr := json.Unmarshal(data, &c.meta); jsonErr != nil {
			c.meta = make(map[string]CachedIcon)
		}
	}
	return c, nil
}

func (c *DiskCache) metaPath() string {
	return filepath.Join(c.dir, "metadata.json")
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	return c.dir
}

// Contains reports whether a fully written copy of the icon exists.
func (c *DiskCache) Contains(name string) bool {
	_, ok := c.Path(name)
	return ok
}

// Path returns the local path of a cached icon, if present on disk.
func (c *DiskCache) Path(name string) (string, bool) {
	c.mu.Lock()
	entry, ok := c.meta[name]
	c.mu.Unlock()
	if !ok {
		return "", false
	}
	if _, err := os.Stat(entry.Path); err != nil {
		return "", false
	}
	return entry.Path, true
}

// Put atomically writes icon bytes under fileName and records its metadata.
// Returns the final path.
func (c *DiskCache) Put(icon CachedIcon, fileName string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(c.dir, "download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write icon: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close icon file: %w", err)
	}

	final := filepath.Join(c.dir, fileName)
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("finalize icon file: %w", err)
	}

	icon.Path = final
	c.mu.Lock()
	c.meta[icon.Name] = icon
	err = c.saveMetaLocked()
	c.mu.Unlock()
	if err != nil {
		return "", err
	}
	return final, nil
}

// Clear removes every cached file and resets metadata.
func (c *DiskCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("recreate cache dir: %w", err)
	}
	c.meta = make(map[string]CachedIcon)
	return c.saveMetaLocked()
}

func (c *DiskCache) saveMetaLocked() error {
	data, err := json.MarshalIndent(c.meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache metadata: %w", err)
	}
	if err := os.WriteFile(c.metaPath(), data, 0644); err != nil {
		return fmt.Errorf("write cache metadata: %w", err)
	}
	return nil
}
