package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Hello 🚀\n"), 0644))

	content, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "# Hello 🚀\n", content)
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "absent.md"))
	assert.Error(t, err)
}

func TestLoadDocument_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0644))

	_, err := LoadDocument(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestSaveDocument_WithBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	require.NoError(t, SaveDocument(path, "updated", true))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(content))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "original", string(backup))
}

func TestSaveDocument_BackupSkippedForNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")

	require.NoError(t, SaveDocument(path, "fresh", true))

	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveDocument_NoBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	require.NoError(t, SaveDocument(path, "updated", false))

	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
}
