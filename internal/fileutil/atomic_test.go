package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, WriteFileAtomic(path, []byte("hello world"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files remain")
	assert.Equal(t, "report.txt", entries[0].Name())
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteFileAtomic(path, []byte("initial"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("updated content"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated content", string(data))
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "report.txt"), []byte("data"), 0o644)
	require.Error(t, err)
}

func TestWriteJSONAtomic(t *testing.T) {
	t.Parallel()

	type report struct {
		Games int    `json:"games"`
		Best  string `json:"best"`
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSONAtomic(path, report{Games: 3, Best: "ada"}, 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, report{Games: 3, Best: "ada"}, got)

	require.Error(t, WriteJSONAtomic(path, make(chan int), 0o600))
}
