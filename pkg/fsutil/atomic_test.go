package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates parent dirs and writes content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "out.json")

		require.NoError(t, WriteFileAtomic(path, []byte(`{"ok":true}`), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(data))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))

		require.NoError(t, WriteFileAtomic(path, []byte("new"), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteFileAtomic(filepath.Join(dir, "out.json"), []byte("x"), 0644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.json", entries[0].Name())
	})

	t.Run("fails when the target is a directory", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "taken")
		require.NoError(t, os.Mkdir(target, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "child"), []byte("x"), 0644))

		err := WriteFileAtomic(target, []byte("x"), 0644)
		assert.Error(t, err)

		entries, _ := os.ReadDir(dir)
		assert.Len(t, entries, 1, "temp file is removed on failure")
	})
}
