package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, rel string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("icon.png"))
	assert.True(t, IsImageFile("ICON.PNG"))
	assert.True(t, IsImageFile("photo.webp"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("archive.zip"))
}

func TestIndexImagesRecursive(t *testing.T) {
	dir := t.TempDir()
	sword := touch(t, dir, "weapons/sword.png")
	shield := touch(t, dir, "shield.png")
	touch(t, dir, "readme.md")

	index, err := IndexImages(dir)
	require.NoError(t, err)

	assert.Len(t, index, 2)
	assert.Equal(t, sword, index["sword"])
	assert.Equal(t, shield, index["shield"])
}

func TestIndexImagesDuplicateBaseNameFallsBackToRelPath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a/icon.png")
	touch(t, dir, "b/icon.png")

	index, err := IndexImages(dir)
	require.NoError(t, err)

	// One entry under the bare name, the clashing one under its relative
	// path. Walk order is lexical, so a/ wins the bare key.
	assert.Len(t, index, 2)
	assert.Contains(t, index, "icon")
	assert.Contains(t, index, "b/icon.png")
}

func TestMatchPairsSortedIntersection(t *testing.T) {
	large := map[string]string{
		"sword":  "/large/sword.png",
		"shield": "/large/shield.png",
		"only":   "/large/only.png",
	}
	small := map[string]string{
		"sword":  "/small/sword.png",
		"shield": "/small/shield.png",
		"other":  "/small/other.png",
	}

	pairs := MatchPairs(large, small)
	require.Len(t, pairs, 2)
	assert.Equal(t, "shield", pairs[0].Name)
	assert.Equal(t, "sword", pairs[1].Name)
	assert.Equal(t, "/large/sword.png", pairs[1].LargePath)
	assert.Equal(t, "/small/sword.png", pairs[1].SmallPath)
}
