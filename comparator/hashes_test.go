package comparator

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDistancesIdenticalFiles(t *testing.T) {
	dir := t.TempDir()
	img := checkerboard(64, 64, 8,
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		color.RGBA{A: 255})
	pathA := writePNG(t, dir, "a.png", img)
	pathB := writePNG(t, dir, "b.png", img)

	result, err := HashDistances(pathA, pathB)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PHashDistance)
	assert.Equal(t, 0, result.DHashDistance)
}

func TestHashDistancesDifferentImages(t *testing.T) {
	dir := t.TempDir()
	pathA := writePNG(t, dir, "a.png", checkerboard(64, 64, 8,
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		color.RGBA{A: 255}))
	pathB := writePNG(t, dir, "b.png", checkerboard(64, 64, 4,
		color.RGBA{R: 255, A: 255},
		color.RGBA{B: 255, A: 255}))

	result, err := HashDistances(pathA, pathB)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.PHashDistance, 0)
	assert.GreaterOrEqual(t, result.DHashDistance, 0)
}

func TestHashDistancesMissingFile(t *testing.T) {
	dir := t.TempDir()
	pathA := writePNG(t, dir, "a.png", solidOpaque(8, 8, color.RGBA{A: 255}))

	_, err := HashDistances(pathA, filepath.Join(dir, "gone.png"))
	assert.True(t, errors.Is(err, ErrNotFound))
}
