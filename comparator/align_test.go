package comparator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func regionFromMat(mat gocv.Mat, format PixelFormat) ContentRegion {
	return ContentRegion{
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Mat:    mat,
		Format: format,
	}
}

func TestFlattenCompositesOverWhite(t *testing.T) {
	mat := newBGRAMat(t, 1, 1, 0, 0, 0, 128)
	defer mat.Close()
	region := regionFromMat(mat, FormatTransparent)

	flat := flatten(region)
	defer flat.Close()

	require.Equal(t, 3, flat.Channels())
	// black at alpha 128 over white: 0*(128/255) + 255*(127/255) = 127
	assert.Equal(t, uint8(127), flat.GetUCharAt(0, 0))
	assert.Equal(t, uint8(127), flat.GetUCharAt(0, 1))
	assert.Equal(t, uint8(127), flat.GetUCharAt(0, 2))
}

func TestFlattenOpaquePassthrough(t *testing.T) {
	mat := newBGRMat(t, 2, 2, 11, 22, 33)
	defer mat.Close()
	region := regionFromMat(mat, FormatOpaque)

	flat := flatten(region)
	defer flat.Close()

	assert.Equal(t, uint8(11), flat.GetUCharAt(0, 0))
	assert.Equal(t, uint8(22), flat.GetUCharAt(0, 1))
	assert.Equal(t, uint8(33), flat.GetUCharAt(0, 2))
}

func TestFlattenFullAlphaKeepsColor(t *testing.T) {
	mat := newBGRAMat(t, 1, 1, 30, 60, 200, 255)
	defer mat.Close()
	region := regionFromMat(mat, FormatTransparent)

	flat := flatten(region)
	defer flat.Close()

	assert.Equal(t, uint8(30), flat.GetUCharAt(0, 0))
	assert.Equal(t, uint8(60), flat.GetUCharAt(0, 1))
	assert.Equal(t, uint8(200), flat.GetUCharAt(0, 2))
}

func TestAlignDownsamplesLargerRegion(t *testing.T) {
	large := newBGRMat(t, 128, 128, 100, 100, 100)
	small := newBGRMat(t, 48, 48, 100, 100, 100)
	defer large.Close()
	defer small.Close()

	pair := Align(regionFromMat(large, FormatOpaque), regionFromMat(small, FormatOpaque))
	defer pair.Close()

	assert.Equal(t, 48, pair.Width)
	assert.Equal(t, 48, pair.Height)
	assert.Equal(t, 48, pair.A.Cols())
	assert.Equal(t, 48, pair.A.Rows())
	assert.Equal(t, 48, pair.B.Cols())
	assert.Equal(t, 48, pair.B.Rows())
}

func TestAlignNeverUpsamplesSmaller(t *testing.T) {
	small := newBGRMat(t, 16, 16, 1, 2, 3)
	large := newBGRMat(t, 64, 64, 1, 2, 3)
	defer small.Close()
	defer large.Close()

	// Smaller side first: the output must still be the smaller resolution.
	pair := Align(regionFromMat(small, FormatOpaque), regionFromMat(large, FormatOpaque))
	defer pair.Close()

	assert.Equal(t, 16, pair.Width)
	assert.Equal(t, 16, pair.Height)
}

func TestAlignEqualAreaDifferentShapeStillReconciles(t *testing.T) {
	a := newBGRMat(t, 8, 2, 0, 0, 0)
	b := newBGRMat(t, 4, 4, 0, 0, 0)
	defer a.Close()
	defer b.Close()

	pair := Align(regionFromMat(a, FormatOpaque), regionFromMat(b, FormatOpaque))
	defer pair.Close()

	// Equal areas, different shapes: the second region is resampled onto
	// the first's shape so the metric suite never sees a mismatch.
	assert.Equal(t, 8, pair.Width)
	assert.Equal(t, 2, pair.Height)
	assert.Equal(t, pair.A.Cols(), pair.B.Cols())
	assert.Equal(t, pair.A.Rows(), pair.B.Rows())
}

func TestAlignedAreaEqualsSmallerContentArea(t *testing.T) {
	a := newBGRMat(t, 100, 40, 9, 9, 9)
	b := newBGRMat(t, 30, 60, 9, 9, 9)
	defer a.Close()
	defer b.Close()

	regionA := regionFromMat(a, FormatOpaque)
	regionB := regionFromMat(b, FormatOpaque)
	minArea := regionB.Area()
	require.Less(t, minArea, regionA.Area())

	pair := Align(regionA, regionB)
	defer pair.Close()

	assert.Equal(t, minArea, pair.Width*pair.Height)
	assert.Equal(t, 30, pair.Width)
	assert.Equal(t, 60, pair.Height)
}
