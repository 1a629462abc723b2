package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"iconcompare/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	records := []types.PairRecord{
		{
			Name:          "sword",
			LargePath:     "/large/sword.png",
			SmallPath:     "/small/sword.png",
			Perceptual:    0.9876,
			Pixel:         0.995,
			SSIM:          0.97,
			Histogram:     0.96,
			MSE:           10.25,
			PHashDistance: 1,
			DHashDistance: 2,
			AlignedWidth:  64, AlignedHeight: 64,
			LargeContentW: 128, LargeContentH: 128,
			SmallContentW: 64, SmallContentH: 64,
			Verdict:    "near-identical",
			ComparedAt: "2026-01-02T03:04:05Z",
		},
		{
			Name:      "shield",
			LargePath: "/large/shield.png",
			SmallPath: "/small/shield.png",
			Verdict:   "dissimilar",
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "sword", rows[1][0])
	assert.Equal(t, "0.9876", rows[1][3])
	assert.Equal(t, "10.25", rows[1][7])
	assert.Equal(t, "128x128", rows[1][10])
	assert.Equal(t, "64x64", rows[1][12])
	assert.Equal(t, "near-identical", rows[1][13])
	assert.Equal(t, "shield", rows[2][0])
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}
