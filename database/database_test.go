package database

import (
	"testing"

	"iconcompare/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(name string) types.PairRecord {
	return types.PairRecord{
		Name:            name,
		LargePath:       "/large/" + name + ".png",
		SmallPath:       "/small/" + name + ".png",
		LargeModifiedAt: "2026-01-02T03:04:05Z",
		SmallModifiedAt: "2026-01-02T03:04:06Z",
		Perceptual:      0.97,
		Pixel:           0.99,
		SSIM:            0.96,
		Histogram:       0.95,
		MSE:             12.5,
		PHashDistance:   2,
		DHashDistance:   3,
		AlignedWidth:    64,
		AlignedHeight:   64,
		LargeContentW:   128,
		LargeContentH:   128,
		SmallContentW:   64,
		SmallContentH:   64,
		Verdict:         "near-identical",
	}
}

func TestStoreAndLoadPairResult(t *testing.T) {
	db, err := InitDatabase(":memory:")
	require.NoError(t, err)
	defer db.Close()

	rec := sampleRecord("sword")
	require.NoError(t, StorePairResult(db, rec))

	loaded, err := LoadPairRecord(db, rec.LargePath, rec.SmallPath)
	require.NoError(t, err)

	assert.Equal(t, rec.Name, loaded.Name)
	assert.Equal(t, rec.Verdict, loaded.Verdict)
	assert.InDelta(t, rec.Perceptual, loaded.Perceptual, 1e-9)
	assert.Equal(t, rec.PHashDistance, loaded.PHashDistance)
	assert.NotEmpty(t, loaded.ComparedAt)
}

func TestCheckPairExists(t *testing.T) {
	db, err := InitDatabase(":memory:")
	require.NoError(t, err)
	defer db.Close()

	exists, _, _, err := CheckPairExists(db, "/large/x.png", "/small/x.png")
	require.NoError(t, err)
	assert.False(t, exists)

	rec := sampleRecord("x")
	require.NoError(t, StorePairResult(db, rec))

	exists, largeMod, smallMod, err := CheckPairExists(db, rec.LargePath, rec.SmallPath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, rec.LargeModifiedAt, largeMod)
	assert.Equal(t, rec.SmallModifiedAt, smallMod)
}

func TestStorePairResultUpserts(t *testing.T) {
	db, err := InitDatabase(":memory:")
	require.NoError(t, err)
	defer db.Close()

	rec := sampleRecord("shield")
	require.NoError(t, StorePairResult(db, rec))

	rec.Perceptual = 0.5
	rec.Verdict = "dissimilar"
	require.NoError(t, StorePairResult(db, rec))

	records, err := LoadAllRecords(db)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 0.5, records[0].Perceptual, 1e-9)
	assert.Equal(t, "dissimilar", records[0].Verdict)
}

func TestGetBatchStats(t *testing.T) {
	db, err := InitDatabase(":memory:")
	require.NoError(t, err)
	defer db.Close()

	high := sampleRecord("high")
	high.Perceptual = 0.99
	low := sampleRecord("low")
	low.Perceptual = 0.4
	low.Verdict = "dissimilar"
	mid := sampleRecord("mid")
	mid.Perceptual = 0.85
	mid.Verdict = "moderately similar"

	for _, rec := range []types.PairRecord{high, low, mid} {
		require.NoError(t, StorePairResult(db, rec))
	}

	stats, err := GetBatchStats(db)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPairs)
	assert.Equal(t, 1, stats.NearIdentical)
	assert.Equal(t, 1, stats.BelowWeak)
}

func TestLoadAllRecordsOrdered(t *testing.T) {
	db, err := InitDatabase(":memory:")
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, StorePairResult(db, sampleRecord(name)))
	}

	records, err := LoadAllRecords(db)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, "mid", records[1].Name)
	assert.Equal(t, "zeta", records[2].Name)
}
