package database

import (
	"database/sql"
	"fmt"
	"time"

	"iconcompare/types"

	_ "github.com/mattn/go-sqlite3"
)

// InitDatabase opens the result store and creates the schema if needed.
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS comparisons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		large_path TEXT NOT NULL,
		small_path TEXT NOT NULL,
		large_modified_at TEXT,
		small_modified_at TEXT,
		perceptual_similarity REAL,
		pixel_similarity REAL,
		ssim REAL,
		histogram_similarity REAL,
		mse REAL,
		phash_distance INTEGER,
		dhash_distance INTEGER,
		aligned_width INTEGER,
		aligned_height INTEGER,
		large_content_w INTEGER,
		large_content_h INTEGER,
		small_content_w INTEGER,
		small_content_h INTEGER,
		verdict TEXT,
		compared_at TEXT,
		UNIQUE(large_path, small_path)
	);
	CREATE INDEX IF NOT EXISTS idx_name ON comparisons(name);
	CREATE INDEX IF NOT EXISTS idx_perceptual ON comparisons(perceptual_similarity);`

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema: %w", err)
	}

	return db, nil
}

// OpenDatabase opens an existing result store.
func OpenDatabase(dbPath string) (*sql.DB, error) {
	return sql.Open("sqlite3", dbPath)
}

// CheckPairExists reports whether a result for this pair is already stored,
// and if so the modification times it was computed against.
func CheckPairExists(db *sql.DB, largePath, smallPath string) (bool, string, string, error) {
	var largeMod, smallMod string
	err := db.QueryRow(
		"SELECT large_modified_at, small_modified_at FROM comparisons WHERE large_path = ? AND small_path = ?",
		largePath, smallPath).Scan(&largeMod, &smallMod)
	if err == sql.ErrNoRows {
		return false, "", "", nil
	}
	if err != nil {
		return false, "", "", fmt.Errorf("database error for %s vs %s: %w", largePath, smallPath, err)
	}
	return true, largeMod, smallMod, nil
}

// StorePairResult upserts one comparison outcome.
func StorePairResult(db *sql.DB, rec types.PairRecord) error {
	stmt, err := db.Prepare(`
		INSERT OR REPLACE INTO comparisons (
			name, large_path, small_path, large_modified_at, small_modified_at,
			perceptual_similarity, pixel_similarity, ssim, histogram_similarity, mse,
			phash_distance, dhash_distance, aligned_width, aligned_height,
			large_content_w, large_content_h, small_content_w, small_content_h,
			verdict, compared_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("cannot prepare statement for %s: %w", rec.Name, err)
	}
	defer stmt.Close()

	if rec.ComparedAt == "" {
		rec.ComparedAt = time.Now().Format(time.RFC3339)
	}

	_, err = stmt.Exec(
		rec.Name, rec.LargePath, rec.SmallPath, rec.LargeModifiedAt, rec.SmallModifiedAt,
		rec.Perceptual, rec.Pixel, rec.SSIM, rec.Histogram, rec.MSE,
		rec.PHashDistance, rec.DHashDistance, rec.AlignedWidth, rec.AlignedHeight,
		rec.LargeContentW, rec.LargeContentH, rec.SmallContentW, rec.SmallContentH,
		rec.Verdict, rec.ComparedAt,
	)
	if err != nil {
		return fmt.Errorf("cannot store result for %s: %w", rec.Name, err)
	}
	return nil
}

// LoadPairRecord fetches the stored result for one pair.
func LoadPairRecord(db *sql.DB, largePath, smallPath string) (*types.PairRecord, error) {
	var rec types.PairRecord
	err := db.QueryRow(`
		SELECT id, name, large_path, small_path, large_modified_at, small_modified_at,
			perceptual_similarity, pixel_similarity, ssim, histogram_similarity, mse,
			phash_distance, dhash_distance, aligned_width, aligned_height,
			large_content_w, large_content_h, small_content_w, small_content_h,
			verdict, compared_at
		FROM comparisons WHERE large_path = ? AND small_path = ?`,
		largePath, smallPath).Scan(
		&rec.ID, &rec.Name, &rec.LargePath, &rec.SmallPath, &rec.LargeModifiedAt, &rec.SmallModifiedAt,
		&rec.Perceptual, &rec.Pixel, &rec.SSIM, &rec.Histogram, &rec.MSE,
		&rec.PHashDistance, &rec.DHashDistance, &rec.AlignedWidth, &rec.AlignedHeight,
		&rec.LargeContentW, &rec.LargeContentH, &rec.SmallContentW, &rec.SmallContentH,
		&rec.Verdict, &rec.ComparedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot load result for %s vs %s: %w", largePath, smallPath, err)
	}
	return &rec, nil
}

// LoadAllRecords returns every stored result ordered by name, for report
// rendering.
func LoadAllRecords(db *sql.DB) ([]types.PairRecord, error) {
	rows, err := db.Query(`
		SELECT id, name, large_path, small_path, large_modified_at, small_modified_at,
			perceptual_similarity, pixel_similarity, ssim, histogram_similarity, mse,
			phash_distance, dhash_distance, aligned_width, aligned_height,
			large_content_w, large_content_h, small_content_w, small_content_h,
			verdict, compared_at
		FROM comparisons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("database query error: %w", err)
	}
	defer rows.Close()

	var records []types.PairRecord
	for rows.Next() {
		var rec types.PairRecord
		err := rows.Scan(
			&rec.ID, &rec.Name, &rec.LargePath, &rec.SmallPath, &rec.LargeModifiedAt, &rec.SmallModifiedAt,
			&rec.Perceptual, &rec.Pixel, &rec.SSIM, &rec.Histogram, &rec.MSE,
			&rec.PHashDistance, &rec.DHashDistance, &rec.AlignedWidth, &rec.AlignedHeight,
			&rec.LargeContentW, &rec.LargeContentH, &rec.SmallContentW, &rec.SmallContentH,
			&rec.Verdict, &rec.ComparedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// BatchStats contains summary statistics over the stored results.
type BatchStats struct {
	TotalPairs    int
	NearIdentical int
	BelowWeak     int
}

// GetBatchStats summarizes the result store: total pairs, pairs scoring in
// the near-identical band, and pairs below the weak-similarity floor.
func GetBatchStats(db *sql.DB) (*BatchStats, error) {
	var stats BatchStats

	if err := db.QueryRow("SELECT COUNT(*) FROM comparisons").Scan(&stats.TotalPairs); err != nil {
		return nil, fmt.Errorf("failed to count pairs: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM comparisons WHERE perceptual_similarity > 0.95").Scan(&stats.NearIdentical); err != nil {
		return nil, fmt.Errorf("failed to count near-identical pairs: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM comparisons WHERE perceptual_similarity <= 0.70").Scan(&stats.BelowWeak); err != nil {
		return nil, fmt.Errorf("failed to count dissimilar pairs: %w", err)
	}

	return &stats, nil
}
