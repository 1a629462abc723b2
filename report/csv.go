// Package report renders stored comparison results into a CSV file, one row
// per icon pair with every metric the engine produces.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"iconcompare/types"
	"iconcompare/utils"
)

var csvHeader = []string{
	"name", "large_path", "small_path",
	"perceptual_similarity", "ssim", "pixel_similarity", "histogram_similarity", "mse",
	"phash_distance", "dhash_distance",
	"large_content_size", "small_content_size", "aligned_size",
	"verdict", "compared_at",
}

// WriteCSV writes all records to path, overwriting any existing file.
func WriteCSV(path string, records []types.PairRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write report header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Name,
			rec.LargePath,
			rec.SmallPath,
			formatScore(rec.Perceptual),
			formatScore(rec.SSIM),
			formatScore(rec.Pixel),
			formatScore(rec.Histogram),
			strconv.FormatFloat(rec.MSE, 'f', 2, 64),
			strconv.Itoa(rec.PHashDistance),
			strconv.Itoa(rec.DHashDistance),
			utils.FormatSize(rec.LargeContentW, rec.LargeContentH),
			utils.FormatSize(rec.SmallContentW, rec.SmallContentH),
			utils.FormatSize(rec.AlignedWidth, rec.AlignedHeight),
			rec.Verdict,
			rec.ComparedAt,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("cannot write report row for %s: %w", rec.Name, err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
