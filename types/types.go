package types

// IconPair is a matched large/small icon rendition pair found by the batch
// indexer.
type IconPair struct {
	Name      string `json:"name"`
	LargePath string `json:"large_path"`
	SmallPath string `json:"small_path"`
}

// PairRecord is one stored comparison outcome: the pair identity, the mod
// times the result was computed against, and every metric from the report.
type PairRecord struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	LargePath       string  `json:"large_path"`
	SmallPath       string  `json:"small_path"`
	LargeModifiedAt string  `json:"large_modified_at"`
	SmallModifiedAt string  `json:"small_modified_at"`
	Perceptual      float64 `json:"perceptual_similarity"`
	Pixel           float64 `json:"pixel_similarity"`
	SSIM            float64 `json:"ssim"`
	Histogram       float64 `json:"histogram_similarity"`
	MSE             float64 `json:"mse"`
	PHashDistance   int     `json:"phash_distance"`
	DHashDistance   int     `json:"dhash_distance"`
	AlignedWidth    int     `json:"aligned_width"`
	AlignedHeight   int     `json:"aligned_height"`
	LargeContentW   int     `json:"large_content_width"`
	LargeContentH   int     `json:"large_content_height"`
	SmallContentW   int     `json:"small_content_width"`
	SmallContentH   int     `json:"small_content_height"`
	Verdict         string  `json:"verdict"`
	ComparedAt      string  `json:"compared_at"`
}
