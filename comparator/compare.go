package comparator

import (
	"os"

	"iconcompare/logging"
)

// Options configures a single comparison.
type Options struct {
	// Verbose adds the human-readable verdict to the report.
	Verbose bool
	// Logger receives per-stage debug output. Nil disables logging; the
	// engine never writes to any process-wide sink.
	Logger *logging.Logger
}

// Report is the full structured result of comparing two images. All numeric
// fields are finite; similarity fields other than SSIM are in [0, 1].
type Report struct {
	PerceptualSimilarity float64 `json:"perceptual_similarity"`
	PixelSimilarity      float64 `json:"pixel_similarity"`
	SSIM                 float64 `json:"ssim"`
	HistogramSimilarity  float64 `json:"histogram_similarity"`
	MSE                  float64 `json:"mse"`
	PHashDistance        int     `json:"phash_distance"`
	DHashDistance        int     `json:"dhash_distance"`
	AlignedWidth         int     `json:"aligned_width"`
	AlignedHeight        int     `json:"aligned_height"`
	ContentWidthA        int     `json:"content_width_a"`
	ContentHeightA       int     `json:"content_height_a"`
	ContentWidthB        int     `json:"content_width_b"`
	ContentHeightB       int     `json:"content_height_b"`
	Verdict              string  `json:"verdict,omitempty"`
}

// Compare runs the full pipeline on two image files: content isolation,
// alignment, the pixel metric suite, and the raw-image hash distances. Each
// call is independent and allocates only transient buffers, so Compare is
// safe to invoke concurrently across pairs.
func Compare(pathA, pathB string, opts Options) (*Report, error) {
	if _, err := os.Stat(pathA); err != nil {
		return nil, notFoundError(pathA)
	}
	if _, err := os.Stat(pathB); err != nil {
		return nil, notFoundError(pathB)
	}

	registry := NewImageLoaderRegistry()

	srcA, err := registry.LoadImage(pathA)
	if err != nil {
		return nil, err
	}
	defer srcA.Close()

	srcB, err := registry.LoadImage(pathB)
	if err != nil {
		return nil, err
	}
	defer srcB.Close()

	regionA := IsolateContent(srcA)
	regionB := IsolateContent(srcB)
	defer regionA.Close()
	defer regionB.Close()

	opts.Logger.Debugf("content A: %dx%d at (%d,%d) of %dx%d, content B: %dx%d at (%d,%d) of %dx%d",
		regionA.Width, regionA.Height, regionA.X, regionA.Y, srcA.Width(), srcA.Height(),
		regionB.Width, regionB.Height, regionB.X, regionB.Y, srcB.Width(), srcB.Height())

	pair := Align(regionA, regionB)
	defer pair.Close()

	scores, err := Score(pair)
	if err != nil {
		return nil, err
	}

	hashes, err := HashDistances(pathA, pathB)
	if err != nil {
		return nil, err
	}

	report := &Report{
		PerceptualSimilarity: scores.PerceptualSimilarity,
		PixelSimilarity:      scores.PixelSimilarity,
		SSIM:                 scores.SSIM,
		HistogramSimilarity:  scores.HistogramSimilarity,
		MSE:                  scores.MSE,
		PHashDistance:        hashes.PHashDistance,
		DHashDistance:        hashes.DHashDistance,
		AlignedWidth:         pair.Width,
		AlignedHeight:        pair.Height,
		ContentWidthA:        regionA.Width,
		ContentHeightA:       regionA.Height,
		ContentWidthB:        regionB.Width,
		ContentHeightB:       regionB.Height,
	}

	if opts.Verbose {
		report.Verdict = VerdictFor(report.PerceptualSimilarity)
	}

	opts.Logger.Debugf("compared %s vs %s: perceptual=%.4f ssim=%.4f pixel=%.4f hist=%.4f mse=%.2f phash=%d dhash=%d",
		pathA, pathB, report.PerceptualSimilarity, report.SSIM, report.PixelSimilarity,
		report.HistogramSimilarity, report.MSE, report.PHashDistance, report.DHashDistance)

	return report, nil
}

// VerdictFor maps a composite score onto the qualitative bands used in
// human-facing output. The bands are advisory only and not part of the
// numeric contract.
func VerdictFor(score float64) string {
	switch {
	case score > 0.95:
		return "near-identical"
	case score > 0.90:
		return "highly similar"
	case score > 0.80:
		return "moderately similar"
	case score > 0.70:
		return "weakly similar"
	default:
		return "dissimilar"
	}
}
