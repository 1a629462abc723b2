package comparator

import (
	"fmt"

	"gocv.io/x/gocv"
)

// maxMSE is the largest mean squared error two 8-bit 3-channel images can
// produce (pure black against pure white on every channel).
const maxMSE = 255.0 * 255.0 * 3.0

// Composite weights. Structural agreement dominates, raw pixel agreement and
// color distribution follow. Changing these breaks comparability with
// previously recorded scores.
const (
	weightSSIM      = 0.5
	weightPixel     = 0.3
	weightHistogram = 0.2
)

// MetricScores holds the per-metric output of one aligned comparison.
type MetricScores struct {
	PixelSimilarity      float64 `json:"pixel_similarity"`
	SSIM                 float64 `json:"ssim"`
	HistogramSimilarity  float64 `json:"histogram_similarity"`
	MSE                  float64 `json:"mse"`
	PerceptualSimilarity float64 `json:"perceptual_similarity"`
}

// Score computes every pixel metric plus the weighted composite for an
// aligned pair. The pair's images must share dimensions; the aligner
// guarantees this, but the check stays because mismatched inputs would
// silently produce garbage.
func Score(pair AlignedPair) (MetricScores, error) {
	if pair.A.Cols() != pair.B.Cols() || pair.A.Rows() != pair.B.Rows() {
		return MetricScores{}, fmt.Errorf("aligned images differ in size: %dx%d vs %dx%d",
			pair.A.Cols(), pair.A.Rows(), pair.B.Cols(), pair.B.Rows())
	}

	mse := meanSquaredError(pair.A, pair.B)
	pixel := 1.0 - mse/maxMSE
	ssim := structuralSimilarity(pair.A, pair.B)
	hist := histogramSimilarity(pair.A, pair.B)

	return MetricScores{
		PixelSimilarity:      pixel,
		SSIM:                 ssim,
		HistogramSimilarity:  hist,
		MSE:                  mse,
		PerceptualSimilarity: weightSSIM*ssim + weightPixel*pixel + weightHistogram*hist,
	}, nil
}

// meanSquaredError sums squared per-channel differences across the three
// channels and averages over pixels, so a maximally different pair (pure
// black vs pure white) scores exactly maxMSE.
func meanSquaredError(a, b gocv.Mat) float64 {
	fa := gocv.NewMat()
	fb := gocv.NewMat()
	defer fa.Close()
	defer fb.Close()
	a.ConvertTo(&fa, gocv.MatTypeCV32F)
	b.ConvertTo(&fb, gocv.MatTypeCV32F)

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.Subtract(fa, fb, &diff)
	gocv.Multiply(diff, diff, &diff)

	mean := diff.Mean()
	return mean.Val1 + mean.Val2 + mean.Val3
}

// histogramSimilarity computes a 256-bin histogram per color channel,
// normalizes each to unit sum, and averages the Pearson correlations across
// the three channels. Anti-correlation counts as zero similarity rather than
// negative.
func histogramSimilarity(a, b gocv.Mat) float64 {
	mask := gocv.NewMat()
	defer mask.Close()

	var total float64
	for ch := 0; ch < 3; ch++ {
		histA := gocv.NewMat()
		histB := gocv.NewMat()

		gocv.CalcHist([]gocv.Mat{a}, []int{ch}, mask, &histA, []int{256}, []float64{0, 256}, false)
		gocv.CalcHist([]gocv.Mat{b}, []int{ch}, mask, &histB, []int{256}, []float64{0, 256}, false)
		gocv.Normalize(histA, &histA, 1, 0, gocv.NormL1)
		gocv.Normalize(histB, &histB, 1, 0, gocv.NormL1)

		corr := float64(gocv.CompareHist(histA, histB, gocv.HistCmpCorrel))
		if corr > 0 {
			total += corr
		}

		histA.Close()
		histB.Close()
	}
	return total / 3.0
}
