package comparator

import (
	"image"

	"gocv.io/x/gocv"
)

// Stabilization constants from the original SSIM formulation
// (Wang et al. 2004): C1 = (0.01*255)^2, C2 = (0.03*255)^2.
const (
	ssimC1 = 6.5025
	ssimC2 = 58.5225
)

// structuralSimilarity computes the mean SSIM index over an 11x11 Gaussian
// window (sigma 1.5) on grayscale conversions of the two images. Output is
// in [-1, 1]; identical images score exactly 1.
func structuralSimilarity(a, b gocv.Mat) float64 {
	i1 := grayFloat(a)
	i2 := grayFloat(b)
	defer i1.Close()
	defer i2.Close()

	mu1 := gaussian(i1)
	mu2 := gaussian(i2)
	defer mu1.Close()
	defer mu2.Close()

	mu1Sq := multiplied(mu1, mu1)
	mu2Sq := multiplied(mu2, mu2)
	mu1Mu2 := multiplied(mu1, mu2)
	defer mu1Sq.Close()
	defer mu2Sq.Close()
	defer mu1Mu2.Close()

	// sigma_x^2 = E[x^2] - mu_x^2, windowed.
	sigma1Sq := windowedMoment(i1, i1, mu1Sq)
	sigma2Sq := windowedMoment(i2, i2, mu2Sq)
	sigma12 := windowedMoment(i1, i2, mu1Mu2)
	defer sigma1Sq.Close()
	defer sigma2Sq.Close()
	defer sigma12.Close()

	// numerator: (2*mu1*mu2 + C1) * (2*sigma12 + C2)
	t1 := gocv.NewMat()
	defer t1.Close()
	gocv.AddWeighted(mu1Mu2, 2, mu1Mu2, 0, ssimC1, &t1)
	t2 := gocv.NewMat()
	defer t2.Close()
	gocv.AddWeighted(sigma12, 2, sigma12, 0, ssimC2, &t2)
	num := multiplied(t1, t2)
	defer num.Close()

	// denominator: (mu1^2 + mu2^2 + C1) * (sigma1^2 + sigma2^2 + C2)
	t3 := gocv.NewMat()
	defer t3.Close()
	gocv.AddWeighted(mu1Sq, 1, mu2Sq, 1, ssimC1, &t3)
	t4 := gocv.NewMat()
	defer t4.Close()
	gocv.AddWeighted(sigma1Sq, 1, sigma2Sq, 1, ssimC2, &t4)
	den := multiplied(t3, t4)
	defer den.Close()

	ssimMap := gocv.NewMat()
	defer ssimMap.Close()
	gocv.Divide(num, den, &ssimMap)

	return ssimMap.Mean().Val1
}

// grayFloat converts a BGR image to single-channel 32-bit float grayscale.
func grayFloat(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	f := gocv.NewMat()
	gray.ConvertTo(&f, gocv.MatTypeCV32F)
	return f
}

// gaussian applies the SSIM window filter.
func gaussian(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.GaussianBlur(src, &dst, image.Pt(11, 11), 1.5, 1.5, gocv.BorderDefault)
	return dst
}

// multiplied returns the element-wise product of two mats.
func multiplied(a, b gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Multiply(a, b, &dst)
	return dst
}

// windowedMoment computes gaussian(x*y) - muProduct, the windowed second
// moment used for the variance and covariance terms.
func windowedMoment(x, y, muProduct gocv.Mat) gocv.Mat {
	xy := multiplied(x, y)
	defer xy.Close()

	blurred := gaussian(xy)
	dst := gocv.NewMat()
	gocv.Subtract(blurred, muProduct, &dst)
	blurred.Close()
	return dst
}
