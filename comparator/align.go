package comparator

import (
	"image"

	"gocv.io/x/gocv"
)

// backdropValue is the opaque background transparent pixels are composited
// onto before any pixel metric runs. Icons are authored against light UI
// panels, so white is the conventional choice.
const backdropValue = 255

// AlignedPair holds two flattened BGR images sharing identical dimensions,
// ready for the metric suite. Both Mats are owned by the pair.
type AlignedPair struct {
	A      gocv.Mat
	B      gocv.Mat
	Width  int
	Height int
}

// Close releases both aligned buffers.
func (p *AlignedPair) Close() {
	p.A.Close()
	p.B.Close()
}

// Align flattens both content regions over the backdrop and reconciles them
// to a shared resolution. Whenever the dimensions differ, the region with
// the larger pixel area is resampled down to the smaller one's exact width
// and height with Lanczos interpolation; the smaller region is never
// upsampled, so no detail is fabricated. Equal-area regions with different
// shapes resample the second region onto the first's shape.
func Align(a, b ContentRegion) AlignedPair {
	flatA := flatten(a)
	flatB := flatten(b)

	if flatA.Cols() != flatB.Cols() || flatA.Rows() != flatB.Rows() {
		areaA := flatA.Cols() * flatA.Rows()
		areaB := flatB.Cols() * flatB.Rows()
		if areaA > areaB {
			flatA = resizeTo(flatA, flatB.Cols(), flatB.Rows())
		} else {
			flatB = resizeTo(flatB, flatA.Cols(), flatA.Rows())
		}
	}

	return AlignedPair{
		A:      flatA,
		B:      flatB,
		Width:  flatA.Cols(),
		Height: flatA.Rows(),
	}
}

// flatten composites a transparent region over the opaque backdrop with
// linear alpha blending, producing a fresh 3-channel image. Opaque regions
// are cloned as-is.
func flatten(r ContentRegion) gocv.Mat {
	if r.Format == FormatOpaque {
		return r.Mat.Clone()
	}

	out := gocv.NewMatWithSize(r.Height, r.Width, gocv.MatTypeCV8UC3)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			alpha := float64(r.Mat.GetUCharAt(y, x*4+3)) / 255.0
			for c := 0; c < 3; c++ {
				v := float64(r.Mat.GetUCharAt(y, x*4+c))*alpha +
					backdropValue*(1.0-alpha)
				out.SetUCharAt(y, x*3+c, uint8(v+0.5))
			}
		}
	}
	return out
}

// resizeTo downsamples src to the exact target dimensions and releases the
// original buffer.
func resizeTo(src gocv.Mat, width, height int) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationLanczos4)
	src.Close()
	return dst
}
