package comparator

import (
	"image"

	"gocv.io/x/gocv"
)

// visibilityThreshold is the alpha value a pixel must exceed to count as
// content. The margin above zero ignores near-invisible anti-aliasing
// fringes around icon edges.
const visibilityThreshold = 10

// ContentRegion is the tightest bounding box of visible pixels in a source
// image, together with the cropped pixels themselves. The Mat is a clone and
// owned by the region.
type ContentRegion struct {
	X      int
	Y      int
	Width  int
	Height int
	Mat    gocv.Mat
	Format PixelFormat
}

// Close releases the cropped pixel buffer.
func (r *ContentRegion) Close() {
	r.Mat.Close()
}

// Area returns the region's pixel area.
func (r *ContentRegion) Area() int {
	return r.Width * r.Height
}

// IsolateContent finds the minimal bounding box of visible pixels and
// returns it as a cropped region. An opaque image is visible everywhere, so
// its region is the full image. A transparent image with no pixel above the
// visibility threshold also falls back to the full image, so a fully
// invisible icon still compares as a whole instead of producing a zero-sized
// buffer. This stage never fails.
func IsolateContent(src SourceImage) ContentRegion {
	width, height := src.Width(), src.Height()

	if src.Format == FormatOpaque {
		return ContentRegion{
			Width:  width,
			Height: height,
			Mat:    src.Mat.Clone(),
			Format: src.Format,
		}
	}

	minX, minY := width, height
	maxX, maxY := -1, -1
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if src.Mat.GetUCharAt(y, x*4+3) <= visibilityThreshold {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		// Nothing visible at all; treat the whole image as content.
		return ContentRegion{
			Width:  width,
			Height: height,
			Mat:    src.Mat.Clone(),
			Format: src.Format,
		}
	}

	view := src.Mat.Region(image.Rect(minX, minY, maxX+1, maxY+1))
	defer view.Close()

	return ContentRegion{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
		Mat:    view.Clone(),
		Format: src.Format,
	}
}
