package comparator

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
	"golang.org/x/image/webp"
)

// PixelFormat tags how a source image stores color. It is resolved exactly
// once, at load time, so the rest of the pipeline never has to branch on
// channel counts.
type PixelFormat int

const (
	// FormatOpaque is a 3-channel BGR image with no transparency.
	FormatOpaque PixelFormat = iota
	// FormatTransparent is a 4-channel BGRA image.
	FormatTransparent
)

// SourceImage is a decoded image together with its resolved pixel format.
// The Mat is owned by the SourceImage and must be released with Close.
type SourceImage struct {
	Mat    gocv.Mat
	Format PixelFormat
}

// Close releases the underlying pixel buffer.
func (s *SourceImage) Close() {
	s.Mat.Close()
}

// Width returns the image width in pixels.
func (s *SourceImage) Width() int { return s.Mat.Cols() }

// Height returns the image height in pixels.
func (s *SourceImage) Height() int { return s.Mat.Rows() }

// ImageLoader loads a specific family of image formats into a SourceImage.
type ImageLoader interface {
	CanLoad(path string) bool
	LoadImage(path string) (SourceImage, error)
}

// DefaultImageLoader handles the formats OpenCV decodes directly.
type DefaultImageLoader struct{}

func (l *DefaultImageLoader) CanLoad(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		_, err := os.Stat(path)
		return err == nil
	}
	return false
}

func (l *DefaultImageLoader) LoadImage(path string) (SourceImage, error) {
	// IMReadUnchanged keeps the alpha channel when the file carries one.
	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	if mat.Empty() {
		return SourceImage{}, decodeError(path)
	}
	return normalizeMat(mat, path)
}

// WebpImageLoader decodes WebP through the Go image stack and converts to a
// Mat. Not every OpenCV build ships WebP support, so this path is kept
// separate from the default loader.
type WebpImageLoader struct{}

func (l *WebpImageLoader) CanLoad(path string) bool {
	if strings.ToLower(filepath.Ext(path)) != ".webp" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (l *WebpImageLoader) LoadImage(path string) (SourceImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return SourceImage{}, notFoundError(path)
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		return SourceImage{}, decodeError(path)
	}
	return matFromGoImage(img)
}

// ImageLoaderRegistry holds the available loaders in priority order.
type ImageLoaderRegistry struct {
	loaders []ImageLoader
}

// NewImageLoaderRegistry creates a registry with the default loaders.
func NewImageLoaderRegistry() *ImageLoaderRegistry {
	return &ImageLoaderRegistry{
		loaders: []ImageLoader{
			&DefaultImageLoader{},
			&WebpImageLoader{},
		},
	}
}

// RegisterLoader adds a custom loader to the registry.
func (r *ImageLoaderRegistry) RegisterLoader(loader ImageLoader) {
	r.loaders = append(r.loaders, loader)
}

// CanLoadFile reports whether any registered loader handles the given file.
func (r *ImageLoaderRegistry) CanLoadFile(path string) bool {
	for _, loader := range r.loaders {
		if loader.CanLoad(path) {
			return true
		}
	}
	return false
}

// LoadImage loads an image using the first loader that accepts the path.
func (r *ImageLoaderRegistry) LoadImage(path string) (SourceImage, error) {
	for _, loader := range r.loaders {
		if loader.CanLoad(path) {
			return loader.LoadImage(path)
		}
	}
	return SourceImage{}, decodeError(path)
}

// LoadImage loads a single image with the default registry.
func LoadImage(path string) (SourceImage, error) {
	registry := NewImageLoaderRegistry()
	return registry.LoadImage(path)
}

// normalizeMat maps whatever channel layout the decoder produced onto the
// two supported formats. Grayscale is promoted to BGR.
func normalizeMat(mat gocv.Mat, path string) (SourceImage, error) {
	switch mat.Channels() {
	case 1:
		bgr := gocv.NewMat()
		gocv.CvtColor(mat, &bgr, gocv.ColorGrayToBGR)
		mat.Close()
		return SourceImage{Mat: bgr, Format: FormatOpaque}, nil
	case 3:
		return SourceImage{Mat: mat, Format: FormatOpaque}, nil
	case 4:
		return SourceImage{Mat: mat, Format: FormatTransparent}, nil
	}
	mat.Close()
	return SourceImage{}, decodeError(path)
}

// matFromGoImage converts a decoded Go image into a BGR or BGRA Mat,
// depending on whether the image carries an alpha channel.
func matFromGoImage(img image.Image) (SourceImage, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	opaque := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}

	if opaque {
		mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
				mat.SetUCharAt(y, x*3+0, uint8(b>>8))
				mat.SetUCharAt(y, x*3+1, uint8(g>>8))
				mat.SetUCharAt(y, x*3+2, uint8(r>>8))
			}
		}
		return SourceImage{Mat: mat, Format: FormatOpaque}, nil
	}

	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			mat.SetUCharAt(y, x*4+0, c.B)
			mat.SetUCharAt(y, x*4+1, c.G)
			mat.SetUCharAt(y, x*4+2, c.R)
			mat.SetUCharAt(y, x*4+3, c.A)
		}
	}
	return SourceImage{Mat: mat, Format: FormatTransparent}, nil
}
