package comparator

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// HashDistanceResult holds the Hamming distances between the perceptual and
// difference hashes of two images. Lower means more similar; 0 means the
// coarse visual signatures are identical.
type HashDistanceResult struct {
	PHashDistance int `json:"phash_distance"`
	DHashDistance int `json:"dhash_distance"`
}

// HashDistances computes pHash and dHash distances between two image files.
// It deliberately reads the original files rather than the cropped or
// flattened versions, so the whole-image signatures are independent of any
// alignment decision.
func HashDistances(pathA, pathB string) (HashDistanceResult, error) {
	imgA, err := decodeImageFile(pathA)
	if err != nil {
		return HashDistanceResult{}, err
	}
	imgB, err := decodeImageFile(pathB)
	if err != nil {
		return HashDistanceResult{}, err
	}

	pHashA, err := goimagehash.PerceptionHash(imgA)
	if err != nil {
		return HashDistanceResult{}, fmt.Errorf("perception hash for %s: %w", pathA, err)
	}
	pHashB, err := goimagehash.PerceptionHash(imgB)
	if err != nil {
		return HashDistanceResult{}, fmt.Errorf("perception hash for %s: %w", pathB, err)
	}
	pDist, err := pHashA.Distance(pHashB)
	if err != nil {
		return HashDistanceResult{}, fmt.Errorf("perception hash distance: %w", err)
	}

	dHashA, err := goimagehash.DifferenceHash(imgA)
	if err != nil {
		return HashDistanceResult{}, fmt.Errorf("difference hash for %s: %w", pathA, err)
	}
	dHashB, err := goimagehash.DifferenceHash(imgB)
	if err != nil {
		return HashDistanceResult{}, fmt.Errorf("difference hash for %s: %w", pathB, err)
	}
	dDist, err := dHashA.Distance(dHashB)
	if err != nil {
		return HashDistanceResult{}, fmt.Errorf("difference hash distance: %w", err)
	}

	return HashDistanceResult{PHashDistance: pDist, DHashDistance: dDist}, nil
}

// decodeImageFile reads an image through the Go decoding stack, mapping
// failures onto the engine error taxonomy.
func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, notFoundError(path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, decodeError(path)
	}
	return img, nil
}
