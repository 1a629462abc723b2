package comparator

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure modes a comparison can hit before any
// pixels are touched. Callers match them with errors.Is.
var (
	// ErrNotFound indicates an input path did not resolve to a readable file.
	ErrNotFound = errors.New("image not found")

	// ErrDecode indicates a file was read but could not be parsed as a
	// raster image.
	ErrDecode = errors.New("image decode failed")
)

func notFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

func decodeError(path string) error {
	return fmt.Errorf("%w: %s", ErrDecode, path)
}
