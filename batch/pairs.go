package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"iconcompare/types"
	"iconcompare/utils"
)

// IsImageFile reports whether a file extension belongs to a supported icon
// format.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// IndexImages recursively indexes the image files under root, keyed by base
// name. When two files share a base name, the later one is additionally
// keyed by its slash-separated relative path so it stays addressable.
func IndexImages(root string) (map[string]string, error) {
	index := make(map[string]string)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !IsImageFile(path) {
			return nil
		}

		key := utils.BaseName(path)
		if _, taken := index[key]; taken {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			key = filepath.ToSlash(rel)
		}
		index[key] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// MatchPairs joins a large-icon index with a small-icon index on their keys,
// returning the matched pairs sorted by name. Entries present on only one
// side are skipped; a missing rendition is not an error at pairing time.
func MatchPairs(large, small map[string]string) []types.IconPair {
	var pairs []types.IconPair
	for name, largePath := range large {
		smallPath, ok := small[name]
		if !ok {
			continue
		}
		pairs = append(pairs, types.IconPair{
			Name:      name,
			LargePath: largePath,
			SmallPath: smallPath,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Name < pairs[j].Name
	})
	return pairs
}
