package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaultDatabasePath returns the default location for the result store,
// next to the executable.
func GetDefaultDatabasePath() string {
	exePath, err := os.Executable()
	if err != nil {
		return "comparisons.db"
	}
	return filepath.Join(filepath.Dir(exePath), "comparisons.db")
}

// FormatSize renders a width/height pair the way reports display it.
func FormatSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// BaseName returns the file name without directory or extension, the key
// icons are paired by.
func BaseName(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(filepath.Ext(name))]
}
