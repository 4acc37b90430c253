package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindFileInSourceDirs attempts to locate a file, first checking whether it
// exists as given, then searching the provided source directories. Report
// paths often come from another machine, so besides a direct join every
// suffix of the path is probed against each directory.
func FindFileInSourceDirs(relativePath string, sourceDirs []string) (string, error) {
	if filepath.IsAbs(relativePath) {
		if _, err := os.Stat(relativePath); err == nil {
			return relativePath, nil
		}
	}

	cleaned := filepath.Clean(normalizeSeparators(relativePath))

	for _, dir := range sourceDirs {
		absPath := filepath.Join(filepath.Clean(dir), cleaned)
		if _, err := os.Stat(absPath); err == nil {
			return absPath, nil
		}

		pathParts := strings.Split(cleaned, string(os.PathSeparator))
		for i := 1; i < len(pathParts); i++ {
			suffixToTry := filepath.Join(pathParts[i:]...)
			potentialPath := filepath.Join(filepath.Clean(dir), suffixToTry)
			if _, err := os.Stat(potentialPath); err == nil {
				return potentialPath, nil
			}
		}
	}
	return "", fmt.Errorf("file %q not found in any source directory (%v) or as absolute path", relativePath, sourceDirs)
}

// normalizeSeparators rewrites Windows-style separators so that report paths
// recorded on Windows resolve on other platforms.
func normalizeSeparators(path string) string {
	if os.PathSeparator == '\\' {
		return path
	}
	// Drop a drive letter prefix like "C:" before converting separators.
	if len(path) >= 2 && path[1] == ':' {
		path = path[2:]
	}
	return strings.ReplaceAll(path, "\\", string(os.PathSeparator))
}
