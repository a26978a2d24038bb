package buildpipeline

import (
	"path/filepath"
	"slices"
	"strings"
)

// displayName is file relative to baseDir with forward slashes, or the
// cleaned file itself when it lies outside baseDir.
func displayName(file, baseDir string) string {
	path := filepath.Clean(file)
	if base := strings.TrimSpace(baseDir); base != "" {
		absBase, errBase := filepath.Abs(base)
		absPath, errPath := filepath.Abs(path)
		if errBase == nil && errPath == nil {
			path = absPath
			if rel, err := filepath.Rel(absBase, absPath); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
	}
	return filepath.ToSlash(path)
}

// DisplayFiles maps files to the names used in progress events, sorted and
// without duplicates.
func DisplayFiles(files []string, baseDir string) []string {
	names := make([]string, 0, len(files))
	for _, file := range files {
		if file != "" {
			names = append(names, displayName(file, baseDir))
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
