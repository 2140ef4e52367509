// Package cache provides centralized cache directory resolution for fit.
//
// Priority order: --cache-dir flag > FIT_CACHE_DIR env > ~/.fit default.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var global struct {
	cacheDir string
}

// SetCacheDir sets an override for the cache directory.
// This is typically called when parsing the --cache-dir flag.
func SetCacheDir(dir string) {
	global.cacheDir = dir
}

// Root returns the cache root directory.
// Priority: --cache-dir flag > FIT_CACHE_DIR env > ~/.fit default.
func Root() (string, error) {
	if global.cacheDir != "" {
		return global.cacheDir, nil
	}

	if envDir := os.Getenv("FIT_CACHE_DIR"); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".fit"), nil
}

// PreviewDir returns the directory for rendered scene previews, creating it
// if needed. Returns: <cache_root>/previews
func PreviewDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(root, "previews")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create preview directory %s: %w", dir, err)
	}
	return dir, nil
}

// PreviewPath returns the preview file path for a scene, named after the
// scene file with the render extension. "banner.yaml" renders to
// <cache_root>/previews/banner.png.
func PreviewPath(scenePath, ext string) (string, error) {
	dir, err := PreviewDir()
	if err != nil {
		return "", err
	}

	base := filepath.Base(scenePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"."+strings.TrimPrefix(ext, ".")), nil
}
