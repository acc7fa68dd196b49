// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// dataMarkers are files whose presence identifies a directory as a
// registrar data directory.
var dataMarkers = []string{"courses.csv", "students.csv", "registrar.db"}

// ResolveDataDir resolves the .registrar data directory path from user input.
// It normalizes the input, accepting either a project dir or the data dir
// itself, and follows redirect files so shared checkouts can point at a
// single data location.
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.registrar"
//   - "/path/to/project/.registrar" -> "/path/to/project/.registrar"
//   - "/path/to/data" (containing courses.csv or registrar.db) -> "/path/to/data"
//   - "" -> "./.registrar"
//
// Redirect handling:
//   - If .registrar/redirect exists, follows it to the actual data location
func ResolveDataDir(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	// If path already ends with .registrar, use it directly
	if filepath.Base(path) == ".registrar" {
		return followRedirect(path)
	}

	// If path contains data files directly, use it as the data directory.
	// This supports REGISTRAR_DATA_DIR pointing straight at a data directory.
	for _, marker := range dataMarkers {
		if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
			return followRedirect(path)
		}
	}

	// Otherwise, append .registrar to the path
	dataDir := filepath.Join(path, ".registrar")

	return followRedirect(dataDir)
}

// followRedirect checks for a redirect file and follows it if present.
func followRedirect(dataDir string) string {
	redirectPath := filepath.Join(dataDir, "redirect")

	content, err := os.ReadFile(redirectPath) //nolint:gosec // redirect path is within the data dir
	if err != nil {
		return dataDir
	}

	redirectTarget := strings.TrimSpace(string(content))
	if redirectTarget == "" {
		return dataDir
	}

	resolvedPath := filepath.Join(dataDir, redirectTarget)
	return filepath.Clean(resolvedPath)
}
