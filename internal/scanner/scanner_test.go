package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtlens/debtlens/pkg/config"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x = 1;\n"), 0o644))
}

func TestScanPathsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	writeFile(t, file)

	// Explicitly named files bypass the extension filter.
	files, err := New(nil).ScanPaths([]string{file})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestScanPathsMissingPath(t *testing.T) {
	_, err := New(nil).ScanPaths([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestScanDirFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.js"))
	writeFile(t, filepath.Join(dir, "main.go"))
	writeFile(t, filepath.Join(dir, "readme.md"))
	writeFile(t, filepath.Join(dir, "data.csv"))

	files, err := New(nil).ScanPaths([]string{dir})
	require.NoError(t, err)

	assert.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(dir, "app.js"))
	assert.Contains(t, files, filepath.Join(dir, "main.go"))
}

func TestScanDirSkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "app.js"))
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"))
	writeFile(t, filepath.Join(dir, "vendor", "lib.go"))

	files, err := New(nil).ScanPaths([]string{dir})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "src", "app.js")}, files)
}

func TestScanDirConfigPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.js"))
	writeFile(t, filepath.Join(dir, "app.min.js"))

	files, err := New(nil).ScanPaths([]string{dir})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "app.js")}, files)
}

func TestScanDirGitignore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("generated.js\n"), 0o644))
	writeFile(t, filepath.Join(dir, "app.js"))
	writeFile(t, filepath.Join(dir, "generated.js"))

	files, err := New(nil).ScanPaths([]string{dir})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "app.js")}, files)
}

func TestScanDirGitignoreDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("generated.js\n"), 0o644))
	writeFile(t, filepath.Join(dir, "app.js"))
	writeFile(t, filepath.Join(dir, "generated.js"))

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	files, err := New(cfg).ScanPaths([]string{dir})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
