// Package artifacts manages the on-disk layout of rendered outputs.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/timfernando/roadcolors/pkg/storage"
)

const (
	DefaultBaseDir = "roadcolors-output"

	ImageFile   = "map.png"
	PaletteFile = "palette.json"
	WordsFile   = "words.txt"
	SummaryFile = "summary.json"
)

// Manager handles storage paths for render artifacts. Each place gets its
// own directory under the base dir, keyed by the place slug.
type Manager struct {
	baseDir string
	maxAge  time.Duration // max age before an artifact counts as stale
	store   storage.Storage
}

// NewManager creates an artifacts manager, ensuring the base dir exists.
func NewManager(baseDir string, maxAge time.Duration) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{baseDir: baseDir, maxAge: maxAge}, nil
}

// BaseDir returns the output root.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// MaxAge returns the staleness threshold.
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// PlaceDir returns (and creates) the directory for a place slug.
func (m *Manager) PlaceDir(slug string) (string, error) {
	dir := filepath.Join(m.baseDir, slug)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create place directory: %w", err)
	}
	return dir, nil
}

// ImagePath returns the map image path for a place slug.
func (m *Manager) ImagePath(slug string) string {
	return filepath.Join(m.baseDir, slug, ImageFile)
}

// PalettePath returns the palette-key JSON path for a place slug.
func (m *Manager) PalettePath(slug string) string {
	return filepath.Join(m.baseDir, slug, PaletteFile)
}

// WordsPath returns the word-frequency listing path for a place slug.
func (m *Manager) WordsPath(slug string) string {
	return filepath.Join(m.baseDir, slug, WordsFile)
}

// SummaryPath returns the batch summary manifest path.
func (m *Manager) SummaryPath() string {
	return filepath.Join(m.baseDir, SummaryFile)
}

// IsFresh reports whether an artifact exists and is younger than maxAge.
// A zero maxAge means everything is stale (force re-render).
func (m *Manager) IsFresh(path string) bool {
	if m.maxAge <= 0 {
		return false
	}
	if !m.store.HasFile(path) {
		return false
	}
	stats, err := m.store.GetFileStats(path)
	if err != nil {
		return false
	}
	return time.Since(stats.ModTime) <= m.maxAge
}
