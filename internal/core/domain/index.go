package domain

import (
	"sort"
	"time"
)

// Manifest is the generated listing of asset files per category.
// It is written by the indexer and read by the per-file retrieval path.
type Manifest struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Categories  map[string][]string `json:"categories"`
}

// NewManifest creates an empty manifest
func NewManifest() *Manifest {
	return &Manifest{
		GeneratedAt: time.Now().UTC(),
		Categories:  make(map[string][]string),
	}
}

// Add records a file under a category
func (m *Manifest) Add(category, filename string) {
	if m.Categories == nil {
		m.Categories = make(map[string][]string)
	}
	m.Categories[category] = append(m.Categories[category], filename)
}

// Files returns the filenames recorded for a category
func (m *Manifest) Files(category string) []string {
	return m.Categories[category]
}

// CategoryIDs returns the manifest's categories in sorted order
func (m *Manifest) CategoryIDs() []string {
	ids := make([]string, 0, len(m.Categories))
	for id := range m.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the total number of files in the manifest
func (m *Manifest) Count() int {
	n := 0
	for _, files := range m.Categories {
		n += len(files)
	}
	return n
}
