package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/kamal-hamza/adir/internal/core/domain"
)

// ErrMockFetch is returned by MockSource when Fail is set
var ErrMockFetch = errors.New("mock fetch failed")

// MockSource is an in-memory Source that counts fetches
type MockSource struct {
	mu            sync.Mutex
	assets        []domain.Asset
	fail          bool
	loadAllCalls  int
	categoryCalls map[string]int
}

// NewMockSource creates a mock source serving the given assets
func NewMockSource(assets ...domain.Asset) *MockSource {
	return &MockSource{
		assets:        assets,
		categoryCalls: make(map[string]int),
	}
}

// SetAssets replaces the served assets
func (m *MockSource) SetAssets(assets ...domain.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = assets
}

// SetFail makes every subsequent fetch fail (or succeed again)
func (m *MockSource) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// LoadAll returns a copy of the served assets
func (m *MockSource) LoadAll(ctx context.Context) ([]domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadAllCalls++
	if m.fail {
		return nil, ErrMockFetch
	}

	out := make([]domain.Asset, len(m.assets))
	copy(out, m.assets)
	return out, nil
}

// LoadAllCalls returns how many times LoadAll was called
func (m *MockSource) LoadAllCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadAllCalls
}

// MockCategorySource adds per-category loading to MockSource
type MockCategorySource struct {
	*MockSource
}

// NewMockCategorySource creates a category-aware mock source
func NewMockCategorySource(assets ...domain.Asset) *MockCategorySource {
	return &MockCategorySource{MockSource: NewMockSource(assets...)}
}

// LoadCategory returns the served assets of one category
func (m *MockCategorySource) LoadCategory(ctx context.Context, category string) ([]domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.categoryCalls[category]++
	if m.fail {
		return nil, ErrMockFetch
	}

	var out []domain.Asset
	for _, a := range m.assets {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out, nil
}

// CategoryCalls returns how many times LoadCategory was called for category
func (m *MockCategorySource) CategoryCalls(category string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categoryCalls[category]
}
