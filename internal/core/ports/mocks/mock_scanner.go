package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kamal-hamza/adir/internal/core/domain"
)

// MockScanner is an in-memory ExampleScanner
type MockScanner struct {
	mu       sync.RWMutex
	files    map[string]map[string]string // category -> name -> content
	modTime  time.Time
	readErrs map[string]error
}

// NewMockScanner creates an empty mock scanner
func NewMockScanner() *MockScanner {
	return &MockScanner{
		files:    make(map[string]map[string]string),
		modTime:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		readErrs: make(map[string]error),
	}
}

// AddFile registers a file under a category
func (m *MockScanner) AddFile(category, name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.files[category] == nil {
		m.files[category] = make(map[string]string)
	}
	m.files[category][name] = content
}

// FailRead makes ReadFile fail for one file
func (m *MockScanner) FailRead(category, name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrs[category+"/"+name] = err
}

// ListFiles returns the category's files sorted by name
func (m *MockScanner) ListFiles(ctx context.Context, category string) ([]domain.ExampleFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files, ok := m.files[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, category)
	}

	out := make([]domain.ExampleFile, 0, len(files))
	for name := range files {
		out = append(out, domain.ExampleFile{
			Category: category,
			Name:     name,
			Path:     "/mock/" + category + "/" + name,
			ModTime:  m.modTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ReadFile returns the registered content
func (m *MockScanner) ReadFile(ctx context.Context, file domain.ExampleFile) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.readErrs[file.Category+"/"+file.Name]; ok {
		return "", err
	}
	content, ok := m.files[file.Category][file.Name]
	if !ok {
		return "", fmt.Errorf("file not found: %s", file.Path)
	}
	return content, nil
}

// MockSubmissionStore keeps submissions in memory
type MockSubmissionStore struct {
	mu          sync.Mutex
	submissions []domain.Submission
	Err         error
}

// NewMockSubmissionStore creates an empty store
func NewMockSubmissionStore() *MockSubmissionStore {
	return &MockSubmissionStore{}
}

// Append stores a submission unless Err is set
func (m *MockSubmissionStore) Append(ctx context.Context, s domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.submissions = append(m.submissions, s)
	return nil
}

// List returns stored submissions
func (m *MockSubmissionStore) List(ctx context.Context) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Submission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}
