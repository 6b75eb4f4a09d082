package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports"
)

// PendingStore keeps pending submissions in a single JSON file
type PendingStore struct {
	path string
	mu   sync.Mutex
}

// NewPendingStore creates a store backed by path
func NewPendingStore(path string) *PendingStore {
	return &PendingStore{path: path}
}

var _ ports.SubmissionStore = (*PendingStore)(nil)

// Append adds a submission and rewrites the file
func (s *PendingStore) Append(ctx context.Context, submission domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}
	existing = append(existing, submission)

	return s.flush(existing)
}

// List returns all stored submissions
func (s *PendingStore) List(ctx context.Context) ([]domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *PendingStore) load() ([]domain.Submission, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Submission{}, nil
		}
		return nil, fmt.Errorf("failed to read pending submissions: %w", err)
	}

	var submissions []domain.Submission
	if err := json.Unmarshal(data, &submissions); err != nil {
		return nil, fmt.Errorf("failed to parse pending submissions: %w", err)
	}
	return submissions, nil
}

func (s *PendingStore) flush(submissions []domain.Submission) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}
