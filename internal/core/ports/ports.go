package ports

import (
	"context"

	"github.com/kamal-hamza/adir/internal/core/domain"
)

// Source defines the port the catalog reads assets through
type Source interface {
	// LoadAll returns every asset the source knows about, in source order
	LoadAll(ctx context.Context) ([]domain.Asset, error)
}

// CategorySource is a Source that can load a single category on its own
type CategorySource interface {
	Source

	// LoadCategory returns the assets of one category
	LoadCategory(ctx context.Context, category string) ([]domain.Asset, error)
}

// ExampleScanner defines the port for discovering and reading example files
type ExampleScanner interface {
	// ListFiles returns the recognised files of a category, sorted by name.
	// Returns domain.ErrCategoryNotFound when the category directory is missing.
	ListFiles(ctx context.Context, category string) ([]domain.ExampleFile, error)

	// ReadFile returns the raw content of an example file
	ReadFile(ctx context.Context, file domain.ExampleFile) (string, error)
}

// SubmissionStore defines the port for pending user submissions
type SubmissionStore interface {
	// Append stores a new pending submission
	Append(ctx context.Context, submission domain.Submission) error

	// List returns all pending submissions in submission order
	List(ctx context.Context) ([]domain.Submission, error)
}

// CacheObserver is notified of catalog cache lookups
type CacheObserver interface {
	CacheHit(key string)
	CacheMiss(key string)
}
