package domain

import (
	"errors"
	"time"
)

// ErrCategoryNotFound is returned by scanners when a category directory does not exist
var ErrCategoryNotFound = errors.New("category directory not found")

// ExampleFile is a source file discovered in a category directory
type ExampleFile struct {
	Category string
	Name     string // e.g. "basic-agent.py"
	Path     string
	ModTime  time.Time
}
