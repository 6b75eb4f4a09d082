package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports"
	"github.com/kamal-hamza/adir/pkg/workspace"
)

// DefaultExtensions are the file types the scanner recognises as examples
var DefaultExtensions = []string{".md", ".markdown", ".yaml", ".yml", ".json", ".py", ".js", ".ts", ".sh", ".go"}

// ExampleRepository reads example files from the workspace's category directories
type ExampleRepository struct {
	ws         *workspace.Workspace
	extensions map[string]bool
}

// NewExampleRepository creates a scanner over ws. A nil or empty extension
// list falls back to DefaultExtensions.
func NewExampleRepository(ws *workspace.Workspace, extensions []string) *ExampleRepository {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}

	return &ExampleRepository{
		ws:         ws,
		extensions: exts,
	}
}

// Ensure it implements the interface
var _ ports.ExampleScanner = (*ExampleRepository)(nil)

// ListFiles returns the recognised files directly inside the category directory
func (r *ExampleRepository) ListFiles(ctx context.Context, category string) ([]domain.ExampleFile, error) {
	dir := r.ws.CategoryPath(category)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read category directory: %w", err)
	}

	var files []domain.ExampleFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !r.Recognises(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, domain.ExampleFile{
			Category: category,
			Name:     name,
			Path:     filepath.Join(dir, name),
			ModTime:  info.ModTime(),
		})
	}

	// os.ReadDir already sorts, keep the guarantee explicit
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return files, nil
}

// ReadFile returns the file's content
func (r *ExampleRepository) ReadFile(ctx context.Context, file domain.ExampleFile) (string, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// Recognises reports whether name has an example extension
func (r *ExampleRepository) Recognises(name string) bool {
	return r.extensions[strings.ToLower(filepath.Ext(name))]
}

// Create writes a new example file, refusing to overwrite an existing one
func (r *ExampleRepository) Create(ctx context.Context, category, filename, content string) (string, error) {
	if !r.Recognises(filename) {
		return "", fmt.Errorf("unsupported example extension: %s", filepath.Ext(filename))
	}

	dir := r.ws.CategoryPath(category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create category directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("example already exists: %s", path)
		}
		return "", fmt.Errorf("failed to create example: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return "", fmt.Errorf("failed to write example: %w", err)
	}
	return path, nil
}
