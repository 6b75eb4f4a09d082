package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is the on-disk layout adir works against: the example sources
// and generated files under a project root, plus per-user state.
type Workspace struct {
	RootPath     string
	ExamplesPath string
	OutputPath   string // generated asset artifact
	ManifestPath string // generated per-category file listing
	StatePath    string // local ephemeral storage (pending submissions)
}

// Layout names the project-relative locations of a workspace
type Layout struct {
	ExamplesDir  string
	OutputFile   string
	ManifestFile string
}

// New resolves a workspace under root. Relative layout paths are joined to
// root; absolute ones are kept as given.
func New(root string, layout Layout) (*Workspace, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = wd
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	statePath, err := getStateRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to determine state directory: %w", err)
	}

	ws := &Workspace{
		RootPath:     root,
		ExamplesPath: resolve(root, layout.ExamplesDir),
		OutputPath:   resolve(root, layout.OutputFile),
		StatePath:    statePath,
	}
	if layout.ManifestFile != "" {
		ws.ManifestPath = resolve(root, layout.ManifestFile)
	}

	return ws, nil
}

func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// DefaultConfigPath returns the per-user config file location
// Follows XDG on Unix and uses AppData on Windows
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "adir", "config.yaml"), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "adir", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "adir", "config.yaml"), nil
}

func getStateRoot() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "adir"), nil
	}

	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, "adir"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "state", "adir"), nil
}

// CategoryPath returns the directory holding a category's examples
func (w *Workspace) CategoryPath(category string) string {
	return filepath.Join(w.ExamplesPath, category)
}

// ExamplePath returns the full path of an example file
func (w *Workspace) ExamplePath(category, filename string) string {
	return filepath.Join(w.ExamplesPath, category, filename)
}

// PendingPath returns the file pending submissions are stored in
func (w *Workspace) PendingPath() string {
	return filepath.Join(w.StatePath, "pending-assets.json")
}

// EnsureCategories creates the examples directory and one directory per category
func (w *Workspace) EnsureCategories(categories []string) error {
	for _, c := range categories {
		dir := w.CategoryPath(c)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ClearState removes local submission state
func (w *Workspace) ClearState() error {
	if err := os.RemoveAll(w.StatePath); err != nil {
		return fmt.Errorf("failed to remove %s: %w", w.StatePath, err)
	}
	return nil
}
