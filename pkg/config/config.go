package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Category is one configured asset category
type Category struct {
	ID          string `yaml:"id" validate:"required"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Config struct {
	// Layout
	ExamplesDir  string     `yaml:"examples_dir" validate:"required"`
	OutputFile   string     `yaml:"output_file" validate:"required"`
	ManifestFile string     `yaml:"manifest_file" validate:"required"`
	Categories   []Category `yaml:"categories" validate:"min=1,dive"`
	Extensions   []string   `yaml:"extensions"`

	// Catalog
	Source          string `yaml:"source"`
	UseManifest     bool   `yaml:"use_manifest"`
	AssetBase       string `yaml:"asset_base"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes" validate:"gte=0"`
	Moderation      bool   `yaml:"moderation"`
	PageSize        int    `yaml:"page_size" validate:"gte=0"`
	RecentLimit     int    `yaml:"recent_limit" validate:"gte=0"`

	// Indexer
	AllowDuplicateIDs bool `yaml:"allow_duplicate_ids"`
	WatchDebounceMS   int  `yaml:"watch_debounce_ms" validate:"gte=0"`

	// Observability
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`
	MetricsFile string `yaml:"metrics_file"`

	// UI Settings
	ColorTheme         string `yaml:"color_theme"`
	SyntaxHighlighting bool   `yaml:"syntax_highlighting"`
	HighlightStyle     string `yaml:"highlight_style"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		ExamplesDir:        "public/examples",
		OutputFile:         "public/examples-data.json",
		ManifestFile:       "public/examples-manifest.json",
		Categories:         defaultCategories(),
		Extensions:         []string{".md", ".markdown", ".yaml", ".yml", ".json", ".py", ".js", ".ts", ".sh", ".go"},
		Source:             "",
		UseManifest:        false,
		AssetBase:          "",
		CacheTTLMinutes:    5,
		Moderation:         true,
		PageSize:           20,
		RecentLimit:        6,
		AllowDuplicateIDs:  false,
		WatchDebounceMS:    500,
		LogLevel:           "warn",
		MetricsFile:        "",
		ColorTheme:         "auto",
		SyntaxHighlighting: true,
		HighlightStyle:     "monokai",
	}
}

func defaultCategories() []Category {
	return []Category{
		{ID: "skills", Name: "Skills", Description: "Reusable skills and prompt recipes"},
		{ID: "mcp", Name: "MCP Servers", Description: "Model Context Protocol servers for extending AI capabilities"},
		{ID: "sdk", Name: "SDK Examples", Description: "Programs built on the agent SDK"},
		{ID: "microagents", Name: "Microagents", Description: "Specialized AI agents for specific tasks and workflows"},
		{ID: "scripts", Name: "Scripts", Description: "Automation scripts and utilities"},
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file means defaults
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Back-fill essentials that were written out empty
	defaults := DefaultConfig()
	if cfg.ExamplesDir == "" {
		cfg.ExamplesDir = defaults.ExamplesDir
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = defaults.OutputFile
	}
	if cfg.ManifestFile == "" {
		cfg.ManifestFile = defaults.ManifestFile
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaults.Categories
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = defaults.Extensions
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = defaults.HighlightStyle
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CacheTTL is the catalog cache lifetime. Zero leaves the catalog default.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// WatchDebounce is the quiet period before watch rebuilds the index
func (c *Config) WatchDebounce() time.Duration {
	if c.WatchDebounceMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// CategoryIDs returns the configured category slugs in order
func (c *Config) CategoryIDs() []string {
	ids := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		ids[i] = cat.ID
	}
	return ids
}
