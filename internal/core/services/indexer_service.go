package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports"
)

// ErrDuplicateID is returned when two example files derive the same asset id
var ErrDuplicateID = errors.New("duplicate asset id")

// IndexerService builds the aggregate asset artifact from example files
type IndexerService struct {
	scanner      ports.ExampleScanner
	outputPath   string
	manifestPath string
	logger       *zap.Logger
}

// NewIndexerService creates a new indexer service
func NewIndexerService(scanner ports.ExampleScanner, outputPath, manifestPath string, logger *zap.Logger) *IndexerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndexerService{
		scanner:      scanner,
		outputPath:   outputPath,
		manifestPath: manifestPath,
		logger:       logger,
	}
}

// BuildRequest represents a request to rebuild the artifact
type BuildRequest struct {
	Categories      []string // scanned in this order
	AllowDuplicates bool     // keep the first asset on id collision instead of failing
	DryRun          bool     // scan and validate without writing
}

// BuildResponse represents the response from a build
type BuildResponse struct {
	TotalAssets  int
	PerCategory  map[string]int
	Missing      []string // categories without a directory
	Skipped      []string // files that could not be read
	Duplicates   []string // ids dropped because of a collision
	Warnings     []string
	OutputPath   string
	ManifestPath string
	Duration     time.Duration
}

// Execute scans every category, builds one Asset per file and writes the
// artifact plus the per-category manifest. Assets are emitted in
// directory-then-file order.
func (s *IndexerService) Execute(ctx context.Context, req BuildRequest) (*BuildResponse, error) {
	start := time.Now()

	assets, manifest, resp, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	resp.TotalAssets = len(assets)
	resp.OutputPath = s.outputPath
	resp.ManifestPath = s.manifestPath

	if !req.DryRun {
		if err := writeJSON(s.outputPath, assets); err != nil {
			return nil, fmt.Errorf("failed to write artifact: %w", err)
		}
		if s.manifestPath != "" {
			if err := writeJSON(s.manifestPath, manifest); err != nil {
				return nil, fmt.Errorf("failed to write manifest: %w", err)
			}
		}
	}

	resp.Duration = time.Since(start)

	s.logger.Info("generated examples",
		zap.Int("count", resp.TotalAssets),
		zap.String("output", s.outputPath),
		zap.Int("skipped", len(resp.Skipped)),
		zap.Bool("dry_run", req.DryRun),
	)

	return resp, nil
}

func (s *IndexerService) collect(ctx context.Context, req BuildRequest) ([]domain.Asset, *domain.Manifest, *BuildResponse, error) {
	resp := &BuildResponse{PerCategory: make(map[string]int)}
	manifest := domain.NewManifest()
	assets := []domain.Asset{}
	seen := make(map[string]string) // id -> file that produced it

	for _, category := range req.Categories {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}

		files, err := s.scanner.ListFiles(ctx, category)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				s.logger.Warn("directory not found", zap.String("category", category))
				resp.Missing = append(resp.Missing, category)
				continue
			}
			return nil, nil, nil, fmt.Errorf("failed to list %s: %w", category, err)
		}

		for _, file := range files {
			content, err := s.scanner.ReadFile(ctx, file)
			if err != nil {
				// One unreadable file must not abort the whole index
				s.logger.Warn("skipping unreadable example",
					zap.String("file", file.Path),
					zap.Error(err),
				)
				resp.Skipped = append(resp.Skipped, file.Path)
				continue
			}

			asset, warnings := domain.AssetFromContent(file, content)
			for _, w := range warnings {
				s.logger.Warn("example metadata", zap.String("file", file.Path), zap.String("warning", w))
				resp.Warnings = append(resp.Warnings, file.Path+": "+w)
			}

			if prev, dup := seen[asset.ID]; dup {
				if !req.AllowDuplicates {
					return nil, nil, nil, fmt.Errorf("%w: %q produced by %s and %s", ErrDuplicateID, asset.ID, prev, file.Path)
				}
				s.logger.Warn("dropping duplicate asset id",
					zap.String("id", asset.ID),
					zap.String("kept", prev),
					zap.String("dropped", file.Path),
				)
				resp.Duplicates = append(resp.Duplicates, asset.ID)
				continue
			}
			seen[asset.ID] = file.Path

			assets = append(assets, asset)
			manifest.Add(category, file.Name)
			resp.PerCategory[category]++
		}
	}

	return assets, manifest, resp, nil
}

// LoadArtifact reads the generated artifact back. A missing file yields an empty collection.
func (s *IndexerService) LoadArtifact() ([]domain.Asset, error) {
	data, err := os.ReadFile(s.outputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Asset{}, nil
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var assets []domain.Asset
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}
	return assets, nil
}

// ArtifactExists checks if the artifact has been generated
func (s *IndexerService) ArtifactExists() bool {
	_, err := os.Stat(s.outputPath)
	return err == nil
}

// writeJSON writes v as indented JSON, creating parent directories
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
