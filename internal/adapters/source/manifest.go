package source

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports"
)

// ManifestSource fetches every asset file listed in the generated manifest
// individually from <base>/<category>/<file>. A file that cannot be fetched
// is logged and left out.
type ManifestSource struct {
	manifestLocation string
	base             string
	fetcher          *fetcher
	logger           *zap.Logger
}

// NewManifestSource creates a per-file source
func NewManifestSource(manifestLocation, base string, logger *zap.Logger, opts ...Option) *ManifestSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManifestSource{
		manifestLocation: manifestLocation,
		base:             base,
		fetcher:          newFetcher(opts),
		logger:           logger,
	}
}

var _ ports.CategorySource = (*ManifestSource)(nil)

// LoadAll loads every category in the manifest
func (s *ManifestSource) LoadAll(ctx context.Context) ([]domain.Asset, error) {
	manifest, err := s.manifest(ctx)
	if err != nil {
		return nil, err
	}

	assets := []domain.Asset{}
	for _, category := range manifest.CategoryIDs() {
		assets = append(assets, s.loadFiles(ctx, category, manifest.Files(category))...)
	}
	return assets, nil
}

// LoadCategory loads one category. Categories absent from the manifest are empty.
func (s *ManifestSource) LoadCategory(ctx context.Context, category string) ([]domain.Asset, error) {
	manifest, err := s.manifest(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadFiles(ctx, category, manifest.Files(category)), nil
}

func (s *ManifestSource) manifest(ctx context.Context) (*domain.Manifest, error) {
	data, err := s.fetcher.fetch(ctx, s.manifestLocation)
	if err != nil {
		return nil, err
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", s.manifestLocation, err)
	}
	return &manifest, nil
}

func (s *ManifestSource) loadFiles(ctx context.Context, category string, files []string) []domain.Asset {
	assets := make([]domain.Asset, 0, len(files))

	for _, name := range files {
		location := join(s.base, category, name)

		data, err := s.fetcher.fetch(ctx, location)
		if err != nil {
			s.logger.Warn("failed to load asset",
				zap.String("file", name),
				zap.String("category", category),
				zap.Error(err),
			)
			continue
		}

		asset, warnings := domain.AssetFromContent(domain.ExampleFile{
			Category: category,
			Name:     name,
			Path:     location,
			ModTime:  s.fetcher.modTime(location),
		}, string(data))
		for _, w := range warnings {
			s.logger.Debug("asset metadata", zap.String("file", location), zap.String("warning", w))
		}

		assets = append(assets, asset)
	}

	return assets
}
