package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports"
)

// ArtifactSource serves the single JSON artifact written by the indexer
type ArtifactSource struct {
	location string
	fetcher  *fetcher
}

// NewArtifactSource creates a source reading location, a path or an http(s) URL
func NewArtifactSource(location string, opts ...Option) *ArtifactSource {
	return &ArtifactSource{
		location: location,
		fetcher:  newFetcher(opts),
	}
}

var _ ports.Source = (*ArtifactSource)(nil)

// Location returns where the artifact is read from
func (s *ArtifactSource) Location() string {
	return s.location
}

// LoadAll fetches and decodes the artifact
func (s *ArtifactSource) LoadAll(ctx context.Context) ([]domain.Asset, error) {
	data, err := s.fetcher.fetch(ctx, s.location)
	if err != nil {
		return nil, err
	}

	var assets []domain.Asset
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", s.location, err)
	}
	return assets, nil
}
