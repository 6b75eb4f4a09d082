package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports"
)

// Listing defaults
const (
	DefaultPageSize    = 20
	DefaultRecentLimit = 6
)

// CatalogService answers read-only queries over the asset collection.
// Listing operations never fail: source errors are logged and degrade to
// an empty result. Only GetByID expresses absence, through its bool.
type CatalogService struct {
	source     ports.Source
	cache      *ttlCache
	logger     *zap.Logger
	moderation bool
	categories []domain.Category
	observer   ports.CacheObserver
}

// CatalogOption configures a CatalogService
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	ttl        time.Duration
	now        func() time.Time
	logger     *zap.Logger
	moderation bool
	categories []domain.Category
	observer   ports.CacheObserver
}

// WithTTL sets how long query results are cached
func WithTTL(ttl time.Duration) CatalogOption {
	return func(o *catalogOptions) { o.ttl = ttl }
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) CatalogOption {
	return func(o *catalogOptions) { o.now = now }
}

// WithLogger sets the logger used for degraded queries
func WithLogger(logger *zap.Logger) CatalogOption {
	return func(o *catalogOptions) { o.logger = logger }
}

// WithModeration controls whether only approved assets are listed
func WithModeration(enabled bool) CatalogOption {
	return func(o *catalogOptions) { o.moderation = enabled }
}

// WithCategories sets the navigable categories reported by Categories
func WithCategories(categories []domain.Category) CatalogOption {
	return func(o *catalogOptions) { o.categories = categories }
}

// WithCacheObserver reports cache hits and misses to o
func WithCacheObserver(o ports.CacheObserver) CatalogOption {
	return func(opts *catalogOptions) { opts.observer = o }
}

// NewCatalogService creates a catalog over src
func NewCatalogService(src ports.Source, opts ...CatalogOption) *CatalogService {
	o := catalogOptions{
		ttl:        DefaultCacheTTL,
		moderation: true,
		categories: domain.DefaultCategories(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return &CatalogService{
		source:     src,
		cache:      newTTLCache(o.ttl, o.now),
		logger:     o.logger,
		moderation: o.moderation,
		categories: o.categories,
		observer:   o.observer,
	}
}

// LoadAll returns every visible asset, newest first
func (s *CatalogService) LoadAll(ctx context.Context) []domain.Asset {
	if cached, ok := s.lookup(cacheKeyAll); ok {
		return clone(cached)
	}

	assets, err := s.source.LoadAll(ctx)
	if err != nil {
		s.logger.Error("error loading assets", zap.Error(err))
		return []domain.Asset{}
	}

	assets = s.prepare(assets)
	s.cache.set(cacheKeyAll, assets)
	return clone(assets)
}

// LoadByCategory returns the visible assets of one category, newest first
func (s *CatalogService) LoadByCategory(ctx context.Context, category string) []domain.Asset {
	key := categoryCacheKey(category)
	if cached, ok := s.lookup(key); ok {
		return clone(cached)
	}

	var (
		assets []domain.Asset
		err    error
	)
	if cs, ok := s.source.(ports.CategorySource); ok {
		assets, err = cs.LoadCategory(ctx, category)
	} else {
		assets, err = s.source.LoadAll(ctx)
	}
	if err != nil {
		s.logger.Error("error loading category assets",
			zap.String("category", category),
			zap.Error(err),
		)
		return []domain.Asset{}
	}

	filtered := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		if a.Category == category {
			filtered = append(filtered, a)
		}
	}

	filtered = s.prepare(filtered)
	s.cache.set(key, filtered)
	return clone(filtered)
}

// GetByID finds an asset by id
func (s *CatalogService) GetByID(ctx context.Context, id string) (domain.Asset, bool) {
	for _, a := range s.LoadAll(ctx) {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Asset{}, false
}

// Search returns the assets matching query, in LoadAll order.
// A blank query matches everything.
func (s *CatalogService) Search(ctx context.Context, query string) []domain.Asset {
	all := s.LoadAll(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return all
	}

	matches := []domain.Asset{}
	for _, a := range all {
		if a.Matches(query) {
			matches = append(matches, a)
		}
	}
	return matches
}

// Paginate returns one page of a category (or of everything when category is empty)
func (s *CatalogService) Paginate(ctx context.Context, category string, page, pageSize int) domain.Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var assets []domain.Asset
	if category != "" {
		assets = s.LoadByCategory(ctx, category)
	} else {
		assets = s.LoadAll(ctx)
	}

	total := len(assets)
	totalPages := domain.TotalPages(total, pageSize)

	items := []domain.Asset{}
	// Compare page numbers before multiplying so huge inputs cannot overflow
	if page <= totalPages {
		start := (page - 1) * pageSize
		end := total
		if total-start > pageSize {
			end = start + pageSize
		}
		items = assets[start:end]
	}

	return domain.Page{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Recent returns the newest limit assets
func (s *CatalogService) Recent(ctx context.Context, limit int) []domain.Asset {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	all := s.LoadAll(ctx)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// CategorySummary is a category with its number of visible assets
type CategorySummary struct {
	domain.Category
	Count int
}

// Categories returns the configured categories with their asset counts
func (s *CatalogService) Categories(ctx context.Context) []CategorySummary {
	counts := make(map[string]int)
	for _, a := range s.LoadAll(ctx) {
		counts[a.Category]++
	}

	summaries := make([]CategorySummary, 0, len(s.categories))
	for _, c := range s.categories {
		summaries = append(summaries, CategorySummary{Category: c, Count: counts[c.ID]})
	}
	return summaries
}

// ClearCache drops every cached result
func (s *CatalogService) ClearCache() {
	s.cache.clear()
}

func (s *CatalogService) lookup(key string) ([]domain.Asset, bool) {
	cached, ok := s.cache.get(key)
	if s.observer != nil {
		if ok {
			s.observer.CacheHit(key)
		} else {
			s.observer.CacheMiss(key)
		}
	}
	return cached, ok
}

// prepare applies moderation and the newest-first ordering
func (s *CatalogService) prepare(assets []domain.Asset) []domain.Asset {
	out := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		if s.moderation && !a.IsApproved() {
			continue
		}
		if a.Tags == nil {
			a.Tags = []string{}
		}
		out = append(out, a)
	}
	domain.SortByCreatedDesc(out)
	return out
}

// clone copies the slice and each asset's tags so callers cannot mutate the cache
func clone(assets []domain.Asset) []domain.Asset {
	out := make([]domain.Asset, len(assets))
	for i, a := range assets {
		a.Tags = append([]string{}, a.Tags...)
		out[i] = a
	}
	return out
}
