package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports/mocks"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sampleAssets() []domain.Asset {
	return []domain.Asset{
		{
			ID: "mcp-filesystem", Title: "Filesystem MCP Server", Category: "mcp",
			Description: "Secure file system access", Author: "OpenHands Team",
			Tags: []string{"filesystem", "files"}, Status: domain.StatusApproved,
			CreatedAt: "2024-01-15T10:00:00Z",
		},
		{
			ID: "mcp-git", Title: "Git MCP Server", Category: "mcp",
			Description: "MCP server for Git operations", Author: "Community",
			Tags: []string{"git", "repository"}, Status: domain.StatusApproved,
			CreatedAt: "2024-01-20T14:30:00Z",
		},
		{
			ID: "microagents-code-reviewer", Title: "Code Review Microagent", Category: "microagents",
			Description: "Automated code reviews", Author: "DevTools Team",
			Tags: []string{"code-review", "python"}, Status: domain.StatusApproved,
			CreatedAt: "2024-01-12T11:00:00Z",
		},
		{
			ID: "scripts-deploy", Title: "Deploy Script", Category: "scripts",
			Description: "Kubernetes deployment helper", Author: "Ops",
			Tags: []string{"k8s"}, Status: domain.StatusApproved,
			CreatedAt: "2024-02-10T13:30:00Z",
		},
		{
			ID: "mcp-slack-draft", Title: "Slack MCP Draft", Category: "mcp",
			Description: "Not reviewed yet", Author: "Someone",
			Tags: []string{"slack"}, Status: domain.StatusPending,
			CreatedAt: "2024-03-01T00:00:00Z",
		},
		{
			ID: "mcp-database", Title: "Database MCP Server", Category: "mcp",
			Description: "SQL access", Author: "Community",
			Tags: nil, CreatedAt: "2024-01-18T09:00:00Z",
		},
	}
}

func newTestCatalog(src *mocks.MockSource, opts ...CatalogOption) *CatalogService {
	return NewCatalogService(src, opts...)
}

func TestCatalogService_LoadAll_SortedAndModerated(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))

	all := catalog.LoadAll(context.Background())

	require.Len(t, all, 5, "pending asset is hidden")
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedTime().After(all[i-1].CreatedTime()),
			"%s should not be newer than %s", all[i].ID, all[i-1].ID)
	}
	assert.Equal(t, "scripts-deploy", all[0].ID)
	for _, a := range all {
		assert.NotEqual(t, domain.StatusPending, a.Status)
		assert.NotNil(t, a.Tags)
	}
}

func TestCatalogService_LoadAll_WithoutModeration(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...), WithModeration(false))

	all := catalog.LoadAll(context.Background())
	assert.Len(t, all, 6)
	assert.Equal(t, "mcp-slack-draft", all[0].ID)
}

func TestCatalogService_LoadAll_CachesWithinTTL(t *testing.T) {
	src := mocks.NewMockSource(sampleAssets()...)
	clock := newFakeClock()
	catalog := newTestCatalog(src, WithClock(clock.Now))
	ctx := context.Background()

	first := catalog.LoadAll(ctx)
	clock.Advance(4 * time.Minute)
	second := catalog.LoadAll(ctx)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.LoadAllCalls(), "second call within TTL must not fetch")

	clock.Advance(time.Minute)
	catalog.LoadAll(ctx)
	assert.Equal(t, 2, src.LoadAllCalls(), "entry expires once ttl has elapsed")
}

func TestCatalogService_ClearCache(t *testing.T) {
	src := mocks.NewMockSource(sampleAssets()...)
	catalog := newTestCatalog(src)
	ctx := context.Background()

	catalog.LoadAll(ctx)
	catalog.ClearCache()
	catalog.LoadAll(ctx)

	assert.Equal(t, 2, src.LoadAllCalls())
}

func TestCatalogService_ResultsAreCopies(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))
	ctx := context.Background()

	all := catalog.LoadAll(ctx)
	all[0].Title = "mutated"
	all[0].Tags[0] = "mutated"

	again := catalog.LoadAll(ctx)
	assert.Equal(t, "Deploy Script", again[0].Title)
	assert.Equal(t, "k8s", again[0].Tags[0])
}

func TestCatalogService_SourceFailureDegradesToEmpty(t *testing.T) {
	src := mocks.NewMockSource(sampleAssets()...)
	src.SetFail(true)
	catalog := newTestCatalog(src)
	ctx := context.Background()

	assert.Empty(t, catalog.LoadAll(ctx))
	assert.NotNil(t, catalog.LoadAll(ctx))
	assert.Empty(t, catalog.LoadByCategory(ctx, "mcp"))
	assert.Empty(t, catalog.Search(ctx, "git"))
	assert.Empty(t, catalog.Recent(ctx, 3))

	_, ok := catalog.GetByID(ctx, "mcp-git")
	assert.False(t, ok)

	page := catalog.Paginate(ctx, "", 1, 10)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)

	// Failures are not cached: recovery is picked up on the next call
	src.SetFail(false)
	assert.Len(t, catalog.LoadAll(ctx), 5)
}

func TestCatalogService_LoadByCategory(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))
	ctx := context.Background()

	for _, c := range domain.DefaultCategories() {
		for _, a := range catalog.LoadByCategory(ctx, c.ID) {
			assert.Equal(t, c.ID, a.Category)
		}
	}

	mcp := catalog.LoadByCategory(ctx, "mcp")
	require.Len(t, mcp, 3)
	assert.Equal(t, []string{"mcp-git", "mcp-database", "mcp-filesystem"}, assetIDs(mcp))

	assert.Empty(t, catalog.LoadByCategory(ctx, "unknown"))
}

func TestCatalogService_LoadByCategory_UsesCategorySource(t *testing.T) {
	src := mocks.NewMockCategorySource(sampleAssets()...)
	catalog := NewCatalogService(src)
	ctx := context.Background()

	catalog.LoadByCategory(ctx, "mcp")
	catalog.LoadByCategory(ctx, "mcp")

	assert.Equal(t, 1, src.CategoryCalls("mcp"), "category results are cached under their own key")
	assert.Equal(t, 0, src.LoadAllCalls())
}

func TestCatalogService_GetByID(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))
	ctx := context.Background()

	for _, a := range catalog.LoadAll(ctx) {
		got, ok := catalog.GetByID(ctx, a.ID)
		require.True(t, ok, a.ID)
		assert.Equal(t, a, got)
	}

	_, ok := catalog.GetByID(ctx, "does-not-exist")
	assert.False(t, ok)

	_, ok = catalog.GetByID(ctx, "mcp-slack-draft")
	assert.False(t, ok, "pending assets are not reachable")
}

func TestCatalogService_Search(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"repo", []string{"mcp-git"}},
		{"GIT", []string{"mcp-git"}},
		{"slack", []string{}},
		{"community", []string{"mcp-git", "mcp-database"}},
		{"microagents", []string{"microagents-code-reviewer"}},
		{"python", []string{"microagents-code-reviewer"}},
		{"server", []string{"mcp-git", "mcp-database", "mcp-filesystem"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, assetIDs(catalog.Search(ctx, tt.query)))
		})
	}
}

func TestCatalogService_Search_Properties(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))
	ctx := context.Background()

	assert.Equal(t, catalog.Search(ctx, "git"), catalog.Search(ctx, "GIT"))
	assert.Equal(t, catalog.LoadAll(ctx), catalog.Search(ctx, "  "))

	all := make(map[string]bool)
	for _, a := range catalog.LoadAll(ctx) {
		all[a.ID] = true
	}
	for _, q := range []string{"a", "mcp", "e", "zzz", "-"} {
		for _, a := range catalog.Search(ctx, q) {
			assert.True(t, all[a.ID], "search(%q) returned %s outside LoadAll", q, a.ID)
		}
	}
}

func TestCatalogService_Paginate(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))
	ctx := context.Background()

	mcp := catalog.LoadByCategory(ctx, "mcp")
	require.Len(t, mcp, 3)

	page := catalog.Paginate(ctx, "mcp", 2, 1)
	assert.Equal(t, []domain.Asset{mcp[1]}, page.Items)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)

	last := catalog.Paginate(ctx, "mcp", 3, 1)
	assert.False(t, last.HasNextPage)

	beyond := catalog.Paginate(ctx, "mcp", 7, 1)
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
	assert.False(t, beyond.HasNextPage)
	assert.True(t, beyond.HasPrevPage)

	empty := catalog.Paginate(ctx, "skills", 1, 5)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, 0, empty.TotalCount)
}

func TestCatalogService_Paginate_HugeInputs(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))
	ctx := context.Background()

	tests := []struct {
		name      string
		page      int
		size      int
		wantItems int
		wantPages int
	}{
		{"huge page", math.MaxInt / 2, 20, 0, 1},
		{"max page", math.MaxInt, 2, 0, 3},
		{"huge size first page", 1, math.MaxInt, 5, 1},
		{"huge size second page", 2, math.MaxInt, 0, 1},
		{"both huge", math.MaxInt, math.MaxInt, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page domain.Page
			require.NotPanics(t, func() {
				page = catalog.Paginate(ctx, "", tt.page, tt.size)
			})
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, 5, page.TotalCount)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.False(t, page.HasNextPage)
			assert.Equal(t, tt.page, page.CurrentPage)
		})
	}
}

func TestCatalogService_Paginate_Defaults(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))

	page := catalog.Paginate(context.Background(), "", 0, 0)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasPrevPage)
}

func TestCatalogService_Paginate_ReassemblesLoadAll(t *testing.T) {
	var assets []domain.Asset
	for i := 0; i < 23; i++ {
		assets = append(assets, domain.Asset{
			ID:        fmt.Sprintf("mcp-test-%02d", i),
			Category:  "mcp",
			CreatedAt: time.Date(2024, 1, 1+i%5, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
	}
	catalog := newTestCatalog(mocks.NewMockSource(assets...))
	ctx := context.Background()

	for _, size := range []int{1, 4, 5, 7, 23, 50} {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			first := catalog.Paginate(ctx, "", 1, size)

			var joined []domain.Asset
			for p := 1; p <= first.TotalPages; p++ {
				page := catalog.Paginate(ctx, "", p, size)
				assert.LessOrEqual(t, len(page.Items), size)
				if p < first.TotalPages {
					assert.Len(t, page.Items, size)
				}
				joined = append(joined, page.Items...)
			}

			assert.Equal(t, catalog.LoadAll(ctx), joined)
		})
	}
}

func TestCatalogService_Recent(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))
	ctx := context.Background()

	recent := catalog.Recent(ctx, 2)
	assert.Equal(t, []string{"scripts-deploy", "mcp-git"}, assetIDs(recent))

	assert.Len(t, catalog.Recent(ctx, 0), 5, "default limit caps at the collection size")
	assert.Len(t, catalog.Recent(ctx, 100), 5)
}

func TestCatalogService_Categories(t *testing.T) {
	catalog := newTestCatalog(mocks.NewMockSource(sampleAssets()...))

	counts := make(map[string]int)
	for _, c := range catalog.Categories(context.Background()) {
		counts[c.ID] = c.Count
	}

	assert.Equal(t, map[string]int{
		"skills": 0, "mcp": 3, "sdk": 0, "microagents": 1, "scripts": 1,
	}, counts)
}

func TestCatalogService_ConcurrentMisses(t *testing.T) {
	src := mocks.NewMockSource(sampleAssets()...)
	catalog := newTestCatalog(src)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, catalog.LoadAll(ctx), 5)
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, src.LoadAllCalls(), 1)
	assert.Len(t, catalog.LoadAll(ctx), 5)
}

func assetIDs(assets []domain.Asset) []string {
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}
	return ids
}
