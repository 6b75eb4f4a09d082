package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports/mocks"
)

func newTestIndexer(t *testing.T, scanner *mocks.MockScanner) (*IndexerService, string, string) {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "public", "examples-data.json")
	manifest := filepath.Join(dir, "public", "examples-manifest.json")
	return NewIndexerService(scanner, out, manifest, nil), out, manifest
}

func TestIndexerService_Execute(t *testing.T) {
	scanner := mocks.NewMockScanner()
	scanner.AddFile("mcp", "git.yaml", "---\ntitle: Git MCP Server\nauthor: Community\ntags: [git, repository]\n---\n\ngit: {}\n")
	scanner.AddFile("mcp", "slack.json", `{"mcpServers": {"slack": {}}}`)
	scanner.AddFile("scripts", "deploy.sh", "#!/bin/sh\necho deploy\n")
	scanner.AddFile("scripts", "backup.py", "---\ndescription: Nightly backup\n---\nprint('backup')")

	indexer, out, manifestPath := newTestIndexer(t, scanner)

	resp, err := indexer.Execute(context.Background(), BuildRequest{
		Categories: []string{"mcp", "skills", "scripts"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if resp.TotalAssets != 4 {
		t.Errorf("TotalAssets = %d, want 4", resp.TotalAssets)
	}
	if resp.PerCategory["mcp"] != 2 || resp.PerCategory["scripts"] != 2 {
		t.Errorf("PerCategory = %v", resp.PerCategory)
	}
	if len(resp.Missing) != 1 || resp.Missing[0] != "skills" {
		t.Errorf("Missing = %v, want [skills]", resp.Missing)
	}

	assets, err := indexer.LoadArtifact()
	if err != nil {
		t.Fatalf("LoadArtifact() error: %v", err)
	}

	// directory-then-file order
	wantIDs := []string{"mcp-git", "mcp-slack", "scripts-backup", "scripts-deploy"}
	if len(assets) != len(wantIDs) {
		t.Fatalf("artifact has %d assets, want %d", len(assets), len(wantIDs))
	}
	for i, id := range wantIDs {
		if assets[i].ID != id {
			t.Errorf("assets[%d].ID = %q, want %q", i, assets[i].ID, id)
		}
	}

	git := assets[0]
	if git.Title != "Git MCP Server" || git.Author != "Community" || git.Code != "git: {}" {
		t.Errorf("git asset = %+v", git)
	}
	if git.File != "git.yaml" {
		t.Errorf("File = %q", git.File)
	}
	if assets[3].Title != "scripts-deploy" || assets[3].Author != domain.DefaultAuthor {
		t.Errorf("defaults not applied: %+v", assets[3])
	}

	// The artifact is a plain JSON array with the published field names
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var generic []map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("artifact is not a JSON array: %v", err)
	}
	for _, key := range []string{"id", "title", "author", "category", "description", "code", "tags", "file"} {
		if _, ok := generic[0][key]; !ok {
			t.Errorf("artifact record missing %q", key)
		}
	}

	var manifest domain.Manifest
	raw, err = os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		t.Fatal(err)
	}
	if manifest.Count() != 4 || len(manifest.Files("mcp")) != 2 {
		t.Errorf("manifest = %+v", manifest.Categories)
	}
}

func TestIndexerService_SkipsUnreadableFiles(t *testing.T) {
	scanner := mocks.NewMockScanner()
	scanner.AddFile("sdk", "good.py", "print('ok')")
	scanner.AddFile("sdk", "bad.py", "")
	scanner.FailRead("sdk", "bad.py", errors.New("permission denied"))

	indexer, _, _ := newTestIndexer(t, scanner)

	resp, err := indexer.Execute(context.Background(), BuildRequest{Categories: []string{"sdk"}})
	if err != nil {
		t.Fatalf("Execute() should not fail on one bad file: %v", err)
	}
	if resp.TotalAssets != 1 {
		t.Errorf("TotalAssets = %d, want 1", resp.TotalAssets)
	}
	if len(resp.Skipped) != 1 {
		t.Errorf("Skipped = %v, want one entry", resp.Skipped)
	}
}

func TestIndexerService_DuplicateIDs(t *testing.T) {
	scanner := mocks.NewMockScanner()
	scanner.AddFile("mcp", "git.yaml", "a")
	scanner.AddFile("mcp", "git.json", "b")

	t.Run("fails loudly by default", func(t *testing.T) {
		indexer, out, _ := newTestIndexer(t, scanner)

		_, err := indexer.Execute(context.Background(), BuildRequest{Categories: []string{"mcp"}})
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("Execute() error = %v, want ErrDuplicateID", err)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Error("artifact must not be written when the build fails")
		}
	})

	t.Run("first wins when allowed", func(t *testing.T) {
		indexer, _, _ := newTestIndexer(t, scanner)

		resp, err := indexer.Execute(context.Background(), BuildRequest{
			Categories:      []string{"mcp"},
			AllowDuplicates: true,
		})
		if err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		if resp.TotalAssets != 1 || len(resp.Duplicates) != 1 {
			t.Errorf("TotalAssets = %d, Duplicates = %v", resp.TotalAssets, resp.Duplicates)
		}

		assets, _ := indexer.LoadArtifact()
		if assets[0].File != "git.json" {
			t.Errorf("kept %q, want the first file in name order (git.json)", assets[0].File)
		}
	})
}

func TestIndexerService_DryRun(t *testing.T) {
	scanner := mocks.NewMockScanner()
	scanner.AddFile("skills", "scrape.md", "content")

	indexer, out, _ := newTestIndexer(t, scanner)

	resp, err := indexer.Execute(context.Background(), BuildRequest{Categories: []string{"skills"}, DryRun: true})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if resp.TotalAssets != 1 {
		t.Errorf("TotalAssets = %d, want 1", resp.TotalAssets)
	}
	if indexer.ArtifactExists() {
		t.Errorf("dry run wrote %s", out)
	}
}

func TestIndexerService_OverwritesArtifact(t *testing.T) {
	scanner := mocks.NewMockScanner()
	scanner.AddFile("skills", "a.md", "a")
	scanner.AddFile("skills", "b.md", "b")

	indexer, _, _ := newTestIndexer(t, scanner)
	ctx := context.Background()

	if _, err := indexer.Execute(ctx, BuildRequest{Categories: []string{"skills"}}); err != nil {
		t.Fatal(err)
	}

	// Omission on the next rebuild is the only way an asset goes away
	rebuilt := mocks.NewMockScanner()
	rebuilt.AddFile("skills", "a.md", "a")
	indexer.scanner = rebuilt

	if _, err := indexer.Execute(ctx, BuildRequest{Categories: []string{"skills"}}); err != nil {
		t.Fatal(err)
	}

	assets, err := indexer.LoadArtifact()
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 1 {
		t.Errorf("artifact has %d assets after rebuild, want 1", len(assets))
	}
}

func TestIndexerService_LoadArtifactMissing(t *testing.T) {
	indexer, _, _ := newTestIndexer(t, mocks.NewMockScanner())

	assets, err := indexer.LoadArtifact()
	if err != nil {
		t.Fatalf("LoadArtifact() error: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("LoadArtifact() = %d assets, want 0", len(assets))
	}
}

func TestIndexerService_Cancelled(t *testing.T) {
	scanner := mocks.NewMockScanner()
	scanner.AddFile("mcp", "git.yaml", "a")
	indexer, _, _ := newTestIndexer(t, scanner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := indexer.Execute(ctx, BuildRequest{Categories: []string{"mcp"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}
