package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/kamal-hamza/adir/internal/adapters/repository"
	"github.com/kamal-hamza/adir/internal/adapters/source"
	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/pkg/config"
	"github.com/kamal-hamza/adir/pkg/workspace"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"build", "list", "show", "copy", "search", "recent", "categories",
		"watch", "new", "submit", "pending", "config", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil || cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd.Use != "adir" {
		t.Errorf("Expected root command Use to be 'adir', got '%s'", rootCmd.Use)
	}

	for _, flag := range []string{"config", "root", "source", "manifest", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("global flag --%s not registered", flag)
		}
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

// TestSubcommands verifies specific subcommands exist
func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent     string
		subcommand string
	}{
		{"config", "init"},
		{"config", "edit"},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"_"+tt.subcommand, func(t *testing.T) {
			parentCmd, _, err := rootCmd.Find([]string{tt.parent})
			if err != nil {
				t.Fatalf("Parent command '%s' not found: %v", tt.parent, err)
			}

			found := false
			for _, cmd := range parentCmd.Commands() {
				if cmd.Name() == tt.subcommand {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Subcommand '%s' not found under '%s'", tt.subcommand, tt.parent)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Git MCP Server", "git-mcp-server"},
		{"  Code -- Reviewer!  ", "code-reviewer"},
		{"v2.0 Release", "v2-0-release"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToDomainCategories(t *testing.T) {
	got := toDomainCategories([]config.Category{
		{ID: "mcp", Name: "MCP Servers"},
		{ID: "themes"},
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Name != "MCP Servers" {
		t.Errorf("name = %q", got[0].Name)
	}
	if got[1].Name != "themes" {
		t.Errorf("missing name should fall back to the id, got %q", got[1].Name)
	}
}

func TestLexerHint(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"", ""},
		{"deploy.sh", "deploy.sh"},
		{"public/examples/mcp/git.yaml", "git.yaml"},
		{"reviewer.md", ""},
	}

	for _, tt := range tests {
		if got := lexerHint(domain.Asset{File: tt.file}); got != tt.want {
			t.Errorf("lexerHint(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestIsExampleEvent(t *testing.T) {
	exampleRepo = repository.NewExampleRepository(&workspace.Workspace{}, nil)

	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"/x/mcp/git.yaml", fsnotify.Write, true},
		{"/x/mcp/git.yaml", fsnotify.Remove, true},
		{"/x/mcp/git.yaml", fsnotify.Chmod, false},
		{"/x/mcp/.git.yaml.swp", fsnotify.Write, false},
		{"/x/mcp/git.yaml~", fsnotify.Write, false},
		{"/x/mcp/image.png", fsnotify.Create, false},
	}

	for _, tt := range tests {
		if got := isExampleEvent(fsnotify.Event{Name: tt.name, Op: tt.op}); got != tt.want {
			t.Errorf("isExampleEvent(%s %v) = %v, want %v", tt.name, tt.op, got, tt.want)
		}
	}
}

func TestNewCatalogSource(t *testing.T) {
	appConfig = config.DefaultConfig()
	appWorkspace = &workspace.Workspace{
		ExamplesPath: "/proj/public/examples",
		OutputPath:   "/proj/public/examples-data.json",
		ManifestPath: "/proj/public/examples-manifest.json",
	}
	t.Cleanup(func() {
		flagSource = ""
		flagManifest = false
	})

	src, ok := newCatalogSource().(*source.ArtifactSource)
	if !ok {
		t.Fatal("expected artifact source by default")
	}
	if src.Location() != appWorkspace.OutputPath {
		t.Errorf("location = %q", src.Location())
	}

	flagSource = "https://example.com/examples-data.json"
	src, _ = newCatalogSource().(*source.ArtifactSource)
	if src == nil || src.Location() != flagSource {
		t.Error("--source should override the artifact location")
	}

	flagManifest = true
	if _, ok := newCatalogSource().(*source.ManifestSource); !ok {
		t.Error("--manifest should select the manifest source")
	}
}

// TestBuildAndQuery runs the commands end to end against a temporary project
func TestBuildAndQuery(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	root := t.TempDir()

	files := map[string]string{
		"public/examples/mcp/git.yaml":      "---\ntitle: Git MCP Server\ntags: [git]\n---\ngit: {}\n",
		"public/examples/mcp/database.yaml": "---\ntitle: Database MCP Server\n---\ndb: {}\n",
		"public/examples/scripts/deploy.sh": "echo deploy\n",
		"public/examples/scripts/backup.py": "print('backup')\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Cleanup(func() { flagRoot = "" })

	rootCmd.SetArgs([]string{"--root", root, "build"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "public", "examples-data.json")); err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "public", "examples-manifest.json")); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}

	rootCmd.SetArgs([]string{"--root", root, "categories"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("categories failed: %v", err)
	}

	ctx := getContext()
	if got := len(catalogService.LoadByCategory(ctx, "mcp")); got != 2 {
		t.Errorf("expected 2 mcp assets, got %d", got)
	}
	if _, ok := catalogService.GetByID(ctx, "scripts-deploy"); !ok {
		t.Error("scripts-deploy should be indexed")
	}

	rootCmd.SetArgs([]string{"--root", root, "show", "--raw", "mcp-git"})
	if err := rootCmd.Execute(); err != nil {
		t.Errorf("show failed: %v", err)
	}

	rootCmd.SetArgs([]string{"--root", root, "show", "mcp-missing"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("show of an unknown id should fail")
	}
}
