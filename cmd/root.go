package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/adir/internal/adapters/metrics"
	"github.com/kamal-hamza/adir/internal/adapters/repository"
	"github.com/kamal-hamza/adir/internal/adapters/source"
	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports"
	"github.com/kamal-hamza/adir/internal/core/services"
	"github.com/kamal-hamza/adir/pkg/config"
	"github.com/kamal-hamza/adir/pkg/logging"
	"github.com/kamal-hamza/adir/pkg/ui"
	"github.com/kamal-hamza/adir/pkg/workspace"
)

var (
	// Global flags
	flagConfigPath string
	flagRoot       string
	flagSource     string
	flagManifest   bool
	flagVerbose    bool

	// Resolved environment
	appConfig     *config.Config
	appConfigPath string
	appWorkspace  *workspace.Workspace
	appCategories []domain.Category
	logger        *zap.Logger
	appMetrics    *metrics.Collector

	// Services
	indexerService *services.IndexerService
	catalogService *services.CatalogService
	submitService  *services.SubmitService

	// Repositories
	exampleRepo  *repository.ExampleRepository
	pendingStore *repository.PendingStore
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "adir",
	Short: "adir - index and browse a directory of reusable assets",
	Long: ui.StyleTitle.Render("adir") + " - Asset Directory\n\n" +
		"Builds a searchable index of configuration snippets, scripts and agent\n" +
		"definitions from a folder of example files, then lists, searches and\n" +
		"shows them from the generated index.",
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: finalizeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/adir/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Project root holding the examples (default is the working directory)")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "Read assets from this artifact path or URL instead of the built one")
	rootCmd.PersistentFlags().BoolVar(&flagManifest, "manifest", false, "Load assets file by file through the generated manifest")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Version needs no environment
	if cmd.Name() == "version" {
		return nil
	}

	path := flagConfigPath
	if path == "" {
		p, err := workspace.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	appConfig = cfg
	appConfigPath = path

	ui.SetTheme(cfg.ColorTheme)

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	l, err := logging.New(level, flagVerbose)
	if err != nil {
		return err
	}
	logger = l

	ws, err := workspace.New(flagRoot, workspace.Layout{
		ExamplesDir:  cfg.ExamplesDir,
		OutputFile:   cfg.OutputFile,
		ManifestFile: cfg.ManifestFile,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	appWorkspace = ws
	appCategories = toDomainCategories(cfg.Categories)

	appMetrics = metrics.NewCollector("adir")

	// Initialize repositories
	exampleRepo = repository.NewExampleRepository(appWorkspace, cfg.Extensions)
	pendingStore = repository.NewPendingStore(appWorkspace.PendingPath())

	// Initialize services
	indexerService = services.NewIndexerService(exampleRepo, appWorkspace.OutputPath, appWorkspace.ManifestPath, logger)
	catalogService = services.NewCatalogService(newCatalogSource(),
		services.WithTTL(cfg.CacheTTL()),
		services.WithLogger(logger),
		services.WithModeration(cfg.Moderation),
		services.WithCategories(appCategories),
		services.WithCacheObserver(appMetrics),
	)
	submitService = services.NewSubmitService(pendingStore, appCategories, logger)

	logger.Debug("initialized",
		zap.String("config", appConfigPath),
		zap.String("root", appWorkspace.RootPath),
		zap.String("examples", appWorkspace.ExamplesPath),
	)

	return nil
}

// newCatalogSource picks where the catalog reads assets from: the manifest
// path when requested, otherwise an artifact (flag, config, then the local build output).
func newCatalogSource() ports.Source {
	if flagManifest || appConfig.UseManifest {
		base := appConfig.AssetBase
		if base == "" {
			base = appWorkspace.ExamplesPath
		}
		manifest := appWorkspace.ManifestPath
		if flagSource != "" {
			manifest = flagSource
		}
		return source.NewManifestSource(manifest, base, logger)
	}

	location := flagSource
	if location == "" {
		location = appConfig.Source
	}
	if location == "" {
		location = appWorkspace.OutputPath
	}
	return source.NewArtifactSource(location)
}

func toDomainCategories(categories []config.Category) []domain.Category {
	out := make([]domain.Category, len(categories))
	for i, c := range categories {
		name := c.Name
		if name == "" {
			name = c.ID
		}
		out[i] = domain.Category{ID: c.ID, Name: name, Description: c.Description}
	}
	return out
}

// finalizeApp writes the metrics textfile and flushes the logger
func finalizeApp(cmd *cobra.Command, args []string) error {
	flushMetrics()
	if logger != nil {
		// Sync on stderr returns EINVAL on some platforms
		_ = logger.Sync()
	}
	return nil
}

// flushMetrics writes the metrics textfile when metrics_file is configured
func flushMetrics() {
	if appMetrics == nil || appConfig == nil || appConfig.MetricsFile == "" {
		return
	}
	if err := appMetrics.WriteTextfile(appConfig.MetricsFile); err != nil {
		logger.Warn("failed to write metrics", zap.Error(err))
	}
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
