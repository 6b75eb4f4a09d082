package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/adir/internal/core/services"
	"github.com/kamal-hamza/adir/pkg/ui"
)

var (
	watchQuiet bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index whenever an example changes",
	Long: `Watch the examples directory and rebuild the index on change.

This command monitors every category directory for:
  - New example files
  - Modified example files
  - Deleted or renamed example files

Bursts of changes are debounced (watch_debounce_ms) into one rebuild.

Use --quiet to suppress rebuild notifications.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress rebuild notifications")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := os.MkdirAll(appWorkspace.ExamplesPath, 0755); err != nil {
		return fmt.Errorf("failed to create examples directory: %w", err)
	}
	if err := watcher.Add(appWorkspace.ExamplesPath); err != nil {
		return fmt.Errorf("failed to watch examples directory: %w", err)
	}

	categories := appConfig.CategoryIDs()
	watched := make(map[string]bool)
	for _, c := range categories {
		dir := appWorkspace.CategoryPath(c)
		if err := watcher.Add(dir); err == nil {
			watched[dir] = true
		}
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Watching examples..."))
		fmt.Println(ui.FormatMuted("Directory: " + appWorkspace.ExamplesPath))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	rebuild := newDebouncedRebuild(ctx, categories, appConfig.WatchDebounce())
	defer rebuild.stop()

	// Initial build so the index matches the tree before the first change
	rebuild.trigger()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Category directories created after start
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == appWorkspace.ExamplesPath {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !watched[event.Name] {
					if err := watcher.Add(event.Name); err == nil {
						watched[event.Name] = true
					}
				}
				rebuild.trigger()
				continue
			}

			if !isExampleEvent(event) {
				continue
			}

			logger.Debug("example changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			rebuild.trigger()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", zap.Error(err))

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}

// isExampleEvent filters out editor temp files and unrecognised extensions
func isExampleEvent(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") || strings.HasSuffix(base, "~") {
		return false
	}
	if !exampleRepo.Recognises(base) {
		return false
	}
	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

// debouncedRebuild coalesces triggers into one index build per quiet period
type debouncedRebuild struct {
	ctx        context.Context
	categories []string
	delay      time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncedRebuild(ctx context.Context, categories []string, delay time.Duration) *debouncedRebuild {
	return &debouncedRebuild{ctx: ctx, categories: categories, delay: delay}
}

func (d *debouncedRebuild) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.run)
}

func (d *debouncedRebuild) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *debouncedRebuild) run() {
	if d.ctx.Err() != nil {
		return
	}

	if !watchQuiet {
		fmt.Println(ui.FormatInfo("Changes detected, rebuilding..."))
	}

	resp, err := indexerService.Execute(d.ctx, services.BuildRequest{
		Categories:      d.categories,
		AllowDuplicates: appConfig.AllowDuplicateIDs,
	})
	appMetrics.RecordBuild(resp, err)
	flushMetrics()
	if err != nil {
		if !watchQuiet {
			fmt.Println(ui.FormatError("Rebuild failed: " + err.Error()))
		}
		logger.Error("rebuild failed", zap.Error(err))
		return
	}
	catalogService.ClearCache()

	if !watchQuiet {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("Index updated (%d assets, %s)",
			resp.TotalAssets, resp.Duration.Round(time.Millisecond))))
	}
}
