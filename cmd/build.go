package cmd

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/internal/core/services"
	"github.com/kamal-hamza/adir/pkg/ui"
)

var (
	buildAllowDuplicates bool
	buildDryRun          bool
)

var buildCmd = &cobra.Command{
	Use:     "build [category...]",
	Aliases: []string{"index"},
	Short:   "Rebuild the asset index from the examples directory",
	Long: `Rebuild the asset index by scanning every category directory.

This command:
  1. Lists the example files of each configured category
  2. Reads front matter (title, author, description, tags, dates)
  3. Derives each asset id as <category>-<file stem>
  4. Writes the aggregate artifact and the per-category manifest

Missing category directories are reported and skipped. Two files that
derive the same id abort the build unless --allow-duplicates is set.

Examples:
  adir build
  adir build mcp scripts
  adir build --dry-run`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildAllowDuplicates, "allow-duplicates", false, "Keep the first asset when two files derive the same id")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Scan and validate without writing the index")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	categories := args
	if len(categories) == 0 {
		categories = appConfig.CategoryIDs()
	}

	fmt.Println(ui.FormatRocket("Building asset index..."))
	fmt.Println()

	req := services.BuildRequest{
		Categories:      categories,
		AllowDuplicates: buildAllowDuplicates || appConfig.AllowDuplicateIDs,
		DryRun:          buildDryRun,
	}
	resp, err := indexerService.Execute(ctx, req)
	appMetrics.RecordBuild(resp, err)
	if err != nil {
		flushMetrics()
		if errors.Is(err, services.ErrDuplicateID) {
			fmt.Println(ui.FormatError("Build failed: duplicate asset ids"))
			fmt.Println(ui.FormatInfo("Rename one of the files, or pass --allow-duplicates"))
		} else {
			fmt.Println(ui.FormatError("Build failed"))
		}
		return err
	}

	printBuildSummary(resp)
	return nil
}

func printBuildSummary(resp *services.BuildResponse) {
	if buildDryRun {
		fmt.Println(ui.FormatSuccess("Dry run complete, nothing written"))
	} else {
		fmt.Println(ui.FormatSuccess("Index rebuilt successfully!"))
	}
	fmt.Println()

	categories := make([]string, 0, len(resp.PerCategory))
	for c := range resp.PerCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Println(ui.RenderKeyValue("Total Assets", fmt.Sprintf("%d", resp.TotalAssets)))
	for _, c := range categories {
		fmt.Println(ui.RenderKeyValue("  "+c, fmt.Sprintf("%d", resp.PerCategory[c])))
	}
	fmt.Println(ui.RenderKeyValue("Duration", resp.Duration.Round(time.Millisecond).String()))

	for _, c := range resp.Missing {
		fmt.Println(ui.FormatWarning("Category directory not found: " + c))
	}
	for _, f := range resp.Skipped {
		fmt.Println(ui.FormatWarning("Skipped unreadable file: " + f))
	}
	for _, id := range resp.Duplicates {
		fmt.Println(ui.FormatWarning("Dropped duplicate id: " + id))
	}
	if flagVerbose {
		for _, w := range resp.Warnings {
			fmt.Println(ui.FormatMuted(w))
		}
	}

	if !buildDryRun {
		fmt.Println()
		fmt.Println(ui.FormatIndex("Index saved to: " + resp.OutputPath))
		if resp.ManifestPath != "" {
			fmt.Println(ui.FormatMuted("Manifest saved to: " + resp.ManifestPath))
		}
	}
}
