package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/pkg/ui"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"s"},
	Short:   "Search assets by title, description, author, category or tag",
	Long: `Search assets with a case-insensitive substring match over title,
description, author, category and tags. Results keep the newest-first order.

Examples:
  adir search github
  adir search "code review"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	query := strings.Join(args, " ")

	results := catalogService.Search(ctx, query)
	if len(results) == 0 {
		fmt.Println(ui.FormatWarning("No assets found matching: " + query))
		return nil
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("Results for %q", query)))
	fmt.Println()
	renderAssetTable(results)
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d assets", len(results))))
	return nil
}
