package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/pkg/ui"
)

var (
	recentLimit int
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the newest assets",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	// Defaults to the config value, handled in runRecent
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 0, "Number of assets to show")
}

func runRecent(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if !cmd.Flags().Changed("limit") {
		recentLimit = appConfig.RecentLimit
	}

	assets := catalogService.Recent(ctx, recentLimit)
	if len(assets) == 0 {
		fmt.Println(ui.FormatWarning("No assets found"))
		hintIfUnbuilt()
		return nil
	}

	fmt.Println(ui.FormatTitle("Recently added"))
	fmt.Println()
	renderAssetTable(assets)
	return nil
}
