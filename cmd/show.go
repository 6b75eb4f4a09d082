package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	showRaw bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an asset with its code",
	Long: `Show one asset's details and code.

With no id an interactive fuzzy finder lists every asset.

Examples:
  adir show mcp-git
  adir show mcp-git --raw > git.yaml
  adir show`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print only the code, without formatting")
}

func runShow(cmd *cobra.Command, args []string) error {
	asset, ok, err := selectAsset(args)
	if err != nil || !ok {
		return err
	}

	if showRaw {
		fmt.Println(asset.Code)
		return nil
	}

	renderAssetDetail(asset, appConfig.SyntaxHighlighting)
	return nil
}
