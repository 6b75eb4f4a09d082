package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/pkg/ui"
)

var copyCmd = &cobra.Command{
	Use:     "copy [id]",
	Aliases: []string{"cp"},
	Short:   "Copy an asset's code to the clipboard",
	Long: `Copy an asset's code to the system clipboard.

With no id an interactive fuzzy finder lists every asset.

Examples:
  adir copy scripts-deploy
  adir copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	asset, ok, err := selectAsset(args)
	if err != nil || !ok {
		return err
	}

	if err := clipboard.WriteAll(asset.Code); err != nil {
		fmt.Println(ui.FormatWarning("Clipboard access failed, printing instead"))
		fmt.Println()
		fmt.Println(asset.Code)
		return nil
	}

	fmt.Println(ui.FormatSuccess("Copied " + asset.Title))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d bytes from %s", len(asset.Code), asset.ID)))
	return nil
}
