package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/pkg/ui"
)

var (
	listCategory string
	listPage     int
	listPageSize int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List assets page by page",
	Aliases: []string{"ls"},
	Long: `List assets newest first, one page at a time.

Examples:
  adir list
  adir list --category mcp
  adir list --category scripts --page 2 --page-size 10`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only list one category (slug or display name)")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page number, starting at 1")
	// Page size defaults to the config value, handled in runList
	listCmd.Flags().IntVar(&listPageSize, "page-size", 0, "Assets per page")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if !cmd.Flags().Changed("page-size") {
		listPageSize = appConfig.PageSize
	}

	category := ""
	if listCategory != "" {
		category = domain.CategorySlug(appCategories, listCategory)
	}

	page := catalogService.Paginate(ctx, category, listPage, listPageSize)

	if page.TotalCount == 0 {
		if category != "" {
			fmt.Println(ui.FormatWarning("No assets found in category: " + category))
		} else {
			fmt.Println(ui.FormatWarning("No assets found"))
			hintIfUnbuilt()
		}
		return nil
	}

	if category != "" {
		fmt.Println(ui.FormatTitle(domain.CategoryFromSlug(appCategories, category)))
	} else {
		fmt.Println(ui.FormatTitle("Assets"))
	}
	fmt.Println()

	if len(page.Items) == 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("Page %d is past the end (%d pages)", page.CurrentPage, page.TotalPages)))
		return nil
	}

	renderAssetTable(page.Items)
	fmt.Println()

	fmt.Println(ui.FormatMuted(fmt.Sprintf("Page %d of %d · %d assets", page.CurrentPage, page.TotalPages, page.TotalCount)))
	if page.HasNextPage {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Next: adir list --page %d", page.CurrentPage+1)))
	}

	return nil
}
