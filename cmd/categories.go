package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/pkg/ui"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their asset counts",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Slug", Align: "left"},
		{Header: "Name", Align: "left"},
		{Header: "Assets", Align: "right"},
		{Header: "Description", MaxWidth: 50, Align: "left"},
	})

	total := 0
	for _, c := range catalogService.Categories(ctx) {
		table.AddRow([]string{c.ID, c.Name, fmt.Sprintf("%d", c.Count), c.Description})
		total += c.Count
	}

	fmt.Println(ui.FormatTitle("Categories"))
	fmt.Println()
	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d assets", total)))
	return nil
}
