package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/pkg/ui"
)

var (
	pendingClear bool
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List submissions awaiting review",
	Args:  cobra.NoArgs,
	RunE:  runPending,
}

func init() {
	pendingCmd.Flags().BoolVar(&pendingClear, "clear", false, "Delete all local submissions")
}

func runPending(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if pendingClear {
		if err := appWorkspace.ClearState(); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Pending submissions cleared"))
		return nil
	}

	submissions, err := submitService.Pending(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to read pending submissions"))
		return err
	}

	if len(submissions) == 0 {
		fmt.Println(ui.FormatInfo("No pending submissions"))
		return nil
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("%s Pending (%d)", ui.IconPending, len(submissions))))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Align: "left"},
		{Header: "Title", MaxWidth: 36, Align: "left"},
		{Header: "Category", Align: "left"},
		{Header: "Author", MaxWidth: 18, Align: "left"},
		{Header: "Submitted", Align: "left"},
	})
	for _, s := range submissions {
		submitted := domain.Asset{CreatedAt: s.CreatedAt}
		table.AddRow([]string{
			s.ID,
			s.Title,
			domain.CategoryFromSlug(appCategories, s.Category),
			s.Author,
			submitted.DisplayDate(),
		})
	}
	fmt.Print(table.Render())
	return nil
}
