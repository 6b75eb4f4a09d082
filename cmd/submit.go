package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/services"
	"github.com/kamal-hamza/adir/pkg/ui"
)

var (
	submitTitle       string
	submitDescription string
	submitCategory    string
	submitAuthor      string
	submitTags        string
	submitCode        string
	submitCodeFile    string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an asset for review",
	Long: `Record a contributed asset as a pending submission.

Submissions are stored locally and never appear in list, search or show
until a maintainer adds them to the examples directory.

Examples:
  adir submit --title "Jira MCP" --description "Jira issues" \
    --category mcp --author me --tags jira,issues --code-file jira.json`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitTitle, "title", "t", "", "Title (required)")
	submitCmd.Flags().StringVarP(&submitDescription, "description", "d", "", "Description (required)")
	submitCmd.Flags().StringVarP(&submitCategory, "category", "c", "", "Category slug or display name (required)")
	submitCmd.Flags().StringVarP(&submitAuthor, "author", "a", "", "Author (required)")
	submitCmd.Flags().StringVar(&submitTags, "tags", "", "Comma-separated tags")
	submitCmd.Flags().StringVar(&submitCode, "code", "", "Code or configuration")
	submitCmd.Flags().StringVar(&submitCodeFile, "code-file", "", "Read the code from this file")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	code := submitCode
	if submitCodeFile != "" {
		data, err := os.ReadFile(submitCodeFile)
		if err != nil {
			return fmt.Errorf("failed to read code file: %w", err)
		}
		code = string(data)
	}

	req := services.SubmitRequest{
		Title:       submitTitle,
		Description: submitDescription,
		Category:    domain.CategorySlug(appCategories, submitCategory),
		Code:        code,
		Author:      submitAuthor,
		Tags:        submitTags,
	}

	sub, err := submitService.Submit(ctx, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSubmission) {
			fmt.Println(ui.FormatError("Please fill in all required fields"))
		} else {
			fmt.Println(ui.FormatError("Failed to submit asset"))
		}
		return err
	}

	fmt.Println(ui.FormatSuccess("Asset submitted for review!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", sub.ID))
	fmt.Println(ui.RenderKeyValue("Title", sub.Title))
	fmt.Println(ui.RenderKeyValue("Category", domain.CategoryFromSlug(appCategories, sub.Category)))
	fmt.Println(ui.RenderKeyValue("Status", sub.Status))
	fmt.Println()
	fmt.Println(ui.FormatMuted("Stored in: " + appWorkspace.PendingPath()))
	return nil
}
