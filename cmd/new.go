package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/pkg/metadata"
	"github.com/kamal-hamza/adir/pkg/ui"
)

var (
	newFile        string
	newAuthor      string
	newDescription string
	newTags        []string
	newCodeFile    string
	newEdit        bool
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <category> <title>",
	Short: "Scaffold a new example file with front matter",
	Long: `Create a new example file in a category directory, pre-filled with
front matter. The file name defaults to the slugified title with a .md
extension; the asset id will be <category>-<file stem>.

Examples:
  adir new mcp "Git MCP Server" --tags git,vcs
  adir new scripts "Nightly Backup" --file backup.sh --code-file ./backup.sh
  adir new microagents "Code Reviewer" --edit`,
	Args: cobra.ExactArgs(2),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newFile, "file", "f", "", "File name inside the category directory")
	newCmd.Flags().StringVar(&newAuthor, "author", "", "Author (default Anonymous)")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Short description")
	newCmd.Flags().StringSliceVar(&newTags, "tags", []string{}, "Tags (comma-separated)")
	newCmd.Flags().StringVar(&newCodeFile, "code-file", "", "Read the example body from this file")
	newCmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "Open the new file in $EDITOR")
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	category := domain.CategorySlug(appCategories, args[0])
	if !domain.IsKnownCategory(appCategories, category) {
		return fmt.Errorf("unknown category %q (see 'adir categories')", args[0])
	}
	title := strings.TrimSpace(args[1])

	filename := newFile
	if filename == "" {
		filename = slugify(title) + ".md"
	}

	body := ""
	if newCodeFile != "" {
		data, err := os.ReadFile(newCodeFile)
		if err != nil {
			return fmt.Errorf("failed to read code file: %w", err)
		}
		body = string(data)
	}

	author := newAuthor
	if author == "" {
		author = domain.DefaultAuthor
	}

	meta := map[string]any{
		"title":     title,
		"author":    author,
		"createdAt": domain.FormatTimestamp(time.Now()),
		"tags":      newTags,
	}
	if newDescription != "" {
		meta["description"] = newDescription
	}

	content, err := metadata.Format(meta, body)
	if err != nil {
		return err
	}

	path, err := exampleRepo.Create(ctx, category, filename, content)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create example"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Example created!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", domain.DeriveID(category, filename)))
	fmt.Println(ui.RenderKeyValue("Title", title))
	fmt.Println(ui.RenderKeyValue("File", path))
	if len(newTags) > 0 {
		fmt.Println(ui.RenderKeyValue("Tags", strings.Join(newTags, ", ")))
	}
	fmt.Println()

	if newEdit {
		if err := openInEditor(path); err != nil {
			fmt.Println(ui.FormatWarning("Failed to open editor: " + err.Error()))
			fmt.Println(ui.FormatInfo("You can manually edit: " + path))
		}
	}

	fmt.Println(ui.FormatMuted("Run 'adir build' to add it to the index"))
	return nil
}

// slugify lowercases s and joins its alphanumeric runs with hyphens
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "example-" + time.Now().Format("20060102150405")
	}
	return slug
}
