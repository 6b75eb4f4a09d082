package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/pkg/ui"
)

// GetPreferredEditor returns the editor command from env, or default
func GetPreferredEditor() string {
	if env := os.Getenv("VISUAL"); env != "" {
		return env
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}

// openInEditor opens path in the user's editor and waits for it to exit
func openInEditor(path string) error {
	editor := GetPreferredEditor()

	fmt.Println(ui.FormatInfo("Opening in editor: " + editor))
	fmt.Println()

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// hintIfUnbuilt tells the user to run build when the catalog reads a local
// artifact that has not been generated yet
func hintIfUnbuilt() {
	if flagSource != "" || flagManifest || appConfig.Source != "" || appConfig.UseManifest {
		return
	}
	if !indexerService.ArtifactExists() {
		fmt.Println(ui.FormatInfo("No index found. Run 'adir build' first"))
	}
}

// selectAsset resolves an asset by id, or lets the user pick one
// interactively when no id is given. ok is false when nothing was selected.
func selectAsset(args []string) (domain.Asset, bool, error) {
	ctx := getContext()

	if len(args) > 0 {
		asset, found := catalogService.GetByID(ctx, args[0])
		if !found {
			return domain.Asset{}, false, fmt.Errorf("asset not found: %s", args[0])
		}
		return asset, true, nil
	}

	assets := catalogService.LoadAll(ctx)
	if len(assets) == 0 {
		fmt.Println(ui.FormatWarning("No assets found"))
		hintIfUnbuilt()
		return domain.Asset{}, false, nil
	}

	idx, err := fuzzyfinder.Find(
		assets,
		func(i int) string {
			a := assets[i]
			return fmt.Sprintf("%s  %s  %s", a.Title, a.Category, a.TagsString())
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return renderAssetPreview(assets[i])
		}),
	)
	if err != nil {
		// User cancelled
		fmt.Println(ui.FormatInfo("Selection cancelled."))
		return domain.Asset{}, false, nil
	}

	return assets[idx], true, nil
}

// renderAssetTable prints assets as a table
func renderAssetTable(assets []domain.Asset) {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Align: "left"},
		{Header: "Title", MaxWidth: 36, Align: "left"},
		{Header: "Category", Align: "left"},
		{Header: "Author", MaxWidth: 18, Align: "left"},
		{Header: "Date", Width: 12, Align: "left"},
		{Header: "Tags", MaxWidth: 30, Align: "left"},
	})

	for _, a := range assets {
		table.AddRow([]string{
			a.ID,
			a.Title,
			domain.CategoryFromSlug(appCategories, a.Category),
			a.Author,
			a.DisplayDate(),
			a.TagsString(),
		})
	}

	fmt.Print(table.Render())
}

// renderAssetDetail prints the full view of one asset
func renderAssetDetail(a domain.Asset, highlight bool) {
	fmt.Println(ui.FormatAsset(a.Title))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", a.ID))
	fmt.Println(ui.RenderKeyValue("Category", domain.CategoryFromSlug(appCategories, a.Category)))
	fmt.Println(ui.RenderKeyValue("Author", a.Author))
	fmt.Println(ui.RenderKeyValue("Created", a.DisplayDate()))
	fmt.Println(ui.RenderKeyValue("Tags", ui.FormatTags(a.Tags)))
	if a.File != "" {
		fmt.Println(ui.RenderKeyValue("File", a.File))
	}
	if a.Description != "" {
		fmt.Println()
		fmt.Println(a.Description)
	}
	fmt.Println()
	fmt.Println(ui.StyleHeader.Render("Code"))

	code := a.Code
	if highlight {
		code = ui.Highlight(code, lexerHint(a), appConfig.HighlightStyle)
	}
	fmt.Println(code)
}

func renderAssetPreview(a domain.Asset) string {
	var s strings.Builder
	s.WriteString(ui.StyleBold.Render(a.Title) + "\n")
	s.WriteString(fmt.Sprintf("%s · %s · %s\n", a.ID, a.Author, a.DisplayDate()))
	if a.Description != "" {
		s.WriteString("\n" + a.Description + "\n")
	}
	s.WriteString("\n" + a.Code)
	return s.String()
}

// lexerHint is the filename used to choose a highlighter for an asset's code
func lexerHint(a domain.Asset) string {
	if a.File == "" {
		return ""
	}
	name := filepath.Base(a.File)
	// Markdown files carry front matter, but the body is usually the snippet itself
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return ""
	}
	return name
}
