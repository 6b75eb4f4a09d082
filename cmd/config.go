package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/adir/pkg/config"
	"github.com/kamal-hamza/adir/pkg/ui"
)

var (
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(appConfigPath); err == nil && !configInitForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", appConfigPath)
		}
		if err := config.DefaultConfig().Save(appConfigPath); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Config written to " + appConfigPath))
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the adir configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(appConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("config file not found at %s (run 'adir config init')", appConfigPath)
		}
		fmt.Println(ui.FormatInfo("Opening config: " + appConfigPath))
		return openInEditor(appConfigPath)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	status := ""
	if _, err := os.Stat(appConfigPath); os.IsNotExist(err) {
		status = ui.FormatMuted(" (not found, using defaults)")
	}

	fmt.Println(ui.FormatTitle("Configuration"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Config File", appConfigPath+status))
	fmt.Println(ui.RenderKeyValue("Root", appWorkspace.RootPath))
	fmt.Println(ui.RenderKeyValue("Examples", appWorkspace.ExamplesPath))
	fmt.Println(ui.RenderKeyValue("Output", appWorkspace.OutputPath))
	fmt.Println(ui.RenderKeyValue("Manifest", appWorkspace.ManifestPath))
	fmt.Println(ui.RenderKeyValue("Pending", appWorkspace.PendingPath()))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Categories", strings.Join(appConfig.CategoryIDs(), ", ")))
	fmt.Println(ui.RenderKeyValue("Extensions", strings.Join(appConfig.Extensions, " ")))
	fmt.Println(ui.RenderKeyValue("Source", valueOr(appConfig.Source, "local build output")))
	fmt.Println(ui.RenderKeyValue("Use Manifest", fmt.Sprintf("%t", appConfig.UseManifest)))
	fmt.Println(ui.RenderKeyValue("Cache TTL", appConfig.CacheTTL().String()))
	fmt.Println(ui.RenderKeyValue("Moderation", fmt.Sprintf("%t", appConfig.Moderation)))
	fmt.Println(ui.RenderKeyValue("Page Size", fmt.Sprintf("%d", appConfig.PageSize)))
	fmt.Println(ui.RenderKeyValue("Recent Limit", fmt.Sprintf("%d", appConfig.RecentLimit)))
	fmt.Println(ui.RenderKeyValue("Log Level", appConfig.LogLevel))
	fmt.Println(ui.RenderKeyValue("Metrics File", valueOr(appConfig.MetricsFile, "disabled")))
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
