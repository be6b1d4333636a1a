package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/pkg/config"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
	"github.com/kamal-hamza/inv-cli/pkg/vault"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the inventory",
	Long: `Initialize the inventory directory structure.

This creates the managed directory at ~/.local/share/inv/ (or $INV_HOME):
  - data/     : computers.json, changes.json (or inv.db with sqlite)
  - exports/  : Default location for 'inv export'
  - logs/     : Diagnostic log

and a default config.yaml in ~/.config/inv/.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	v, err := vault.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine inventory location"))
		return err
	}

	// Check if already initialized
	if v.Exists() {
		fmt.Println(ui.FormatWarning("Inventory already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + v.RootPath))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing inventory..."))
	fmt.Println()

	if err := v.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize inventory"))
		return err
	}

	// Create default config, keeping one that already exists
	if _, err := os.Stat(v.ConfigPath); os.IsNotExist(err) {
		if err := config.DefaultConfig().Save(v.ConfigPath); err != nil {
			// Don't fail - config is optional
			fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Default config created"))
		}
	}

	fmt.Println(ui.FormatSuccess("Inventory initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", v.RootPath))
	fmt.Println(ui.RenderKeyValue("Config", v.ConfigPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Add a computer: inv add -i"))
	fmt.Println(ui.FormatMuted("  2. Log a change:   inv change <name>"))
	fmt.Println(ui.FormatMuted("  3. Browse:         inv dashboard"))

	return nil
}
