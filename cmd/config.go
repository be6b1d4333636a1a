package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/inv-cli/pkg/config"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the inv configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appVault.ConfigPath

		// Ensure it exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			fmt.Println(ui.FormatInfo("Created default config"))
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))
		if err := runEditor(path); err != nil {
			return err
		}

		// Report problems now rather than on the next command
		if _, err := config.Load(path); err != nil {
			fmt.Println(ui.FormatWarning("The config file has problems: " + err.Error()))
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (file plus INV_* overrides)",
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *appConfig
		if shown.Storage.RedisPassword != "" {
			shown.Storage.RedisPassword = "********"
		}

		data, err := yaml.Marshal(&shown)
		if err != nil {
			return err
		}

		out := string(data)
		if isTerminal(os.Stdout) {
			out = highlight(out, "yaml")
		}
		fmt.Print(out)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(appVault.ConfigPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
