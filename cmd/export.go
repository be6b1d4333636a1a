package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/core/services"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

var (
	exportFormat string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the inventory to JSON, YAML or Excel",
	Long: `Export every computer and change record.

Formats:
  json  - {"computers": [...], "changes": [...]}, the browser app's layout
  yaml  - the same document as YAML
  xlsx  - an Excel workbook with "Assets" and "Changes" sheets

Without a file argument the export is written to the exports directory
with a timestamped name. The format defaults to the file extension, then
to the configured default.

Examples:
  inv export
  inv export inventory.json
  inv export --format yaml --stdout`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format (json, yaml, xlsx)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write to standard output instead of a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	format, err := resolveExportFormat(exportFormat, target, appConfig.DefaultExportFormat)
	if err != nil {
		return err
	}

	ctx := getContext()

	if exportStdout {
		if format == services.FormatXLSX && isTerminal(os.Stdout) {
			return fmt.Errorf("refusing to write an Excel workbook to the terminal; pass a file name")
		}

		var buf bytes.Buffer
		if _, err := exportService.Execute(ctx, format, &buf); err != nil {
			return err
		}

		out := buf.String()
		if format != services.FormatXLSX && isTerminal(os.Stdout) {
			out = highlight(out, string(format))
		}
		fmt.Print(out)
		return nil
	}

	if target == "" {
		if err := os.MkdirAll(appVault.ExportsPath, 0755); err != nil {
			return fmt.Errorf("failed to create exports directory: %w", err)
		}
		target = appVault.GetExportPath(fmt.Sprintf("inventory-%s.%s", time.Now().Format("20060102-150405"), format.Extension()))
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer f.Close()

	resp, err := exportService.Execute(ctx, format, f)
	if err != nil {
		fmt.Println(ui.FormatError("Export failed"))
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Println(ui.StyleSuccess.Render(fmt.Sprintf("%s Exported %d computers and %d changes", ui.IconExport, resp.Assets, resp.Changes)))
	fmt.Println(ui.RenderKeyValue("File", target))

	return nil
}

// resolveExportFormat picks the flag, then the file extension, then the configured default
func resolveExportFormat(flag, target, fallback string) (services.ExportFormat, error) {
	if flag != "" {
		return services.ParseExportFormat(flag)
	}
	if ext := filepath.Ext(target); ext != "" {
		return services.ParseExportFormat(ext)
	}
	if fallback == "" {
		return services.FormatXLSX, nil
	}
	return services.ParseExportFormat(fallback)
}
