package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/core/services"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import computers and changes from a JSON export",
	Long: `Merge a JSON document of the form {"computers": [...], "changes": [...]}
into the inventory. This is the layout written by 'inv export' and by the
browser version of the tracker.

Records whose id already exists are skipped, as are computers with an
unknown status and changes with an unknown type. Use - to read stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "Report what would be imported without saving")
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	resp, err := importService.Execute(getContext(), r, services.ImportRequest{DryRun: importDryRun})
	if err != nil {
		if resp != nil && resp.AssetsAdded > 0 {
			fmt.Println(ui.FormatWarning(fmt.Sprintf("%d computers were saved before the import failed; their changes were not", resp.AssetsAdded)))
		}
		fmt.Println(ui.FormatError("Import failed"))
		return err
	}

	verb := "Imported"
	if importDryRun {
		verb = "Would import"
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s %d computers and %d changes", verb, resp.AssetsAdded, resp.ChangesAdded)))

	if resp.Duplicates > 0 {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("  %d records already present", resp.Duplicates)))
	}
	if resp.Invalid > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d records skipped (missing id, unknown status or type)", resp.Invalid)))
	}
	if resp.DanglingChange > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d changes refer to computers that are not in the inventory", resp.DanglingChange)))
	}

	return nil
}
