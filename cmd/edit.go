package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

var editFlags assetFlags

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:     "edit [asset]",
	Aliases: []string{"e"},
	Short:   "Edit a computer's details",
	Long: `Edit the details of an existing computer.

The asset can be given by id, id prefix or name. Without an argument a
fuzzy finder opens. Without field flags the record opens in your editor
as YAML. The id and creation time never change.

Examples:
  inv edit PC-1 --ram 64GB --status Maintenance
  inv edit 3f2a9c10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editFlags.register(editCmd.Flags())
}

func runEdit(cmd *cobra.Command, args []string) error {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}

	target, err := resolveAsset(ref)
	if err != nil {
		return err
	}

	draft := target.Draft()
	if editFlags.anyChanged(cmd.Flags()) {
		if err := editFlags.apply(cmd.Flags(), &draft); err != nil {
			return err
		}
	} else {
		fmt.Println(ui.FormatInfo("Opening " + target.Name + " in " + GetPreferredEditor()))
		var edited domain.AssetDraft
		if err := editAsYAML(draft, &edited); err != nil {
			return err
		}
		draft = edited
	}

	resp, err := updateAssetService.Execute(getContext(), target.ID, draft)
	if err != nil {
		if printValidationError(os.Stdout, err) {
			return fmt.Errorf("asset not saved")
		}
		return err
	}

	if len(resp.Changed) == 0 {
		fmt.Println(ui.FormatInfo("No changes"))
		return nil
	}

	fmt.Println(ui.FormatSuccess("Updated " + ui.FormatBold(resp.Asset.Name)))
	fmt.Println(ui.RenderKeyValue("Changed", ""))
	fmt.Print(ui.RenderSimpleList(resp.Changed))

	return nil
}
