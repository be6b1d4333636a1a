package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/services"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

var (
	listSearch string
	listStatus string
	listJSON   bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List computers",
	Aliases: []string{"ls"},
	Long: `List computers in a table.

The search term matches name, brand, model and operating system
(case-insensitive). The status filter is exact.

Examples:
  inv list
  inv list --search dell
  inv list --status maintenance
  inv list -s ubuntu --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search name, brand, model and OS")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (Active, Maintenance, Retired)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print matching assets as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	status, err := domain.ParseStatus(listStatus)
	if err != nil {
		return err
	}

	ctx := getContext()
	resp, err := listService.Execute(ctx, services.ListRequest{
		Search: listSearch,
		Status: status,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list assets"))
		return err
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Assets)
	}

	// Handle empty results
	if len(resp.Assets) == 0 {
		if resp.Total == 0 {
			fmt.Println(ui.FormatWarning("No computers registered"))
			fmt.Println(ui.FormatInfo("Add your first one with: inv add -i"))
		} else {
			fmt.Println(ui.FormatWarning("No computers match the current filters"))
		}
		return nil
	}

	title := "Computers"
	if listSearch != "" || status != "" {
		title = fmt.Sprintf("Computers (%d of %d)", len(resp.Assets), resp.Total)
	}
	fmt.Println(ui.FormatTitle(title))
	fmt.Println()

	fmt.Print(renderAssetTable(resp.Assets, inventoryRepo.Snapshot(ctx).Changes))
	fmt.Println()

	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d computers", len(resp.Assets))))

	return nil
}

// renderAssetTable renders assets with their change counts
func renderAssetTable(assets []domain.Asset, changes []domain.ChangeRecord) string {
	counts := make(map[string]int, len(assets))
	for _, c := range changes {
		counts[c.AssetID]++
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: 8},
		{Header: "Name", MaxWidth: 24},
		{Header: "Brand / Model", MaxWidth: 28},
		{Header: "OS", MaxWidth: 20},
		{Header: "Location", MaxWidth: 18},
		{Header: "Status", Width: 11},
		{Header: "Changes", Align: "right"},
	})

	for _, a := range assets {
		table.AddRow([]string{
			a.ShortID(),
			a.Name,
			a.Brand + " " + a.Model,
			a.OperatingSystem,
			a.Location,
			string(a.Status),
			fmt.Sprintf("%d", counts[a.ID]),
		})
	}

	return table.Render()
}
