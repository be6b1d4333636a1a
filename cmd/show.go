package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/services"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

var (
	showCopy bool
	showJSON bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:     "show [asset]",
	Aliases: []string{"view"},
	Short:   "Show a computer and its change history",
	Long: `Show the full specification of a computer and its change history,
newest first.

The asset can be given by id, id prefix or name. Without an argument a
fuzzy finder opens.

Examples:
  inv show PC-1
  inv show 3f2a --copy
  inv show --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showCopy, "copy", "c", false, "Copy the asset id to the clipboard")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the asset and its changes as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}

	target, err := resolveAsset(ref)
	if err != nil {
		return err
	}

	view, err := listService.View(getContext(), target.ID)
	if err != nil {
		return err
	}

	if showJSON {
		data, err := json.MarshalIndent(struct {
			Asset   domain.Asset          `json:"computer"`
			Changes []domain.ChangeRecord `json:"changes"`
		}{view.Asset, view.Changes}, "", "  ")
		if err != nil {
			return err
		}
		out := string(data)
		if isTerminal(os.Stdout) {
			out = highlight(out, "json")
		}
		fmt.Println(out)
	} else {
		fmt.Print(renderAssetView(view, time.Now()))
	}

	if showCopy {
		if err := clipboard.WriteAll(view.Asset.ID); err != nil {
			fmt.Println(ui.FormatWarning("Could not copy to clipboard: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("ID copied to clipboard"))
		}
	}

	return nil
}

// renderAssetView renders the detail card and history of one asset
func renderAssetView(view *services.AssetView, now time.Time) string {
	a := view.Asset
	var s strings.Builder

	s.WriteString(ui.FormatTitle(a.Name))
	s.WriteString("  ")
	s.WriteString(ui.FormatStatus(string(a.Status)))
	s.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			value = ui.StyleMuted.Render("-")
		}
		s.WriteString(ui.StyleLabel.Render(label))
		s.WriteString(value)
		s.WriteString("\n")
	}

	field("Brand", a.Brand)
	field("Model", a.Model)
	field("Serial Number", a.SerialNumber)
	field("Operating System", a.OperatingSystem)
	field("Processor", a.Processor)
	field("RAM", a.RAM)
	field("Storage", a.Storage)
	field("Graphics", a.Graphics)
	purchased := ""
	if a.PurchaseDate != "" {
		purchased = displayDate(a.PurchaseDate) + ui.StyleMuted.Render(" ("+relativeDate(a.PurchaseDate, now)+")")
	}
	field("Purchase Date", purchased)
	field("Location", a.Location)
	field("ID", a.ID)
	field("Added", humanize.RelTime(a.CreatedAt, now, "ago", "from now"))
	s.WriteString("\n")

	s.WriteString(ui.StyleHeader.Render(fmt.Sprintf("Change History (%d)", len(view.Changes))))
	s.WriteString("\n")

	if len(view.Changes) == 0 {
		s.WriteString(ui.FormatMuted("  No changes recorded"))
		s.WriteString("\n")
		return s.String()
	}

	for _, c := range view.Changes {
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			ui.ChangeTypeStyle(string(c.Type)).Render(string(c.Type)),
			ui.StyleBold.Render(c.Component),
			ui.StyleMuted.Render(displayDate(c.Date)+" · "+relativeDate(c.Date, now)),
		))
		s.WriteString("  " + c.Description + "\n")
		s.WriteString("  " + ui.StyleAccent.Render(c.GetTransitionString()) + "\n")
		if c.Notes != "" {
			s.WriteString("  " + ui.StyleSubtle.Render(c.Notes) + "\n")
		}
	}

	return s.String()
}
