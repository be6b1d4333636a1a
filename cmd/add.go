package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

// assetFlags binds one flag per asset draft field
type assetFlags struct {
	name, brand, model, serial, os, processor string
	ram, storage, graphics, purchased         string
	location, status                          string
}

func (f *assetFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Computer name (required)")
	fs.StringVar(&f.brand, "brand", "", "Manufacturer (required)")
	fs.StringVar(&f.model, "model", "", "Model (required)")
	fs.StringVar(&f.serial, "serial", "", "Serial number")
	fs.StringVar(&f.os, "os", "", "Operating system (required)")
	fs.StringVar(&f.processor, "cpu", "", "Processor (required)")
	fs.StringVar(&f.ram, "ram", "", "Memory, e.g. 16GB (required)")
	fs.StringVar(&f.storage, "storage", "", "Storage, e.g. 512GB SSD (required)")
	fs.StringVar(&f.graphics, "gpu", "", "Graphics")
	fs.StringVar(&f.purchased, "purchased", "", "Purchase date (YYYY-MM-DD)")
	fs.StringVar(&f.location, "location", "", "Location (required)")
	fs.StringVar(&f.status, "status", "", "Status: Active, Maintenance or Retired")
}

// apply copies every flag the user set onto draft
func (f *assetFlags) apply(fs *pflag.FlagSet, draft *domain.AssetDraft) error {
	set := func(name string, dst *string, value string) {
		if fs.Changed(name) {
			*dst = value
		}
	}
	set("name", &draft.Name, f.name)
	set("brand", &draft.Brand, f.brand)
	set("model", &draft.Model, f.model)
	set("serial", &draft.SerialNumber, f.serial)
	set("os", &draft.OperatingSystem, f.os)
	set("cpu", &draft.Processor, f.processor)
	set("ram", &draft.RAM, f.ram)
	set("storage", &draft.Storage, f.storage)
	set("gpu", &draft.Graphics, f.graphics)
	set("purchased", &draft.PurchaseDate, f.purchased)
	set("location", &draft.Location, f.location)

	if fs.Changed("status") {
		status, err := domain.ParseStatus(f.status)
		if err != nil {
			return err
		}
		draft.Status = status
	}
	return nil
}

// anyChanged reports whether at least one asset field flag was given
func (f *assetFlags) anyChanged(fs *pflag.FlagSet) bool {
	for _, name := range []string{"name", "brand", "model", "serial", "os", "cpu", "ram", "storage", "gpu", "purchased", "location", "status"} {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

var (
	addFlags       assetFlags
	addInteractive bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Register a new computer",
	Long: `Register a new computer in the inventory.

Required: name, brand, model, os, cpu, ram, storage, location and status.
Status defaults to the configured default (Active).

Examples:
  inv add --name PC-1 --brand Dell --model "OptiPlex 7090" --os "Windows 11" \
          --cpu "i7-11700" --ram 32GB --storage "1TB NVMe" --location "Office 2"

  # Prompt for every field
  inv add -i`,
	RunE: runAdd,
}

func init() {
	addFlags.register(addCmd.Flags())
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "Prompt for each field")
}

func runAdd(cmd *cobra.Command, args []string) error {
	defaultStatus, err := domain.ParseStatus(appConfig.DefaultStatus)
	if err != nil {
		return fmt.Errorf("config default_status: %w", err)
	}

	draft := domain.AssetDraft{
		Status:   defaultStatus,
		Location: appConfig.DefaultLocation,
	}
	if err := addFlags.apply(cmd.Flags(), &draft); err != nil {
		return err
	}

	if addInteractive {
		promptAssetDraft(bufio.NewReader(os.Stdin), &draft)
	}

	resp, err := createAssetService.Execute(getContext(), draft)
	if err != nil {
		if printValidationError(os.Stdout, err) {
			return fmt.Errorf("asset not saved")
		}
		fmt.Println(ui.FormatError("Failed to save asset"))
		return err
	}

	a := resp.Asset
	fmt.Println(ui.FormatSuccess("Added " + ui.FormatBold(a.Name)))
	fmt.Println(ui.RenderKeyValue("ID", a.ID))
	fmt.Println(ui.RenderKeyValue("Status", ui.FormatStatus(string(a.Status))))
	fmt.Println()
	fmt.Println(ui.FormatMuted("Log a change with: inv change " + a.ShortID()))

	return nil
}

// promptAssetDraft asks for every field, offering the current value as default
func promptAssetDraft(reader *bufio.Reader, d *domain.AssetDraft) {
	d.Name = promptLine(reader, "Name", d.Name)
	d.Brand = promptLine(reader, "Brand", d.Brand)
	d.Model = promptLine(reader, "Model", d.Model)
	d.SerialNumber = promptLine(reader, "Serial number", d.SerialNumber)
	d.OperatingSystem = promptLine(reader, "Operating system", d.OperatingSystem)
	d.Processor = promptLine(reader, "Processor", d.Processor)
	d.RAM = promptLine(reader, "RAM", d.RAM)
	d.Storage = promptLine(reader, "Storage", d.Storage)
	d.Graphics = promptLine(reader, "Graphics", d.Graphics)
	d.PurchaseDate = promptLine(reader, "Purchase date (YYYY-MM-DD)", d.PurchaseDate)
	d.Location = promptLine(reader, "Location", d.Location)

	for {
		answer := promptLine(reader, "Status (Active/Maintenance/Retired)", string(d.Status))
		status, err := domain.ParseStatus(answer)
		if err == nil {
			d.Status = status
			return
		}
		fmt.Println(ui.FormatWarning(err.Error()))
	}
}
