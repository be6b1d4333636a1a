package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

var (
	changeType        string
	changeComponent   string
	changePrevious    string
	changeNew         string
	changeDescription string
	changeDate        string
	changeNotes       string
	changeInteractive bool
)

// changeCmd represents the change command
var changeCmd = &cobra.Command{
	Use:     "change [asset]",
	Aliases: []string{"log"},
	Short:   "Log a change made to a computer",
	Long: `Append a change record to a computer's history.

Types: Hardware (default), Software, Operating System (or "os"), Maintenance.
Required: component, new value, description. The date defaults to today.

Examples:
  inv change PC-1 --component RAM --previous 16GB --new 32GB -d "Memory upgrade"
  inv change PC-1 -t os --component OS --new "Windows 11" -d "OS upgrade" --date 2024-03-05
  inv change -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChange,
}

func init() {
	changeCmd.Flags().StringVarP(&changeType, "type", "t", string(domain.ChangeHardware), "Change type")
	changeCmd.Flags().StringVar(&changeComponent, "component", "", "Component affected (required)")
	changeCmd.Flags().StringVar(&changePrevious, "previous", "", "Previous value")
	changeCmd.Flags().StringVar(&changeNew, "new", "", "New value (required)")
	changeCmd.Flags().StringVarP(&changeDescription, "description", "d", "", "Description (required)")
	changeCmd.Flags().StringVar(&changeDate, "date", "", "Date of the change (YYYY-MM-DD, default today)")
	changeCmd.Flags().StringVar(&changeNotes, "notes", "", "Additional notes")
	changeCmd.Flags().BoolVarP(&changeInteractive, "interactive", "i", false, "Prompt for each field")
}

func runChange(cmd *cobra.Command, args []string) error {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}

	owner, err := resolveAsset(ref)
	if err != nil {
		return err
	}

	changeKind, err := domain.ParseChangeType(changeType)
	if err != nil {
		return err
	}

	draft := domain.ChangeDraft{
		Type:          changeKind,
		Component:     changeComponent,
		PreviousValue: changePrevious,
		NewValue:      changeNew,
		Description:   changeDescription,
		Date:          changeDate,
		Notes:         changeNotes,
	}
	if draft.Date == "" {
		draft.Date = today()
	}

	if changeInteractive {
		fmt.Println(ui.FormatInfo("Logging a change for " + ui.FormatBold(owner.Name)))
		promptChangeDraft(bufio.NewReader(os.Stdin), &draft)
	}

	resp, err := createChangeService.Execute(getContext(), owner.ID, draft)
	if err != nil {
		if printValidationError(os.Stdout, err) {
			return fmt.Errorf("change not saved")
		}
		fmt.Println(ui.FormatError("Failed to save change"))
		return err
	}

	c := resp.Change
	fmt.Println(ui.StyleSuccess.Render(fmt.Sprintf("%s Logged %s change for %s",
		ui.IconChange,
		ui.ChangeTypeStyle(string(c.Type)).Render(string(c.Type)),
		ui.FormatBold(resp.Asset.Name))))
	fmt.Println(ui.RenderKeyValue(c.Component, c.GetTransitionString()))

	return nil
}

// promptChangeDraft asks for every field, offering the current value as default
func promptChangeDraft(reader *bufio.Reader, d *domain.ChangeDraft) {
	for {
		answer := promptLine(reader, "Type (Hardware/Software/Operating System/Maintenance)", string(d.Type))
		t, err := domain.ParseChangeType(answer)
		if err == nil {
			d.Type = t
			break
		}
		fmt.Println(ui.FormatWarning(err.Error()))
	}
	d.Component = promptLine(reader, "Component", d.Component)
	d.PreviousValue = promptLine(reader, "Previous value", d.PreviousValue)
	d.NewValue = promptLine(reader, "New value", d.NewValue)
	d.Description = promptLine(reader, "Description", d.Description)
	d.Date = promptLine(reader, "Date (YYYY-MM-DD)", d.Date)
	d.Notes = promptLine(reader, "Notes", d.Notes)
}
