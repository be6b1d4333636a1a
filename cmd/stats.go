package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/adapters/storage"
	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/services"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

var (
	statsHTML  string
	statsWatch bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show inventory statistics",
	Long: `Summarize the inventory.

Includes:
  - Computers per status (Active, Maintenance, Retired)
  - Changes logged in the last 30 days
  - Changes per type and per month

Use --html to write an interactive chart report, and --watch to keep the
summary on screen and refresh it whenever the inventory files change.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsHTML, "html", "", "Write an HTML chart report to this file")
	statsCmd.Flags().BoolVarP(&statsWatch, "watch", "w", false, "Refresh when the inventory changes (file storage only)")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if statsHTML != "" {
		if err := writeStatsReport(ctx, statsHTML); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Report written to " + statsHTML))
		return nil
	}

	if statsWatch {
		return watchStats(ctx)
	}

	renderStats(os.Stdout, statsService.Execute(ctx), inventoryRepo.Snapshot(ctx).Changes)
	return nil
}

// renderStats prints the dashboard counters and the change breakdown
func renderStats(w io.Writer, stats domain.Stats, changes []domain.ChangeRecord) {
	fmt.Fprintln(w, ui.FormatTitle("Inventory Statistics"))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 4, ' ', 0)
	fmt.Fprintf(tw, "%s\t%d\n", ui.StyleSuccess.Render("Active:"), stats.Active)
	fmt.Fprintf(tw, "%s\t%d\n", ui.StyleWarning.Render("Maintenance:"), stats.Maintenance)
	fmt.Fprintf(tw, "%s\t%d\n", ui.StyleMuted.Render("Retired:"), stats.Retired)
	fmt.Fprintf(tw, "%s\t%d\n", ui.StyleInfo.Render(fmt.Sprintf("Recent changes (%dd):", domain.RecentWindowDays)), stats.RecentChanges)
	tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprintln(w, ui.FormatMuted(fmt.Sprintf("%d computers, %d changes logged", stats.TotalAssets, stats.TotalChanges)))

	if stats.TotalChanges == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.StyleHeader.Render("Changes by Type"))
	maxCount := 0
	for _, n := range stats.ChangesByType {
		if n > maxCount {
			maxCount = n
		}
	}
	for _, t := range domain.ChangeTypes {
		n := stats.ChangesByType[t]
		fmt.Fprintf(w, "  %-18s %s %d\n", string(t), ui.ChangeTypeStyle(string(t)).Render(bar(n, maxCount, 30)), n)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.StyleHeader.Render("Last 6 Months"))
	months := services.ChangesPerMonth(changes, stats.GeneratedAt, 6)
	maxCount = 0
	for _, m := range months {
		if m.Count > maxCount {
			maxCount = m.Count
		}
	}
	for _, m := range months {
		fmt.Fprintf(w, "  %s  %s %d\n", m.Month.Format("Jan 2006"), ui.StyleAccent.Render(bar(m.Count, maxCount, 30)), m.Count)
	}
}

func bar(n, max, width int) string {
	if max == 0 || n == 0 {
		return ""
	}
	size := n * width / max
	if size == 0 {
		size = 1
	}
	return strings.Repeat("█", size)
}

// writeStatsReport renders the statistics as an HTML page of charts
func writeStatsReport(ctx context.Context, path string) error {
	stats := statsService.Execute(ctx)
	changes := inventoryRepo.Snapshot(ctx).Changes

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	if err := buildStatsPage(stats, changes).Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return f.Close()
}

func buildStatsPage(stats domain.Stats, changes []domain.ChangeRecord) *components.Page {
	page := components.NewPage()
	page.PageTitle = "Inventory Statistics"

	status := charts.NewPie()
	status.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Computers by Status",
			Subtitle: fmt.Sprintf("%d computers", stats.TotalAssets),
		}),
	)
	status.AddSeries("Status", []opts.PieData{
		{Name: string(domain.StatusActive), Value: stats.Active},
		{Name: string(domain.StatusMaintenance), Value: stats.Maintenance},
		{Name: string(domain.StatusRetired), Value: stats.Retired},
	})

	byType := charts.NewBar()
	byType.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Changes by Type",
			Subtitle: fmt.Sprintf("%d in the last %d days", stats.RecentChanges, domain.RecentWindowDays),
		}),
	)
	typeNames := make([]string, len(domain.ChangeTypes))
	typeData := make([]opts.BarData, len(domain.ChangeTypes))
	for i, t := range domain.ChangeTypes {
		typeNames[i] = string(t)
		typeData[i] = opts.BarData{Value: stats.ChangesByType[t]}
	}
	byType.SetXAxis(typeNames).AddSeries("Changes", typeData)

	monthly := charts.NewLine()
	monthly.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Changes per Month"}),
	)
	months := services.ChangesPerMonth(changes, stats.GeneratedAt, 12)
	monthNames := make([]string, len(months))
	monthData := make([]opts.LineData, len(months))
	for i, m := range months {
		monthNames[i] = m.Month.Format("Jan 06")
		monthData[i] = opts.LineData{Value: m.Count}
	}
	monthly.SetXAxis(monthNames).AddSeries("Changes", monthData)

	page.AddCharts(status, byType, monthly)
	return page
}

// watchStats re-renders the statistics whenever the inventory files change
func watchStats(ctx context.Context) error {
	if appConfig.Storage.Driver != storage.DriverFile && appConfig.Storage.Driver != "" {
		return fmt.Errorf("--watch requires the file storage driver (current: %s)", appConfig.Storage.Driver)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(appVault.DataPath); err != nil {
		return fmt.Errorf("failed to watch data directory: %w", err)
	}

	redraw := func() {
		inventoryRepo.Reload(ctx)
		fmt.Print("\033[H\033[2J")
		renderStats(os.Stdout, statsService.Execute(ctx), inventoryRepo.Snapshot(ctx).Changes)
		fmt.Println()
		fmt.Println(ui.FormatMuted("Watching " + appVault.DataPath + " · updated " + time.Now().Format("15:04:05") + " · Ctrl+C to stop"))
	}
	redraw()

	// Debounce timer to coalesce the temp-file and rename events of one save
	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isInventoryFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			}

		case <-fire:
			redraw()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			appLogger.WithError(err).Warn("watcher error")

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			fmt.Println()
			fmt.Println(ui.FormatMuted("Stopped watching"))
			return nil
		}
	}
}

func isInventoryFile(path string) bool {
	switch filepath.Base(path) {
	case domain.AssetsKey + ".json", domain.ChangesKey + ".json":
		return true
	}
	return false
}
