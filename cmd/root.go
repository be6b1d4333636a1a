package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/adapters/repository"
	"github.com/kamal-hamza/inv-cli/internal/adapters/storage"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
	"github.com/kamal-hamza/inv-cli/internal/core/services"
	"github.com/kamal-hamza/inv-cli/pkg/config"
	"github.com/kamal-hamza/inv-cli/pkg/logging"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
	"github.com/kamal-hamza/inv-cli/pkg/vault"
)

var (
	// Global vault and configuration
	appVault  *vault.Vault
	appConfig *config.Config
	appLogger *logrus.Logger
	logCloser io.Closer

	// Storage
	appStore      ports.Store
	inventoryRepo *repository.InventoryRepository
	entityFactory *services.EntityFactory

	// Services
	createAssetService  *services.CreateAssetService
	updateAssetService  *services.UpdateAssetService
	createChangeService *services.CreateChangeService
	listService         *services.ListService
	statsService        *services.StatsService
	exportService       *services.ExportService
	importService       *services.ImportService

	// Global flags
	verbose   bool
	ephemeral bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inv",
	Short: "inv - track computers and the changes made to them",
	Long: ui.StyleTitle.Render("inv") + " - Computer Inventory Tracker\n\n" +
		"Record computer specifications and keep a dated log of hardware,\n" +
		"software, operating system and maintenance changes for each machine.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}

// run executes the command tree and always releases the store and log file,
// including when the command itself failed.
func run() error {
	err := rootCmd.Execute()
	if closeErr := shutdownApp(); err == nil {
		err = closeErr
	}
	return err
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(changeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Write diagnostic logs to stderr at debug level")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Use in-memory storage; nothing is persisted")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for commands that do not touch the inventory
	switch cmd.Name() {
	case "init", "version", "help":
		return nil
	}

	v, err := vault.New()
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	appVault = v

	if _, err := config.LoadEnv(appVault.EnvFiles()); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(appVault.ConfigPath)
	if err != nil {
		return err
	}
	appConfig = cfg
	ui.SetTheme(appConfig.ColorTheme)

	if ephemeral {
		appConfig.Storage.Driver = storage.DriverMemory
	}

	// The config command only needs paths and settings
	if cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
		return nil
	}

	if !appVault.Exists() && !ephemeral {
		fmt.Println(ui.FormatInfo("Run 'inv init' to initialize the inventory"))
		return fmt.Errorf("inventory not initialized at %s", appVault.RootPath)
	}

	if err := initLogger(); err != nil {
		return err
	}

	store, err := storage.Open(getContext(), appConfig.Storage, appVault.DataPath, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	wireServices(store, appLogger)
	return nil
}

func initLogger() error {
	level, path := appConfig.Log.Level, appConfig.Log.File
	if path == "" {
		path = appVault.LogFilePath()
	}
	if verbose {
		level, path = "debug", ""
	}

	logger, closer, err := logging.New(level, path)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	appLogger = logger
	logCloser = closer
	return nil
}

// wireServices builds the repository and services over store
func wireServices(store ports.Store, log *logrus.Logger) {
	if log == nil {
		log = logging.Discard()
	}
	appLogger = log
	appStore = store

	inventoryRepo = repository.NewInventoryRepository(store, log)
	entityFactory = services.NewEntityFactory()

	createAssetService = services.NewCreateAssetService(inventoryRepo, entityFactory, log)
	updateAssetService = services.NewUpdateAssetService(inventoryRepo, log)
	createChangeService = services.NewCreateChangeService(inventoryRepo, entityFactory, log)
	listService = services.NewListService(inventoryRepo)
	statsService = services.NewStatsService(inventoryRepo, entityFactory)
	exportService = services.NewExportService(inventoryRepo)
	importService = services.NewImportService(inventoryRepo, log)
}

func shutdownApp() error {
	if appStore != nil {
		if err := appStore.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		appStore = nil
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
