package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// Vault represents the managed storage directory for inv
type Vault struct {
	RootPath    string
	DataPath    string
	ExportsPath string
	LogsPath    string
	ConfigPath  string
}

// New creates a new Vault instance with XDG-compliant paths.
// INV_HOME, when set, relocates both data and config under one directory.
func New() (*Vault, error) {
	if home := os.Getenv("INV_HOME"); home != "" {
		return NewAt(home, filepath.Join(home, "config.yaml")), nil
	}

	rootPath, rootErr := getVaultRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine vault root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return NewAt(rootPath, configPath), nil
}

// NewAt builds a vault rooted at rootPath
func NewAt(rootPath, configPath string) *Vault {
	return &Vault{
		RootPath:    rootPath,
		DataPath:    filepath.Join(rootPath, "data"),
		ExportsPath: filepath.Join(rootPath, "exports"),
		LogsPath:    filepath.Join(rootPath, "logs"),
		ConfigPath:  configPath,
	}
}

// getVaultRoot returns the vault root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getVaultRoot() (string, error) {
	// Check XDG_DATA_HOME first (Unix-like systems)
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "inv"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "inv"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "inv"), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "inv", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "inv-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "inv", "config.yaml"), nil
}

// Initialize creates the vault directory structure if it doesn't exist
func (v *Vault) Initialize() error {
	directories := []string{
		v.RootPath,
		v.DataPath,
		v.ExportsPath,
		v.LogsPath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the vault has been initialized
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.DataPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnvFiles returns the dotenv files consulted at startup, in load order
func (v *Vault) EnvFiles() []string {
	return []string{".env", filepath.Join(v.RootPath, ".env")}
}

// LogFilePath returns the default diagnostic log path
func (v *Vault) LogFilePath() string {
	return filepath.Join(v.LogsPath, "inv.log")
}

// GetExportPath returns the full path for an export file
func (v *Vault) GetExportPath(filename string) string {
	return filepath.Join(v.ExportsPath, filename)
}
