package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "instcat"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/instcat by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/instcat/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/instcat/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DefinitionsFilePath returns the full path to the default catalog
// definitions file.
// Returns ~/.config/instcat/catalogs.yaml by default.
func DefinitionsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "catalogs.yaml")
}

// DefinitionsPath returns the catalog definitions file. An explicit path in
// the config wins over ~/.config/instcat/catalogs.yaml.
func (c *Config) DefinitionsPath() string {
	if c.Catalog.Definitions != "" {
		return c.Catalog.Definitions
	}
	return DefinitionsFilePath(c.HomeDir)
}
