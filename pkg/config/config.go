// Package config provides configuration management for instcat.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Source: driver, dsn, host, port, user, password, database, ssl_mode,
//     table, ra_column, dec_column, column_map
//   - Catalog: chunk_size, header, definitions
//   - Metrics: push_url, job
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Catalog.Constraint (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use INSTCAT_ prefix with underscores for nesting:
//
//	INSTCAT_SOURCE_DRIVER=sqlite
//	INSTCAT_SOURCE_DSN=/data/objects.db
//	INSTCAT_CATALOG_CHUNK_SIZE=100000
//	INSTCAT_LOG_LEVEL=info
//	INSTCAT_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete instcat configuration.
type Config struct {
	// Source describes where raw columns come from.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Catalog contains settings of catalog writing.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Metrics configures export of write counters.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber limits how many catalogs the batch command writes at the
	// same time. Default value is the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// SourceConfig describes a tabular data source.
type SourceConfig struct {
	// Driver is one of "postgres", "sqlite", "duckdb", "sqlserver".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// DSN is a connection string or a database file path. When empty for
	// postgres, the connection is built from Host, Port and the rest.
	DSN string `mapstructure:"dsn" yaml:"dsn"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Table is the table, view or table function rows are read from.
	Table string `mapstructure:"table" yaml:"table"`

	// RAColumn and DecColumn are raw column names used for box bounds of
	// observation metadata.
	RAColumn  string `mapstructure:"ra_column" yaml:"ra_column"`
	DecColumn string `mapstructure:"dec_column" yaml:"dec_column"`

	// ColumnMap maps raw column names to storage expressions, for example
	// `dec: decl` or `galacticAv: ebv*3.1`. When empty, every column of
	// the table maps to itself.
	ColumnMap map[string]string `mapstructure:"column_map" yaml:"column_map"`
}

// CatalogConfig contains settings of catalog writing.
type CatalogConfig struct {
	// ChunkSize is the number of rows fetched per chunk. Zero means the
	// whole result is processed at once.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// Header adds a '# col1, col2' line before catalog lines.
	Header bool `mapstructure:"header" yaml:"header"`

	// Definitions is the path to the catalog definitions file. Empty means
	// catalogs.yaml in the config directory.
	Definitions string `mapstructure:"definitions" yaml:"definitions"`

	// Constraint is an opaque filter passed to the data source.
	Constraint string `mapstructure:"constraint" yaml:"constraint"`
}

// MetricsConfig configures a Prometheus Pushgateway.
type MetricsConfig struct {
	// PushURL is the Pushgateway address. Empty disables pushing.
	PushURL string `mapstructure:"push_url" yaml:"push_url"`

	// Job is the job label of pushed metrics.
	Job string `mapstructure:"job" yaml:"job"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Source: SourceConfig{
			Driver:    "sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "objects",
			SSLMode:   "disable",
			Table:     "objects",
			RAColumn:  "ra",
			DecColumn: "dec",
		},
		Catalog: CatalogConfig{
			ChunkSize: 100_000,
		},
		Metrics: MetricsConfig{
			Job: AppName,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
