/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/instcat/internal/iofs"
	"github.com/gnames/instcat/internal/iologger"
	"github.com/gnames/instcat/pkg/config"
	"github.com/gnames/instcat/pkg/instcat"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir  string
	defsPath string
	cfg      *config.Config
	closeLog = func() {}
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			instcat.Version, instcat.Build),
		Use:   "instcat",
		Short: "instcat writes instance catalogs from tabular data sources",
		Long: `instcat writes instance catalogs: text files with one line per object,
built from raw columns of a data source and columns derived by rules.

Catalog types are declared in ~/.config/instcat/catalogs.yaml. Every type
lists output columns, columns that cannot be null, formats and the rule
modules it uses. The data source is configured in
~/.config/instcat/config.yaml.

Commands:
  - columns: show raw columns a catalog type needs
  - write: write one catalog type to a file
  - compound: write several catalog types to one file
  - batch: write several catalog types to separate files

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (INSTCAT_*)
  3. Config file (config.yaml)
  4. Built-in defaults

Environment variables:
    INSTCAT_SOURCE_DRIVER          postgres, sqlite, duckdb, sqlserver
    INSTCAT_SOURCE_DSN             connection string or database file
    INSTCAT_SOURCE_TABLE           table, view or table function
    INSTCAT_CATALOG_CHUNK_SIZE     rows per chunk
    INSTCAT_METRICS_PUSH_URL       Prometheus Pushgateway address
    INSTCAT_LOG_LEVEL              debug, info, warn, error
    INSTCAT_JOBS_NUMBER            catalogs written at the same time`,
		PersistentPreRunE: bootstrap,
		PersistentPostRun: func(*cobra.Command, []string) { closeLog() },
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for instcat")
	rootCmd.PersistentFlags().StringVar(&defsPath, "defs", "",
		"catalog definitions file (default ~/.config/instcat/catalogs.yaml)")

	rootCmd.AddCommand(
		getColumnsCmd(),
		getWriteCmd(),
		getCompoundCmd(),
		getBatchCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	closeLog()
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Logging with defaults until the config is read.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	logDir := config.LogDir(homeDir)
	if closeLog, err = iologger.Init(logDir, defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureDefinitionsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	if cmd.Flags().Changed("defs") {
		cfg.Update([]config.Option{config.OptCatalogDefinitions(defsPath)})
	}

	closeLog()
	if closeLog, err = iologger.Init(logDir, cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"definitions", cfg.DefinitionsPath(),
	)
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads config.yaml over built-in defaults, so keys missing
// from the file keep their default values.
func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	res := config.New()
	if err = v.Unmarshal(res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Env variables are bound one by one to keep the allowed set visible.
	// They match the fields of config.ToOptions().
	v.SetEnvPrefix("INSTCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Source configuration
	v.BindEnv("source.driver", "INSTCAT_SOURCE_DRIVER")
	v.BindEnv("source.dsn", "INSTCAT_SOURCE_DSN")
	v.BindEnv("source.host", "INSTCAT_SOURCE_HOST")
	v.BindEnv("source.port", "INSTCAT_SOURCE_PORT")
	v.BindEnv("source.user", "INSTCAT_SOURCE_USER")
	v.BindEnv("source.password", "INSTCAT_SOURCE_PASSWORD")
	v.BindEnv("source.database", "INSTCAT_SOURCE_DATABASE")
	v.BindEnv("source.ssl_mode", "INSTCAT_SOURCE_SSL_MODE")
	v.BindEnv("source.table", "INSTCAT_SOURCE_TABLE")
	v.BindEnv("source.ra_column", "INSTCAT_SOURCE_RA_COLUMN")
	v.BindEnv("source.dec_column", "INSTCAT_SOURCE_DEC_COLUMN")

	// Catalog configuration
	v.BindEnv("catalog.chunk_size", "INSTCAT_CATALOG_CHUNK_SIZE")
	v.BindEnv("catalog.header", "INSTCAT_CATALOG_HEADER")
	v.BindEnv("catalog.definitions", "INSTCAT_CATALOG_DEFINITIONS")

	// Metrics configuration
	v.BindEnv("metrics.push_url", "INSTCAT_METRICS_PUSH_URL")
	v.BindEnv("metrics.job", "INSTCAT_METRICS_JOB")

	// Log configuration
	v.BindEnv("log.level", "INSTCAT_LOG_LEVEL")
	v.BindEnv("log.format", "INSTCAT_LOG_FORMAT")
	v.BindEnv("log.destination", "INSTCAT_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "INSTCAT_JOBS_NUMBER")

	v.AutomaticEnv()
}
