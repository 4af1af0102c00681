package config

import (
	"maps"
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSourceDriver sets the data source driver.
// Valid values: "postgres", "sqlite", "duckdb", "sqlserver".
func OptSourceDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Source.Driver", s) {
			c.Source.Driver = s
		}
	}
}

// OptSourceDSN sets a connection string or a database file path.
func OptSourceDSN(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source DSN", s) {
			c.Source.DSN = s
		}
	}
}

// OptSourceHost sets the PostgreSQL server hostname or IP address.
func OptSourceHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Host", s) {
			c.Source.Host = s
		}
	}
}

// OptSourcePort sets the PostgreSQL server port number.
func OptSourcePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Source Port", i) {
			c.Source.Port = i
		}
	}
}

// OptSourceUser sets the database username.
func OptSourceUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source User", s) {
			c.Source.User = s
		}
	}
}

// OptSourcePassword sets the database password.
func OptSourcePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Password", s) {
			c.Source.Password = s
		}
	}
}

// OptSourceDatabase sets the database name to connect to.
func OptSourceDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Database", s) {
			c.Source.Database = s
		}
	}
}

// OptSourceSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptSourceSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Source.SSLMode", s) {
			c.Source.SSLMode = s
		}
	}
}

// OptSourceTable sets the table rows are read from.
func OptSourceTable(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Table", s) {
			c.Source.Table = s
		}
	}
}

// OptSourceRAColumn sets the raw column used for right ascension bounds.
func OptSourceRAColumn(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source RA Column", s) {
			c.Source.RAColumn = s
		}
	}
}

// OptSourceDecColumn sets the raw column used for declination bounds.
func OptSourceDecColumn(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Dec Column", s) {
			c.Source.DecColumn = s
		}
	}
}

// OptSourceColumnMap sets the mapping from raw column names to storage
// expressions. Entries with empty names or expressions are ignored.
func OptSourceColumnMap(m map[string]string) Option {
	return func(c *Config) {
		res := make(map[string]string, len(m))
		for k, v := range m {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k == "" || v == "" {
				gn.Warn("<em>Source Column Map</em> has empty entry, ignoring")
				continue
			}
			res[k] = v
		}
		if len(res) > 0 {
			c.Source.ColumnMap = res
		}
	}
}

// OptCatalogChunkSize sets the number of rows per chunk. Zero disables
// chunking.
func OptCatalogChunkSize(i int) Option {
	return func(c *Config) {
		if i < 0 {
			gn.Warn("<em>Catalog Chunk Size</em> cannot be negative, ignoring %d", i)
			return
		}
		c.Catalog.ChunkSize = i
	}
}

// OptCatalogHeader sets whether a header line is written.
func OptCatalogHeader(b bool) Option {
	return func(c *Config) {
		c.Catalog.Header = b
	}
}

// OptCatalogDefinitions sets the path to the catalog definitions file.
func OptCatalogDefinitions(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Catalog Definitions", s) {
			c.Catalog.Definitions = s
		}
	}
}

// OptCatalogConstraint sets the opaque constraint passed to the data
// source.
// Runtime-only field - not in ToOptions().
func OptCatalogConstraint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Catalog.Constraint = s
	}
}

// OptMetricsPushURL sets the Pushgateway address.
func OptMetricsPushURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metrics Push URL", s) {
			c.Metrics.PushURL = s
		}
	}
}

// OptMetricsJob sets the job label of pushed metrics.
func OptMetricsJob(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metrics Job", s) {
			c.Metrics.Job = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets how many catalogs are written concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
