package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/instcat/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "instcat"),
		},
		{
			msg: "definitions file",
			fn:  config.DefinitionsFilePath,
			res: filepath.Join(tempHome, ".config", "instcat", "catalogs.yaml"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "instcat", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "instcat", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "sqlite", cfg.Source.Driver)
	assert.Equal(t, "localhost", cfg.Source.Host)
	assert.Equal(t, 5432, cfg.Source.Port)
	assert.Equal(t, "disable", cfg.Source.SSLMode)
	assert.Equal(t, "objects", cfg.Source.Table)
	assert.Equal(t, "ra", cfg.Source.RAColumn)
	assert.Equal(t, "dec", cfg.Source.DecColumn)
	assert.Empty(t, cfg.Source.ColumnMap)

	assert.Equal(t, 100_000, cfg.Catalog.ChunkSize)
	assert.False(t, cfg.Catalog.Header)

	assert.Empty(t, cfg.Metrics.PushURL)
	assert.Equal(t, "instcat", cfg.Metrics.Job)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptionSourceDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"postgres", "postgres", "postgres"},
		{"duckdb uppercase", " DuckDB ", "duckdb"},
		{"sqlserver", "sqlserver", "sqlserver"},
		{"ignores unknown", "oracle", "sqlite"},
		{"ignores empty", "", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.Driver)
		})
	}
}

func TestOptionSourceHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets valid host", "db.example.com", "db.example.com"},
		{"trims whitespace", "  db.example.com  ", "db.example.com"},
		{"ignores empty string", "", "localhost"},
		{"ignores whitespace-only", "   ", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.Host)
		})
	}
}

func TestOptionSourceSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"require", "require", "require"},
		{"verify-full uppercase", "VERIFY-FULL", "verify-full"},
		{"ignores invalid", "maybe", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.SSLMode)
		})
	}
}

func TestOptionSourceColumnMap(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptSourceColumnMap(map[string]string{
		"dec":        " decl ",
		"galacticAv": "ebv*3.1",
		"":           "nothing",
		"empty":      "",
	})})
	assert.Equal(t, map[string]string{
		"dec":        "decl",
		"galacticAv": "ebv*3.1",
	}, cfg.Source.ColumnMap)

	cfg.Update([]config.Option{config.OptSourceColumnMap(nil)})
	assert.Len(t, cfg.Source.ColumnMap, 2, "Empty map should be ignored")
}

func TestOptionCatalogChunkSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets value", 500, 500},
		{"zero disables chunking", 0, 0},
		{"ignores negative", -1, 100_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptCatalogChunkSize(tt.input)})
			assert.Equal(t, tt.expected, cfg.Catalog.ChunkSize)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"debug", "debug", "debug"},
		{"uppercase warn", "WARN", "warn"},
		{"ignores invalid", "verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"stderr", "stderr", "stderr"},
		{"stdout", "STDOUT", "stdout"},
		{"ignores invalid", "stdin", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogDestination(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Destination)
		})
	}
}

func TestOptionJobsNumber(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(3)})
	assert.Equal(t, 3, cfg.JobsNumber)

	cfg.Update([]config.Option{config.OptJobsNumber(0)})
	assert.Equal(t, 3, cfg.JobsNumber, "Zero should be ignored")
}

func TestDefinitionsPath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".config", "instcat", "catalogs.yaml"),
		cfg.DefinitionsPath(),
	)

	cfg.Update([]config.Option{config.OptCatalogDefinitions("/tmp/defs.yaml")})
	assert.Equal(t, "/tmp/defs.yaml", cfg.DefinitionsPath())
}

func TestToOptions(t *testing.T) {
	t.Run("round trip of persistent fields", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptSourceDriver("postgres"),
			config.OptSourceHost("db.example.com"),
			config.OptSourcePort(6432),
			config.OptSourceTable("galaxies"),
			config.OptSourceColumnMap(map[string]string{"dec": "decl"}),
			config.OptCatalogChunkSize(0),
			config.OptCatalogHeader(true),
			config.OptMetricsPushURL("http://localhost:9091"),
			config.OptLogFormat("tint"),
			config.OptJobsNumber(2),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Source, newCfg.Source)
		assert.Equal(t, original.Catalog, newCfg.Catalog)
		assert.Equal(t, original.Metrics, newCfg.Metrics)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/home/user"),
			config.OptCatalogConstraint("id < 10"),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())
		assert.Empty(t, newCfg.HomeDir)
		assert.Empty(t, newCfg.Catalog.Constraint)
	})
}
