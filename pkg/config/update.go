package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Catalog.Constraint).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	src := c.Source
	for _, v := range []struct {
		val string
		opt func(string) Option
	}{
		{src.Driver, OptSourceDriver},
		{src.DSN, OptSourceDSN},
		{src.Host, OptSourceHost},
		{src.User, OptSourceUser},
		{src.Password, OptSourcePassword},
		{src.Database, OptSourceDatabase},
		{src.SSLMode, OptSourceSSLMode},
		{src.Table, OptSourceTable},
		{src.RAColumn, OptSourceRAColumn},
		{src.DecColumn, OptSourceDecColumn},
	} {
		if v.val != "" {
			res = append(res, v.opt(v.val))
		}
	}
	i = src.Port
	if i > 0 {
		res = append(res, OptSourcePort(i))
	}
	if len(src.ColumnMap) > 0 {
		res = append(res, OptSourceColumnMap(cloneMap(src.ColumnMap)))
	}

	res = append(res,
		OptCatalogChunkSize(c.Catalog.ChunkSize),
		OptCatalogHeader(c.Catalog.Header),
	)
	s = c.Catalog.Definitions
	if s != "" {
		res = append(res, OptCatalogDefinitions(s))
	}

	s = c.Metrics.PushURL
	if s != "" {
		res = append(res, OptMetricsPushURL(s))
	}
	s = c.Metrics.Job
	if s != "" {
		res = append(res, OptMetricsJob(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Source.Driver": {"postgres": s, "sqlite": s,
			"duckdb": s, "sqlserver": s},
		"Source.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
