// Package iosource implements source.DataSource on top of SQL databases.
// This is an impure I/O package that implements contracts defined in pkg/.
//
// PostgreSQL is accessed through pgxpool, SQLite, DuckDB and SQL Server
// through database/sql drivers. Rows are streamed from one query and cut
// into chunks on the client side.
package iosource

import (
	"context"
	"maps"

	"github.com/gnames/instcat/pkg/config"
	"github.com/gnames/instcat/pkg/source"
)

// Source is a data source that holds database connections.
type Source interface {
	source.DataSource

	// Close releases database connections.
	Close() error
}

// New connects to the data source described by cfg and loads its column
// map. When cfg.ColumnMap is empty, every column of cfg.Table maps to
// itself.
func New(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch cfg.Driver {
	case "postgres":
		return newPgSource(ctx, cfg)
	case "sqlite", "duckdb", "sqlserver":
		return newSQLSource(ctx, cfg)
	default:
		return nil, DriverError(cfg.Driver)
	}
}

// settings are the parts of the config shared by all drivers.
type settings struct {
	table  string
	colMap map[string]string
	ra     string
	dec    string
}

func newSettings(cfg config.SourceConfig) settings {
	return settings{
		table:  cfg.Table,
		colMap: maps.Clone(cfg.ColumnMap),
		ra:     cfg.RAColumn,
		dec:    cfg.DecColumn,
	}
}

// identityMap maps every column name to itself.
func identityMap(names []string) map[string]string {
	res := make(map[string]string, len(names))
	for _, v := range names {
		res[v] = quoteIdent(v)
	}
	return res
}
