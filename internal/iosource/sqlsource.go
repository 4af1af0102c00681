package iosource

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"maps"

	"github.com/gnames/instcat/pkg/config"
	"github.com/gnames/instcat/pkg/source"
	"github.com/microsoft/go-mssqldb/msdsn"
)

// sqlSource reads rows through database/sql.
type sqlSource struct {
	db      *sql.DB
	dialect dialect
	settings
}

func newSQLSource(ctx context.Context, cfg config.SourceConfig) (*sqlSource, error) {
	d := dialects[cfg.Driver]
	if cfg.Driver == "sqlserver" {
		if _, err := msdsn.Parse(cfg.DSN); err != nil {
			return nil, NewConnectionError(cfg.Driver, cfg.DSN, err)
		}
	}

	// an empty DSN opens an in-memory DuckDB database
	db, err := sql.Open(d.driver, cfg.DSN)
	if err != nil {
		return nil, NewConnectionError(cfg.Driver, cfg.DSN, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, NewConnectionError(cfg.Driver, cfg.DSN, err)
	}

	res := &sqlSource{db: db, dialect: d, settings: newSettings(cfg)}
	if len(res.colMap) == 0 {
		names, err := res.tableColumns(ctx)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		res.colMap = identityMap(names)
	}

	slog.Info("Data source connected",
		"driver", cfg.Driver,
		"table", res.table,
		"columns", len(res.colMap),
	)
	return res, nil
}

func (s *sqlSource) tableColumns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, probeQuery(s.table))
	if err != nil {
		return nil, ColumnsError(s.table, err)
	}
	defer rows.Close()

	res, err := rows.Columns()
	if err != nil {
		return nil, ColumnsError(s.table, err)
	}
	return res, nil
}

// ColumnMap implements source.DataSource.
func (s *sqlSource) ColumnMap() map[string]string {
	return maps.Clone(s.colMap)
}

// Query implements source.DataSource.
func (s *sqlSource) Query(
	ctx context.Context,
	q source.Query,
) (source.ChunkIter, error) {
	stmt, args, err := buildSelect(s.dialect, s.settings, q)
	if err != nil {
		return nil, QueryError(s.table, err)
	}
	slog.Debug("Source query", "sql", stmt)

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, QueryError(s.table, err)
	}
	names, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, QueryError(s.table, err)
	}
	return &sqlIter{
		rows:  rows,
		table: s.table,
		names: names,
		size:  rowsPerChunk(q.ChunkSize),
	}, nil
}

// Close implements Source.
func (s *sqlSource) Close() error {
	return s.db.Close()
}

type sqlIter struct {
	rows  *sql.Rows
	table string
	names []string
	size  int
	done  bool
}

// Next implements source.ChunkIter.
func (it *sqlIter) Next(ctx context.Context) (source.Chunk, error) {
	if it.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := newChunkBuilder(it.names, min(it.size, 4096))
	vals := make([]any, len(it.names))
	ptrs := make([]any, len(it.names))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for b.len() < it.size {
		if !it.rows.Next() {
			it.done = true
			break
		}
		if err := it.rows.Scan(ptrs...); err != nil {
			return nil, ScanError(it.table, err)
		}
		row := make([]any, len(vals))
		copy(row, vals)
		b.add(row)
	}
	if err := it.rows.Err(); err != nil {
		return nil, ScanError(it.table, err)
	}

	if b.len() == 0 {
		return nil, io.EOF
	}
	return b.chunk()
}

// Close implements source.ChunkIter.
func (it *sqlIter) Close() error {
	return it.rows.Close()
}
