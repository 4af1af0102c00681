package iosource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/gnames/instcat/pkg/config"
	"github.com/gnames/instcat/pkg/source"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgSource reads rows from PostgreSQL through a pgxpool.Pool.
type pgSource struct {
	pool *pgxpool.Pool
	settings
}

// pgDSN builds a connection string from separate settings unless the
// config has one.
func pgDSN(cfg config.SourceConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
}

func newPgSource(ctx context.Context, cfg config.SourceConfig) (*pgSource, error) {
	target := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
	poolConfig, err := pgxpool.ParseConfig(pgDSN(cfg))
	if err != nil {
		return nil, NewConnectionError(cfg.Driver, target, err)
	}

	// a catalog write holds one connection while it streams rows
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, NewConnectionError(cfg.Driver, target, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, NewConnectionError(cfg.Driver, target, err)
	}

	res := &pgSource{pool: pool, settings: newSettings(cfg)}
	if len(res.colMap) == 0 {
		names, err := res.tableColumns(ctx)
		if err != nil {
			pool.Close()
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

func (s *pgSource) tableColumns(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, probeQuery(s.table))
	if err != nil {
		return nil, ColumnsError(s.table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	res := make([]string, len(fields))
	for i, f := range fields {
		res[i] = f.Name
	}
	return res, nil
}

// ColumnMap implements source.DataSource.
func (s *pgSource) ColumnMap() map[string]string {
	return maps.Clone(s.colMap)
}

// Query implements source.DataSource.
func (s *pgSource) Query(
	ctx context.Context,
	q source.Query,
) (source.ChunkIter, error) {
	stmt, args, err := buildSelect(dialects["postgres"], s.settings, q)
	if err != nil {
		return nil, QueryError(s.table, err)
	}
	slog.Debug("Source query", "sql", stmt)

	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, QueryError(s.table, err)
	}

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return &pgIter{
		rows:  rows,
		table: s.table,
		names: names,
		size:  rowsPerChunk(q.ChunkSize),
	}, nil
}

// Close implements Source.
func (s *pgSource) Close() error {
	s.pool.Close()
	return nil
}

type pgIter struct {
	rows  pgx.Rows
	table string
	names []string
	size  int
	done  bool
}

// Next implements source.ChunkIter.
func (it *pgIter) Next(ctx context.Context) (source.Chunk, error) {
	if it.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := newChunkBuilder(it.names, min(it.size, 4096))
	for b.len() < it.size {
		if !it.rows.Next() {
			it.done = true
			break
		}
		row, err := it.rows.Values()
		if err != nil {
			return nil, ScanError(it.table, err)
		}
		for i, v := range row {
			row[i] = pgValue(v)
		}
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
func (it *pgIter) Close() error {
	it.rows.Close()
	return nil
}

// pgValue converts NUMERIC values to float64, other values are returned
// as they are.
func pgValue(v any) any {
	num, ok := v.(pgtype.Numeric)
	if !ok {
		return v
	}
	f, err := num.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}
