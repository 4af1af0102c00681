// Package source defines the contract between catalog generation and the
// stores that supply raw columns. It has no I/O dependencies; concrete data
// sources live in internal/iosource.
package source

import (
	"context"

	"github.com/gnames/instcat/pkg/ent/column"
)

// DataSource supplies raw columns in chunks.
type DataSource interface {
	// ColumnMap maps every raw column name the source can provide to its
	// storage locator (a table column name or an SQL expression).
	ColumnMap() map[string]string

	// Query starts a query for the given columns. When q.ChunkSize is 0
	// the iterator yields the whole result as a single chunk.
	Query(ctx context.Context, q Query) (ChunkIter, error)
}

// Query describes one chunked query.
type Query struct {
	// Columns are the raw column names to fetch.
	Columns []string

	// Obs is optional observation metadata the source may use to
	// restrict the result.
	Obs *ObsMetadata

	// Constraint is an opaque filter passed through to the store.
	Constraint string

	// ChunkSize is the maximum number of rows per chunk, 0 means no limit.
	ChunkSize int
}

// Chunk is a batch of rows addressable by raw column name. All columns of
// a chunk have the same length.
type Chunk interface {
	// Len returns the number of rows in the chunk.
	Len() int

	// Column returns the values of a raw column. The second value is false
	// if the chunk does not contain the column.
	Column(name string) (column.Column, bool)
}

// ChunkIter is a lazy, finite, non-restartable sequence of chunks.
type ChunkIter interface {
	// Next returns the next chunk. It returns io.EOF after the last chunk.
	Next(ctx context.Context) (Chunk, error)

	// Close releases resources held by the query.
	Close() error
}

// ObsMetadata describes the observation a catalog is generated for.
type ObsMetadata struct {
	// Bounds restricts objects to a box on the sky, when not nil.
	Bounds *BoxBounds

	// MJD is the modified Julian date of the observation.
	MJD float64

	// Bandpass is the filter name of the observation.
	Bandpass string

	// Extra keeps any additional observation parameters.
	Extra map[string]any
}

// BoxBounds is a rectangular area in degrees.
type BoxBounds struct {
	RAMin, RAMax   float64
	DecMin, DecMax float64
}
