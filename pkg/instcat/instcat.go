// Package instcat defines the entry points for writing instance catalogs
// to files.
package instcat

import (
	"context"
	"time"

	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/source"
)

// Writer creates catalog instances against the configured data source and
// writes them to files. Every catalog instance gets its own data source
// connection.
type Writer interface {
	// Columns returns the raw columns a catalog type needs from the data
	// source and its output columns, in output order.
	Columns(ctx context.Context, typ string) (required, output []string, err error)

	// Write writes one catalog type to the file at path.
	Write(
		ctx context.Context,
		typ, path string,
		obs *source.ObsMetadata,
	) (*Report, error)

	// WriteCompound writes several catalog types, in order, to the same
	// file.
	WriteCompound(
		ctx context.Context,
		types []string,
		path string,
		obs *source.ObsMetadata,
	) (*Report, error)

	// WriteBatch writes every catalog type to its own file in dir,
	// several at a time. Reports keep the order of types.
	WriteBatch(
		ctx context.Context,
		types []string,
		dir string,
		obs *source.ObsMetadata,
	) ([]*Report, error)
}

// Report describes one written file.
type Report struct {
	// RunID identifies the write in logs.
	RunID string

	// Path is the output file.
	Path string

	// Stats has one entry per catalog written to the file.
	Stats []catalog.Stats

	// Bytes is the size of the file.
	Bytes int64

	// Digest is the hex XXH3 hash of the file content.
	Digest string

	// Duration is the time spent on the file.
	Duration time.Duration
}

// Rows returns the number of rows read from data sources.
func (r *Report) Rows() int {
	var res int
	for _, s := range r.Stats {
		res += s.Rows
	}
	return res
}

// Written returns the number of catalog lines in the file.
func (r *Report) Written() int {
	var res int
	for _, s := range r.Stats {
		res += s.Written
	}
	return res
}

// Warnings returns warnings of all catalogs in the file.
func (r *Report) Warnings() []string {
	var res []string
	for _, s := range r.Stats {
		res = append(res, s.Warnings...)
	}
	return res
}
