package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/gnames/instcat/pkg/source"
)

// Stats summarizes one write.
type Stats struct {
	// Type is the catalog type id.
	Type string

	// Chunks is the number of chunks received from the data source.
	Chunks int

	// Rows is the number of rows received from the data source.
	Rows int

	// Written is the number of lines written.
	Written int

	// Warnings are non-fatal problems, such as format fallbacks.
	Warnings []string
}

// Filtered returns the number of rows removed by null filtering.
func (s Stats) Filtered() int {
	return s.Rows - s.Written
}

// WriteTo queries the data source and writes formatted lines to w. When
// chunkSize is 0 the whole result is processed as one chunk.
//
// Lines written before an error stay in w.
func (c *Catalog) WriteTo(
	ctx context.Context,
	w io.Writer,
	chunkSize int,
) (Stats, error) {
	res := Stats{Type: c.Type()}
	if c.state != RequirementsValidated {
		return res, &StateError{Type: c.Type(), State: c.state, Op: "write"}
	}

	filter, err := c.filterIndices()
	if err != nil {
		return res, err
	}

	c.state = Writing
	defer func() {
		if c.state == Writing {
			c.state = RequirementsValidated
		}
	}()

	q := source.Query{
		Columns:    c.RequiredColumns(),
		Obs:        c.obs,
		Constraint: c.constraint,
		ChunkSize:  chunkSize,
	}
	it, err := c.src.Query(ctx, q)
	if err != nil {
		return res, err
	}
	defer it.Close()

	var tmpl *lineTemplate
	var buf bytes.Buffer
	for {
		chunk, err := it.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		res.Chunks++
		rows := chunk.Len()
		res.Rows += rows

		cols, err := c.resolveChunk(chunk)
		if err != nil {
			return res, err
		}

		if rows == 0 {
			continue
		}

		if tmpl == nil {
			var warnings []string
			tmpl, warnings = c.makeTemplate(cols)
			res.Warnings = append(res.Warnings, warnings...)
		} else if err = tmpl.check(c, cols); err != nil {
			return res, err
		}

		keep := keepMask(cols, filter, rows)

		buf.Reset()
		var written int
		for i := range rows {
			if !keep[i] {
				continue
			}
			tmpl.appendLine(&buf, cols, i)
			written++
		}
		if _, err = w.Write(buf.Bytes()); err != nil {
			return res, fmt.Errorf("catalog %s: write: %w", c.Type(), err)
		}
		res.Written += written

		slog.Debug("Chunk written",
			"catalog_type", c.Type(),
			"chunk", res.Chunks,
			"rows", rows,
			"kept", written,
		)
	}

	return res, nil
}

// resolveChunk makes the chunk active and resolves all output columns.
func (c *Catalog) resolveChunk(chunk source.Chunk) ([]column.Column, error) {
	restore := c.use(chunkSource{chunk: chunk})
	defer restore()

	r := c.newResolver()
	res := make([]column.Column, len(c.columns))
	for i, name := range c.columns {
		col, err := r.Column(name)
		if err != nil {
			return nil, err
		}
		if col.Len() != chunk.Len() {
			return nil, &RuleError{
				Type:   c.Type(),
				Column: name,
				Err: fmt.Errorf("got %d values for %d rows",
					col.Len(), chunk.Len()),
			}
		}
		res[i] = col
	}
	return res, nil
}

// filterIndices returns positions of not-null columns among the output
// columns.
func (c *Catalog) filterIndices() ([]int, error) {
	var res []int
	var unresolved []string
	for _, name := range c.cannotBeNull {
		idx := slices.Index(c.columns, name)
		if idx < 0 {
			unresolved = append(unresolved, name)
			continue
		}
		res = append(res, idx)
	}
	if len(unresolved) > 0 {
		return nil, &UnresolvedColumnsError{Type: c.Type(), Columns: unresolved}
	}
	return res, nil
}

// keepMask marks rows where none of the filter columns is null.
func keepMask(cols []column.Column, filter []int, rows int) []bool {
	res := make([]bool, rows)
	for i := range res {
		res[i] = true
		for _, idx := range filter {
			if cols[idx].IsNull(i) {
				res[i] = false
				break
			}
		}
	}
	return res
}
