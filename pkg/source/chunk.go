package source

import "github.com/gnames/instcat/pkg/ent/column"

// MapChunk is a Chunk backed by a map of columns.
type MapChunk struct {
	rows int
	cols map[string]column.Column
}

// NewMapChunk creates a chunk from columns. The number of rows is taken
// from the first column; all columns are expected to have the same length.
func NewMapChunk(cols map[string]column.Column) *MapChunk {
	res := MapChunk{cols: cols}
	for _, v := range cols {
		res.rows = v.Len()
		break
	}
	return &res
}

// Len returns the number of rows.
func (c *MapChunk) Len() int {
	return c.rows
}

// Column returns a column by name.
func (c *MapChunk) Column(name string) (column.Column, bool) {
	col, ok := c.cols[name]
	return col, ok
}
