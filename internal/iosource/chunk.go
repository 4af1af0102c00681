package iosource

import (
	"fmt"

	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/gnames/instcat/pkg/source"
)

// chunkBuilder collects row values and turns them into columns.
type chunkBuilder struct {
	names []string
	vals  [][]any
}

func newChunkBuilder(names []string, size int) *chunkBuilder {
	res := chunkBuilder{names: names, vals: make([][]any, len(names))}
	for i := range res.vals {
		res.vals[i] = make([]any, 0, size)
	}
	return &res
}

func (b *chunkBuilder) add(row []any) {
	for i, v := range row {
		b.vals[i] = append(b.vals[i], v)
	}
}

func (b *chunkBuilder) len() int {
	if len(b.vals) == 0 {
		return 0
	}
	return len(b.vals[0])
}

func (b *chunkBuilder) chunk() (source.Chunk, error) {
	cols := make(map[string]column.Column, len(b.names))
	for i, name := range b.names {
		col, err := column.FromAny(b.vals[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		cols[name] = col
	}
	return source.NewMapChunk(cols), nil
}

// rowsPerChunk gives the number of rows to read for one chunk. Zero means
// all rows.
func rowsPerChunk(chunkSize int) int {
	if chunkSize <= 0 {
		return int(^uint(0) >> 1)
	}
	return chunkSize
}
