package catalog

import (
	"maps"
	"slices"

	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/gnames/instcat/pkg/source"
)

// columnSource supplies raw columns to the resolver.
type columnSource interface {
	column(name string) (column.Column, bool)
}

// chunkSource adapts a data source chunk.
type chunkSource struct {
	chunk source.Chunk
}

func (cs chunkSource) column(name string) (column.Column, bool) {
	return cs.chunk.Column(name)
}

// probe pretends to have every raw column. It records each requested name
// and returns a single 1.0, so rules that divide or take logarithms run
// without real data.
type probe struct {
	seen map[string]struct{}
}

func newProbe() *probe {
	return &probe{seen: make(map[string]struct{})}
}

func (p *probe) column(name string) (column.Column, bool) {
	p.seen[name] = struct{}{}
	return column.Fill(1, 1), true
}

func (p *probe) referenced() []string {
	return slices.Sorted(maps.Keys(p.seen))
}
