package catalog_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/gnames/instcat/pkg/source"
	"github.com/stretchr/testify/require"
)

// memSource keeps columns in memory and records the queries it receives.
type memSource struct {
	rows    int
	cols    map[string]column.Column
	queries []source.Query
}

// newTestSource creates a source with rows of (id, id+1, id+2, id+3) in
// columns id, ip1, ip2 and ip3.
func newTestSource(rows int) *memSource {
	cols := map[string][]int64{"id": nil, "ip1": nil, "ip2": nil, "ip3": nil}
	for i := range rows {
		id := int64(i)
		cols["id"] = append(cols["id"], id)
		cols["ip1"] = append(cols["ip1"], id+1)
		cols["ip2"] = append(cols["ip2"], id+2)
		cols["ip3"] = append(cols["ip3"], id+3)
	}
	res := memSource{rows: rows, cols: map[string]column.Column{}}
	for k, v := range cols {
		res.cols[k] = column.NewInt(v)
	}
	return &res
}

func (m *memSource) ColumnMap() map[string]string {
	res := make(map[string]string, len(m.cols))
	for k := range m.cols {
		res[k] = k
	}
	return res
}

func (m *memSource) Query(
	_ context.Context,
	q source.Query,
) (source.ChunkIter, error) {
	m.queries = append(m.queries, q)
	return &memIter{src: m, q: q}, nil
}

type memIter struct {
	src  *memSource
	q    source.Query
	pos  int
	done bool
}

func (it *memIter) Next(_ context.Context) (source.Chunk, error) {
	if it.done || (it.pos >= it.src.rows && it.pos > 0) {
		return nil, io.EOF
	}
	end := it.src.rows
	if it.q.ChunkSize > 0 {
		end = min(it.pos+it.q.ChunkSize, it.src.rows)
	}
	cols := make(map[string]column.Column, len(it.q.Columns))
	for _, name := range it.q.Columns {
		cols[name] = it.src.cols[name].Slice(it.pos, end)
	}
	it.pos = end
	if it.pos >= it.src.rows {
		it.done = true
	}
	return source.NewMapChunk(cols), nil
}

func (it *memIter) Close() error {
	return nil
}

func writeString(t *testing.T, cat *catalog.Catalog, chunkSize int) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := cat.WriteTo(context.Background(), &buf, chunkSize)
	require.NoError(t, err)
	return buf.String()
}

// nullUnless returns a rule that keeps values of base where keep is true.
func nullUnless(base string, keep func(v int64) bool) catalog.Rule {
	return func(env catalog.Env) (column.Column, error) {
		col, err := env.Column(base)
		if err != nil {
			return column.Column{}, err
		}
		cond := make([]bool, col.Len())
		for i, v := range col.Ints() {
			cond[i] = keep(v)
		}
		return col.NullUnless(cond), nil
	}
}
