package column_test

import (
	"math"
	"testing"

	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNames(t *testing.T) {
	tests := []struct {
		name string
		kind column.Kind
	}{
		{"string", column.String},
		{"S", column.String},
		{"float", column.Float},
		{"f", column.Float},
		{"integer", column.Int},
		{"i", column.Int},
		{"complex", column.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, column.NewKind(tt.name))
		})
	}
	assert.Equal(t, "integer", column.Int.String())
	assert.Equal(t, "float", column.Float.String())
}

func TestZeros(t *testing.T) {
	c := column.Zeros(1)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, column.Float, c.Kind())
	assert.False(t, c.IsNull(0))
	assert.Equal(t, int64(0), c.Int(0))
	assert.Equal(t, "0", c.Str(0))
}

func TestFill(t *testing.T) {
	c := column.Fill(2, 1.5)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, column.Float, c.Kind())
	assert.Equal(t, 1.5, c.Float(1))
}

func TestNullUnless(t *testing.T) {
	ids := column.NewInt([]int64{0, 1, 2, 3})
	base := column.NewInt([]int64{10, 11, 12, 13})

	cond := make([]bool, ids.Len())
	for i, id := range ids.Ints() {
		cond[i] = id < 2
	}
	res := base.NullUnless(cond)

	assert.False(t, res.IsNull(0))
	assert.False(t, res.IsNull(1))
	assert.True(t, res.IsNull(2))
	assert.True(t, res.IsNull(3))
	assert.Nil(t, res.Value(3))
	assert.Equal(t, int64(11), res.Value(1))
	// the source column is not modified
	assert.False(t, base.HasNulls())
}

func TestFilter(t *testing.T) {
	c := column.NewString([]string{"a", "b", "c"}).
		NullUnless([]bool{true, false, true})
	res := c.Filter([]bool{false, true, true})

	require.Equal(t, 2, res.Len())
	assert.True(t, res.IsNull(0))
	assert.Equal(t, "c", res.Value(1))

	nulls := column.Nulls(3).Filter([]bool{true, false, true})
	assert.Equal(t, 2, nulls.Len())
	assert.True(t, nulls.IsNull(1))
}

func TestArithmetic(t *testing.T) {
	u := column.NewFloat([]float64{21.5, 22})
	g := column.NewFloat([]float64{20, 21}).NullUnless([]bool{true, false})

	res := column.Sub(u, g)
	assert.InDelta(t, 1.5, res.Float(0), 1e-9)
	assert.True(t, res.IsNull(1))
	assert.True(t, math.IsNaN(res.Float(1)))

	sum := column.Add(column.NewInt([]int64{1}), column.Zeros(1))
	assert.Equal(t, column.Float, sum.Kind())
	assert.Equal(t, 1.0, sum.Float(0))

	doubled := u.Map(func(x float64) float64 { return 2 * x })
	assert.Equal(t, []float64{43, 44}, doubled.Floats())
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		vals []any
		kind column.Kind
		strs []string
	}{
		{"ints", []any{int32(1), int64(2), nil}, column.Int, []string{"1", "2", ""}},
		{"promote to float", []any{1, 2.5}, column.Float, []string{"1", "2.5"}},
		{"strings win", []any{[]byte("x"), 3}, column.String, []string{"x", "3"}},
		{"only nulls", []any{nil, nil}, column.Unknown, []string{"", ""}},
		{"bools", []any{true, false}, column.Int, []string{"1", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := column.FromAny(tt.vals)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, c.Kind())
			assert.Equal(t, tt.strs, c.Strings())
		})
	}

	_, err := column.FromAny([]any{struct{}{}})
	assert.Error(t, err)
}

func TestSlice(t *testing.T) {
	c := column.NewInt([]int64{0, 1, 2, 3, 4}).
		NullUnless([]bool{true, true, false, true, true})

	res := c.Slice(1, 4)
	assert.Equal(t, 3, res.Len())
	assert.Equal(t, int64(1), res.Value(0))
	assert.True(t, res.IsNull(1))

	tail := c.Slice(3, 10)
	assert.Equal(t, []int64{3, 4}, tail.Ints())

	assert.Equal(t, 0, c.Slice(7, 10).Len())
}
