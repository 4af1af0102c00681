// Package column provides the typed, nullable value sequences that flow
// through catalog generation. A Column holds the values of one catalog
// column for one chunk of rows.
//
// Every Column has a Kind. The kind decides which default output format
// applies to it. Null values are tracked with a separate mask, so a null is
// a well-defined state of a row and never a special value of the data.
package column

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the value kind of a column.
type Kind int

const (
	// Unknown is the kind of a column that has no non-null values.
	Unknown Kind = iota
	String
	Float
	Int
)

var kindNames = map[Kind]string{
	Unknown: "unknown",
	String:  "string",
	Float:   "float",
	Int:     "integer",
}

// String returns the name of the kind as it is used in format tables.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// NewKind converts a name to a Kind. Besides the canonical names it
// accepts the one-letter codes 'S', 'f' and 'i'.
func NewKind(s string) Kind {
	switch strings.TrimSpace(s) {
	case "string", "str", "S":
		return String
	case "float", "f":
		return Float
	case "integer", "int", "i":
		return Int
	default:
		return Unknown
	}
}

// Column is an immutable sequence of values of one kind.
type Column struct {
	kind   Kind
	length int
	strs   []string
	floats []float64
	ints   []int64
	// nulls is nil when the column has no null values.
	nulls []bool
}

// NewFloat creates a float column.
func NewFloat(vals []float64) Column {
	return Column{kind: Float, length: len(vals), floats: vals}
}

// NewInt creates an integer column.
func NewInt(vals []int64) Column {
	return Column{kind: Int, length: len(vals), ints: vals}
}

// NewString creates a string column.
func NewString(vals []string) Column {
	return Column{kind: String, length: len(vals), strs: vals}
}

// Nulls creates a column of n null values of Unknown kind.
func Nulls(n int) Column {
	nulls := make([]bool, n)
	for i := range nulls {
		nulls[i] = true
	}
	return Column{kind: Unknown, length: n, nulls: nulls}
}

// Zeros creates a float column of n zeros.
func Zeros(n int) Column {
	return NewFloat(make([]float64, n))
}

// Fill creates a float column of n copies of v.
func Fill(n int, v float64) Column {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return NewFloat(vals)
}

// Len returns the number of rows.
func (c Column) Len() int {
	return c.length
}

// Kind returns the value kind of the column.
func (c Column) Kind() Kind {
	return c.kind
}

// HasNulls reports whether at least one row is null.
func (c Column) HasNulls() bool {
	for _, v := range c.nulls {
		if v {
			return true
		}
	}
	return false
}

// IsNull reports whether the row i is null.
func (c Column) IsNull(i int) bool {
	if c.kind == Unknown {
		return true
	}
	return c.nulls != nil && c.nulls[i]
}

// Float returns the row i as float64. Null rows and unparsable strings
// give NaN.
func (c Column) Float(i int) float64 {
	if c.IsNull(i) {
		return math.NaN()
	}
	switch c.kind {
	case Float:
		return c.floats[i]
	case Int:
		return float64(c.ints[i])
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.strs[i]), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

// Int returns the row i as int64. Floats are truncated; null rows and
// unparsable strings give 0.
func (c Column) Int(i int) int64 {
	if c.IsNull(i) {
		return 0
	}
	switch c.kind {
	case Int:
		return c.ints[i]
	case Float:
		return int64(c.floats[i])
	case String:
		s := strings.TrimSpace(c.strs[i])
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

// Str returns the row i as a string. Null rows give an empty string.
func (c Column) Str(i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch c.kind {
	case String:
		return c.strs[i]
	case Int:
		return strconv.FormatInt(c.ints[i], 10)
	case Float:
		return strconv.FormatFloat(c.floats[i], 'g', -1, 64)
	}
	return ""
}

// Floats returns all rows converted to float64.
func (c Column) Floats() []float64 {
	res := make([]float64, c.length)
	for i := range res {
		res[i] = c.Float(i)
	}
	return res
}

// Ints returns all rows converted to int64.
func (c Column) Ints() []int64 {
	res := make([]int64, c.length)
	for i := range res {
		res[i] = c.Int(i)
	}
	return res
}

// Strings returns all rows converted to strings.
func (c Column) Strings() []string {
	res := make([]string, c.length)
	for i := range res {
		res[i] = c.Str(i)
	}
	return res
}

// Value returns the row i as string, float64 or int64, or nil when the
// row is null.
func (c Column) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	switch c.kind {
	case String:
		return c.strs[i]
	case Float:
		return c.floats[i]
	case Int:
		return c.ints[i]
	}
	return nil
}

// NullUnless returns a copy of the column where every row i with
// cond[i] == false is null. Rows beyond the length of cond keep their
// values.
func (c Column) NullUnless(cond []bool) Column {
	nulls := make([]bool, c.length)
	for i := range nulls {
		nulls[i] = c.IsNull(i) || (i < len(cond) && !cond[i])
	}
	res := c
	res.nulls = nulls
	return res
}

// Filter returns a new column that contains only the rows i with
// keep[i] == true.
func (c Column) Filter(keep []bool) Column {
	var n int
	for i := 0; i < c.length && i < len(keep); i++ {
		if keep[i] {
			n++
		}
	}

	res := Column{kind: c.kind, length: n}
	if c.nulls != nil {
		res.nulls = make([]bool, 0, n)
	}
	switch c.kind {
	case String:
		res.strs = make([]string, 0, n)
	case Float:
		res.floats = make([]float64, 0, n)
	case Int:
		res.ints = make([]int64, 0, n)
	}

	for i := 0; i < c.length && i < len(keep); i++ {
		if !keep[i] {
			continue
		}
		if c.nulls != nil {
			res.nulls = append(res.nulls, c.nulls[i])
		}
		switch c.kind {
		case String:
			res.strs = append(res.strs, c.strs[i])
		case Float:
			res.floats = append(res.floats, c.floats[i])
		case Int:
			res.ints = append(res.ints, c.ints[i])
		}
	}
	if c.kind == Unknown {
		res.nulls = make([]bool, n)
		for i := range res.nulls {
			res.nulls[i] = true
		}
	}
	return res
}

// Slice returns rows from i up to, but not including, j.
func (c Column) Slice(i, j int) Column {
	j = min(j, c.length)
	i = min(i, j)
	res := Column{kind: c.kind, length: j - i}
	switch c.kind {
	case String:
		res.strs = c.strs[i:j]
	case Float:
		res.floats = c.floats[i:j]
	case Int:
		res.ints = c.ints[i:j]
	}
	if c.nulls != nil {
		res.nulls = c.nulls[i:j]
	}
	return res
}

// Apply2 combines two columns row by row as floats. A row is null in the
// result when it is null in either input. The result has the length of
// the shorter input.
func Apply2(a, b Column, fn func(x, y float64) float64) Column {
	n := min(a.Len(), b.Len())
	vals := make([]float64, n)
	var nulls []bool
	for i := range n {
		if a.IsNull(i) || b.IsNull(i) {
			if nulls == nil {
				nulls = make([]bool, n)
			}
			nulls[i] = true
			continue
		}
		vals[i] = fn(a.Float(i), b.Float(i))
	}
	res := NewFloat(vals)
	res.nulls = nulls
	return res
}

// Sub returns a - b row by row.
func Sub(a, b Column) Column {
	return Apply2(a, b, func(x, y float64) float64 { return x - y })
}

// Add returns a + b row by row.
func Add(a, b Column) Column {
	return Apply2(a, b, func(x, y float64) float64 { return x + y })
}

// Map applies fn to every non-null row of the column and returns a float
// column.
func (c Column) Map(fn func(float64) float64) Column {
	vals := make([]float64, c.length)
	for i := range vals {
		if !c.IsNull(i) {
			vals[i] = fn(c.Float(i))
		}
	}
	res := NewFloat(vals)
	if c.HasNulls() || c.kind == Unknown {
		res.nulls = make([]bool, c.length)
		for i := range res.nulls {
			res.nulls[i] = c.IsNull(i)
		}
	}
	return res
}

// String implements fmt.Stringer for debugging.
func (c Column) String() string {
	vals := make([]string, c.length)
	for i := range vals {
		if c.IsNull(i) {
			vals[i] = "NULL"
			continue
		}
		vals[i] = fmt.Sprint(c.Value(i))
	}
	return fmt.Sprintf("%s[%s]", c.kind, strings.Join(vals, " "))
}
