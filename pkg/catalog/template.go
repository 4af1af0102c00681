package catalog

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/instcat/pkg/ent/column"
)

// NullText is written for null values of rows that survive filtering.
const NullText = "NULL"

// fallbackFormat is used when no format can be found for a column.
const fallbackFormat = "%v"

type fieldFormat struct {
	layout string
	verb   byte
	// kind is set when the format was chosen by value kind.
	kind column.Kind
}

// lineTemplate formats one output line. It is derived from the first chunk
// of a write and stays fixed until the write ends.
type lineTemplate struct {
	fields     []fieldFormat
	delimiter  string
	terminator string
}

// makeTemplate picks a format for every output column: an override for the
// column name, then a default for the value kind, then the fallback. Each
// fallback is logged and returned as a warning.
func (c *Catalog) makeTemplate(cols []column.Column) (*lineTemplate, []string) {
	var warnings []string
	defaults := c.def.defaultFormats()
	res := lineTemplate{
		fields:     make([]fieldFormat, len(cols)),
		delimiter:  c.def.delimiter(),
		terminator: c.def.lineTerminator(),
	}

	for i, name := range c.columns {
		if layout, ok := c.def.OverrideFormats[name]; ok {
			res.fields[i] = newFieldFormat(layout, column.Unknown)
			continue
		}

		kind := cols[i].Kind()
		if layout, ok := defaults[kind]; ok {
			res.fields[i] = newFieldFormat(layout, kind)
			continue
		}

		msg := fmt.Sprintf(
			"using raw formatting for column '%s' with type %s", name, kind,
		)
		slog.Warn("Format fallback",
			"catalog_type", c.Type(),
			"column", name,
			"kind", kind.String(),
		)
		warnings = append(warnings, msg)
		res.fields[i] = newFieldFormat(fallbackFormat, column.Unknown)
	}
	return &res, warnings
}

// newFieldFormat accepts printf layouts with a single verb, optionally
// surrounded by literal text. The integer verb 'i' is translated to 'd'.
func newFieldFormat(layout string, kind column.Kind) fieldFormat {
	layout = strings.TrimSpace(layout)
	pos := verbIndex(layout)
	if pos < 0 {
		return fieldFormat{layout: layout, kind: kind}
	}
	if layout[pos] == 'i' {
		layout = layout[:pos] + "d" + layout[pos+1:]
	}
	return fieldFormat{layout: layout, verb: layout[pos], kind: kind}
}

// verbIndex returns the position of the first printf verb in layout, or -1.
func verbIndex(layout string) int {
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' {
			continue
		}
		j := i + 1
		if j < len(layout) && layout[j] == '%' {
			i = j
			continue
		}
		for j < len(layout) && strings.IndexByte("+-# 0123456789.", layout[j]) >= 0 {
			j++
		}
		if j < len(layout) {
			return j
		}
		return -1
	}
	return -1
}

// check makes sure columns of a later chunk still fit the template.
func (t *lineTemplate) check(c *Catalog, cols []column.Column) error {
	for i, f := range t.fields {
		if f.kind == column.Unknown {
			continue
		}
		got := cols[i].Kind()
		if got != column.Unknown && got != f.kind {
			return &KindMismatchError{
				Type:   c.Type(),
				Column: c.columns[i],
				Want:   f.kind,
				Got:    got,
			}
		}
	}
	return nil
}

// appendLine writes the formatted row i to buf.
func (t *lineTemplate) appendLine(buf *bytes.Buffer, cols []column.Column, i int) {
	for j, f := range t.fields {
		if j > 0 {
			buf.WriteString(t.delimiter)
		}
		buf.WriteString(f.format(cols[j], i))
	}
	buf.WriteString(t.terminator)
}

func (f fieldFormat) format(col column.Column, i int) string {
	if col.IsNull(i) {
		return NullText
	}
	switch f.verb {
	case 'd', 'x', 'X', 'o', 'b':
		return fmt.Sprintf(f.layout, col.Int(i))
	case 'e', 'E', 'f', 'F', 'g', 'G':
		return fmt.Sprintf(f.layout, col.Float(i))
	case 's', 'q':
		return fmt.Sprintf(f.layout, col.Str(i))
	default:
		return fmt.Sprintf(f.layout, col.Value(i))
	}
}
