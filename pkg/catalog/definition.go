package catalog

import (
	"maps"
	"slices"
	"sync"

	"github.com/gnames/instcat/pkg/ent/column"
)

// AllColumns is the sentinel for Definition.Columns meaning every raw
// column of the data source plus every derived column.
const AllColumns = "all"

// BaseFormats are the default formats of a definition that does not set
// its own.
var BaseFormats = map[column.Kind]string{
	column.String: "%s",
	column.Float:  "%.4g",
	column.Int:    "%d",
}

const (
	defaultDelimiter      = ", "
	defaultLineTerminator = "\n"
)

// Definition describes a catalog type. It is registered once and can be
// shared by any number of catalog instances.
type Definition struct {
	// Name is the CamelCase name of the catalog type.
	Name string

	// Type is the unique id of the catalog type. When empty it is derived
	// from Name, see ToSnake.
	Type string

	// Columns are the output columns in output order. Empty or
	// []string{AllColumns} selects all available columns.
	Columns []string

	// CannotBeNull lists columns whose null value excludes a row from the
	// output.
	CannotBeNull []string

	// DefaultFormats maps value kinds to format templates.
	DefaultFormats map[column.Kind]string

	// OverrideFormats maps column names to format templates. They take
	// precedence over DefaultFormats.
	OverrideFormats map[string]string

	Delimiter      string
	LineTerminator string

	// Rules are the derivation rules of this catalog type.
	Rules *RuleSet

	// Modules are imported rule sets. Later modules take precedence over
	// earlier ones, and Rules take precedence over all modules.
	Modules []*RuleSet

	once  sync.Once
	table map[string]Rule
}

// TypeID returns the catalog type id.
func (d *Definition) TypeID() string {
	if d.Type != "" {
		return d.Type
	}
	return ToSnake(d.Name)
}

// RuleNames returns the sorted names of all derived columns.
func (d *Definition) RuleNames() []string {
	return slices.Sorted(maps.Keys(d.ruleTable()))
}

func (d *Definition) rule(col string) (Rule, bool) {
	r, ok := d.ruleTable()[col]
	return r, ok
}

func (d *Definition) ruleTable() map[string]Rule {
	d.once.Do(func() {
		d.table = make(map[string]Rule)
		sets := append(slices.Clone(d.Modules), d.Rules)
		for _, rs := range sets {
			if rs == nil {
				continue
			}
			for _, col := range rs.order {
				d.table[col] = rs.rules[col]
			}
		}
	})
	return d.table
}

func (d *Definition) allColumns() bool {
	return len(d.Columns) == 0 ||
		(len(d.Columns) == 1 && d.Columns[0] == AllColumns)
}

func (d *Definition) defaultFormats() map[column.Kind]string {
	if d.DefaultFormats == nil {
		return BaseFormats
	}
	return d.DefaultFormats
}

func (d *Definition) delimiter() string {
	if d.Delimiter == "" {
		return defaultDelimiter
	}
	return d.Delimiter
}

func (d *Definition) lineTerminator() string {
	if d.LineTerminator == "" {
		return defaultLineTerminator
	}
	return d.LineTerminator
}
