// Package catalog generates instance catalogs: flat text files with one
// line per object, where some columns come directly from a data source and
// others are derived from them by named rules.
//
// A catalog type is a Definition kept in a Registry. A Catalog pairs a
// definition with a source.DataSource. When a Catalog is created, every
// output column is resolved once against a recording probe instead of real
// data. The raw columns touched during that dry run are the only columns
// the data source is asked for, and they are validated before any query
// runs.
package catalog

import (
	"maps"
	"slices"

	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/gnames/instcat/pkg/source"
)

// State is the life-cycle state of a catalog instance.
type State int

const (
	Constructed State = iota
	RequirementsValidated
	Writing
	Closed
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case RequirementsValidated:
		return "validated"
	case Writing:
		return "writing"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Option configures a catalog instance.
type Option func(*Catalog)

// OptConstraint sets the constraint string passed to the data source.
func OptConstraint(s string) Option {
	return func(c *Catalog) {
		c.constraint = s
	}
}

// OptObsMetadata sets observation metadata passed to the data source and
// to derivation rules.
func OptObsMetadata(obs *source.ObsMetadata) Option {
	return func(c *Catalog) {
		c.obs = obs
	}
}

// Catalog is an instance of a catalog type bound to one data source.
type Catalog struct {
	def        *Definition
	src        source.DataSource
	obs        *source.ObsMetadata
	constraint string

	columns      []string
	cannotBeNull []string
	required     []string
	state        State

	// active is the column source rules read raw columns from. It is set
	// only for the duration of a resolution pass.
	active columnSource
}

// New creates a catalog instance, discovers the raw columns it needs and
// validates them against the data source.
func New(
	def *Definition,
	src source.DataSource,
	opts ...Option,
) (*Catalog, error) {
	res := &Catalog{
		def:          def,
		src:          src,
		cannotBeNull: slices.Clone(def.CannotBeNull),
		state:        Constructed,
	}
	for _, opt := range opts {
		opt(res)
	}

	if def.allColumns() {
		res.columns = res.availableColumns()
	} else {
		res.columns = slices.Clone(def.Columns)
	}

	if err := res.checkRequirements(); err != nil {
		return nil, err
	}
	res.state = RequirementsValidated
	return res, nil
}

// NewByType looks up a catalog type in the registry and creates an instance
// of it.
func NewByType(
	reg *Registry,
	typ string,
	src source.DataSource,
	opts ...Option,
) (*Catalog, error) {
	def, err := reg.Lookup(typ)
	if err != nil {
		return nil, err
	}
	return New(def, src, opts...)
}

// Type returns the catalog type id.
func (c *Catalog) Type() string {
	return c.def.TypeID()
}

// Definition returns the definition of the catalog.
func (c *Catalog) Definition() *Definition {
	return c.def
}

// State returns the current life-cycle state.
func (c *Catalog) State() State {
	return c.state
}

// Columns returns the output columns in output order.
func (c *Catalog) Columns() []string {
	return slices.Clone(c.columns)
}

// RequiredColumns returns the sorted raw columns the data source has to
// supply, as found at construction.
func (c *Catalog) RequiredColumns() []string {
	return slices.Clone(c.required)
}

// CannotBeNull returns the columns used for null filtering.
func (c *Catalog) CannotBeNull() []string {
	return slices.Clone(c.cannotBeNull)
}

// SetCannotBeNull replaces the null filter. It takes effect on the next
// write.
func (c *Catalog) SetCannotBeNull(cols ...string) {
	c.cannotBeNull = slices.Clone(cols)
}

// Close makes the instance unusable for further writes.
func (c *Catalog) Close() {
	c.state = Closed
}

// Resolve returns the values of a column for the active chunk. Outside of
// a write there is no active chunk and raw columns cannot be resolved.
func (c *Catalog) Resolve(name string) (column.Column, error) {
	return c.newResolver().Column(name)
}

// availableColumns returns the sorted union of raw and derived columns.
func (c *Catalog) availableColumns() []string {
	set := make(map[string]struct{})
	for k := range c.src.ColumnMap() {
		set[k] = struct{}{}
	}
	for _, k := range c.def.RuleNames() {
		set[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// checkRequirements fails when output columns cannot be resolved, or when
// raw columns needed by the catalog are missing from the data source. Both
// sets are reported together.
func (c *Catalog) checkRequirements() error {
	colMap := c.src.ColumnMap()

	var unresolved []string
	for _, col := range c.columns {
		if _, ok := c.def.rule(col); ok {
			continue
		}
		if _, ok := colMap[col]; !ok {
			unresolved = append(unresolved, col)
		}
	}

	required, err := c.discoverRequirements()
	if err != nil {
		if len(unresolved) > 0 {
			return &UnresolvedColumnsError{Type: c.Type(), Columns: unresolved}
		}
		return err
	}

	var missing []string
	for _, col := range required {
		if _, ok := colMap[col]; ok || slices.Contains(unresolved, col) {
			continue
		}
		missing = append(missing, col)
	}
	if len(unresolved) > 0 {
		return &UnresolvedColumnsError{
			Type:    c.Type(),
			Columns: unresolved,
			Missing: missing,
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Type: c.Type(), Columns: missing}
	}

	c.required = required
	return nil
}

// discoverRequirements resolves every output column against a recording
// probe and returns the raw columns that were touched.
func (c *Catalog) discoverRequirements() ([]string, error) {
	p := newProbe()
	restore := c.use(p)
	defer restore()

	r := c.newResolver()
	for _, col := range c.columns {
		if _, err := r.Column(col); err != nil {
			return nil, err
		}
	}
	return p.referenced(), nil
}

// use installs a column source as the active one and returns a function
// that restores the previous one.
func (c *Catalog) use(cs columnSource) func() {
	saved := c.active
	c.active = cs
	return func() {
		c.active = saved
	}
}
