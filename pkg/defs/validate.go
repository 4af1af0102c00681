package defs

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/ent/column"
)

// Validate checks the file for errors.
func (f *File) Validate() error {
	if len(f.Catalogs) == 0 {
		return fmt.Errorf("no catalogs specified in definitions")
	}

	types := make(map[string]int)
	for i := range f.Catalogs {
		c := &f.Catalogs[i]
		if err := c.Validate(); err != nil {
			return fmt.Errorf("catalog %d: %w", i+1, err)
		}
		typ := c.TypeID()
		if j, ok := types[typ]; ok {
			return fmt.Errorf("catalogs %d and %d have the same type '%s'",
				j, i+1, typ)
		}
		types[typ] = i + 1
	}
	return nil
}

// Validate checks a single catalog definition.
func (c *CatalogDef) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}

	for _, k := range slices.Sorted(maps.Keys(c.DefaultFormats)) {
		if column.NewKind(k) == column.Unknown {
			return fmt.Errorf(
				"invalid default_formats key '%s': must be 'string', 'float' or 'integer'",
				k,
			)
		}
	}

	seen := make(map[string]struct{})
	for _, v := range c.Columns {
		if v == "" {
			return fmt.Errorf("empty column name")
		}
		if _, ok := seen[v]; ok {
			return fmt.Errorf("column '%s' is listed twice", v)
		}
		seen[v] = struct{}{}
	}
	if len(c.Columns) > 1 && slices.Contains(c.Columns, catalog.AllColumns) {
		return fmt.Errorf("'%s' cannot be combined with other columns",
			catalog.AllColumns)
	}
	return nil
}

// TypeID returns the catalog type id.
func (c *CatalogDef) TypeID() string {
	if c.Type != "" {
		return c.Type
	}
	return catalog.ToSnake(c.Name)
}

// Definition converts the catalog to a catalog.Definition. Rule modules
// are found by lookup.
func (c *CatalogDef) Definition(
	lookup func(name string) (*catalog.RuleSet, error),
) (*catalog.Definition, error) {
	res := catalog.Definition{
		Name:            c.Name,
		Type:            c.Type,
		Columns:         slices.Clone(c.Columns),
		CannotBeNull:    slices.Clone(c.CannotBeNull),
		OverrideFormats: maps.Clone(c.OverrideFormats),
		Delimiter:       c.Delimiter,
		LineTerminator:  c.LineTerminator,
	}

	if len(c.DefaultFormats) > 0 {
		res.DefaultFormats = maps.Clone(catalog.BaseFormats)
		for k, v := range c.DefaultFormats {
			res.DefaultFormats[column.NewKind(k)] = v
		}
	}

	for _, name := range c.Modules {
		rs, err := lookup(name)
		if err != nil {
			return nil, err
		}
		res.Modules = append(res.Modules, rs)
	}
	return &res, nil
}
