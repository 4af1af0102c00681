// Package defs provides the schema and validation of catalogs.yaml, the
// file where users declare catalog types.
//
// Example:
//
//	modules:
//	  - colors.star
//	catalogs:
//	  - name: TrimCatalog
//	    columns: [id, ra, dec, ug_color]
//	    cannot_be_null: [ug_color]
//	    default_formats:
//	      float: "%.6f"
//	    override_formats:
//	      id: "%08i"
//	    modules: [photometry, colors]
package defs

// Defs loads catalog definitions.
type Defs interface {
	Load() (*File, error)
}

// File represents the complete catalogs.yaml file.
type File struct {
	// Modules are paths of Starlark rule modules. Relative paths are
	// resolved against the directory of catalogs.yaml.
	Modules []string `yaml:"modules"`

	// Catalogs are catalog type definitions.
	Catalogs []CatalogDef `yaml:"catalogs"`
}

// CatalogDef is one catalog type.
type CatalogDef struct {
	// Name is the CamelCase name of the catalog type (required).
	Name string `yaml:"name"`

	// Type overrides the id derived from Name.
	Type string `yaml:"type,omitempty"`

	// Columns are output columns in output order. Empty or [all] selects
	// every available column.
	Columns []string `yaml:"columns"`

	CannotBeNull []string `yaml:"cannot_be_null,omitempty"`

	// DefaultFormats are keyed by value kind: string, float, integer.
	DefaultFormats map[string]string `yaml:"default_formats,omitempty"`

	// OverrideFormats are keyed by column name.
	OverrideFormats map[string]string `yaml:"override_formats,omitempty"`

	Delimiter      string `yaml:"delimiter,omitempty"`
	LineTerminator string `yaml:"line_terminator,omitempty"`

	// Modules are names of rule modules in import order.
	Modules []string `yaml:"modules,omitempty"`
}
