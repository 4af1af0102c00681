package defs_test

import (
	"fmt"
	"testing"

	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/defs"
	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		msg  string
		file defs.File
		err  string
	}{
		{
			msg:  "valid",
			file: defs.File{Catalogs: []defs.CatalogDef{{Name: "Trim", Columns: []string{"id"}}}},
		},
		{
			msg:  "no catalogs",
			file: defs.File{},
			err:  "no catalogs",
		},
		{
			msg:  "no name",
			file: defs.File{Catalogs: []defs.CatalogDef{{Columns: []string{"id"}}}},
			err:  "name is required",
		},
		{
			msg: "bad kind",
			file: defs.File{Catalogs: []defs.CatalogDef{{
				Name:           "Trim",
				DefaultFormats: map[string]string{"double": "%f"},
			}}},
			err: "invalid default_formats key 'double'",
		},
		{
			msg: "duplicate column",
			file: defs.File{Catalogs: []defs.CatalogDef{{
				Name:    "Trim",
				Columns: []string{"id", "ra", "id"},
			}}},
			err: "listed twice",
		},
		{
			msg: "all with columns",
			file: defs.File{Catalogs: []defs.CatalogDef{{
				Name:    "Trim",
				Columns: []string{"all", "id"},
			}}},
			err: "cannot be combined",
		},
		{
			msg: "duplicate type",
			file: defs.File{Catalogs: []defs.CatalogDef{
				{Name: "TrimCatalog"},
				{Name: "Other", Type: "trim_catalog"},
			}},
			err: "same type 'trim_catalog'",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			err := v.file.Validate()
			if v.err == "" {
				assert.NoError(t, err, v.msg)
				return
			}
			require.Error(t, err, v.msg)
			assert.Contains(t, err.Error(), v.err, v.msg)
		})
	}
}

func TestDefinition(t *testing.T) {
	colors := catalog.NewRuleSet("colors")
	lookup := func(name string) (*catalog.RuleSet, error) {
		if name == "colors" {
			return colors, nil
		}
		return nil, fmt.Errorf("module '%s' not found", name)
	}

	c := defs.CatalogDef{
		Name:            "TrimCatalog",
		Columns:         []string{"id", "ra"},
		CannotBeNull:    []string{"ra"},
		DefaultFormats:  map[string]string{"float": "%.6f"},
		OverrideFormats: map[string]string{"id": "%08i"},
		Delimiter:       " ",
		Modules:         []string{"colors"},
	}
	def, err := c.Definition(lookup)
	require.NoError(t, err)
	assert.Equal(t, "trim_catalog", def.TypeID())
	assert.Equal(t, "%.6f", def.DefaultFormats[column.Float])
	assert.Equal(t, "%d", def.DefaultFormats[column.Int],
		"Kinds without a format keep the base format")
	assert.Equal(t, "%08i", def.OverrideFormats["id"])
	require.Len(t, def.Modules, 1)
	assert.Same(t, colors, def.Modules[0])

	c.Modules = []string{"astrometry"}
	_, err = c.Definition(lookup)
	assert.Error(t, err)
}
