package catalog_test

import (
	"errors"
	"testing"

	"github.com/gnames/instcat/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnake(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"InstanceCatalog", "instance_catalog"},
		{"TrimCatalog", "trim_catalog"},
		{"HTTPServer", "http_server"},
		{"TrimCatalogSersic2D", "trim_catalog_sersic2_d"},
		{"already_snake", "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.ToSnake(tt.name))
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := catalog.NewRegistry()

	err := reg.Register(&catalog.Definition{Name: "FilteredCat"})
	require.NoError(t, err)

	def, err := reg.Lookup("filtered_cat")
	require.NoError(t, err)
	assert.Equal(t, "FilteredCat", def.Name)

	// explicit type wins over the derived one
	err = reg.Register(&catalog.Definition{Name: "Other", Type: "trim_catalog"})
	require.NoError(t, err)
	assert.Equal(t, []string{"filtered_cat", "trim_catalog"}, reg.Types())
}

func TestRegistryDuplicate(t *testing.T) {
	reg := catalog.NewRegistry()
	reg.MustRegister(&catalog.Definition{Name: "TrimCatalog"})

	err := reg.Register(&catalog.Definition{Type: "trim_catalog"})
	require.Error(t, err)

	var dupErr *catalog.DuplicateTypeError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "trim_catalog", dupErr.Type)

	var defErr catalog.DefinitionError
	assert.True(t, errors.As(err, &defErr),
		"Duplicate type should be a definition error")

	assert.Panics(t, func() {
		reg.MustRegister(&catalog.Definition{Name: "TrimCatalog"})
	})
}

func TestRegistryLookupUnknown(t *testing.T) {
	reg := catalog.NewRegistry()
	_, err := reg.Lookup("nope")

	var unkErr *catalog.UnknownTypeError
	require.True(t, errors.As(err, &unkErr))
	assert.Equal(t, "nope", unkErr.Type)

	_, err = catalog.NewByType(reg, "nope", newTestSource(1))
	assert.True(t, errors.As(err, &unkErr))
}

func TestRegistryEmptyDefinition(t *testing.T) {
	reg := catalog.NewRegistry()
	assert.Error(t, reg.Register(&catalog.Definition{}))
	assert.Error(t, reg.Register(nil))
}
