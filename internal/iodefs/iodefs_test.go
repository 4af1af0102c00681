package iodefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/instcat/internal/iodefs"
	"github.com/gnames/instcat/internal/iofs"
	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/ent/column"
	"github.com/gnames/instcat/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defsYAML = `
modules:
  - rules/extra.star
catalogs:
  - name: TrimCatalog
    columns: [id, ra, dec, ug_color, label]
    cannot_be_null: [ug_color]
    default_formats:
      float: "%.6f"
    override_formats:
      id: "%08i"
    modules: [photometry, extra]
  - name: RawCatalog
    type: raw
    columns: [all]
    delimiter: " "
`

const extraStar = `
def get_label(cat):
    return ["obj" + str(i) for i in cat.column("id")]
`

func writeDefs(t *testing.T, yml string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rules"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "rules", "extra.star"), []byte(extraStar), 0644))
	path := filepath.Join(dir, "catalogs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cats, err := iodefs.Load(writeDefs(t, defsYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"raw", "trim_catalog"}, cats.Types.Types())
	assert.Equal(t, []string{"extra", "photometry"}, cats.Modules.Names())

	def, err := cats.Types.Lookup("trim_catalog")
	require.NoError(t, err)
	assert.Equal(t, []string{"gr_color", "label", "ri_color", "ug_color"},
		def.RuleNames())
	assert.Equal(t, "%.6f", def.DefaultFormats[column.Float])
	assert.Equal(t, "%08i", def.OverrideFormats["id"])

	raw, err := cats.Types.Lookup("raw")
	require.NoError(t, err)
	assert.Equal(t, "RawCatalog", raw.Name)
	assert.Equal(t, " ", raw.Delimiter)
	assert.Equal(t, []string{catalog.AllColumns}, raw.Columns)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		msg  string
		yml  string
		code gn.ErrorCode
	}{
		{
			msg:  "unknown field",
			yml:  "catalogs:\n  - name: A\n    colums: [id]\n",
			code: errcode.DefinitionsParseError,
		},
		{
			msg:  "empty file",
			yml:  "",
			code: errcode.DefinitionsParseError,
		},
		{
			msg:  "unknown module",
			yml:  "catalogs:\n  - name: A\n    modules: [astrometry]\n",
			code: errcode.RuleModuleNotFoundError,
		},
		{
			msg:  "module shadows built-in",
			yml:  "modules: [rules/photometry.star]\ncatalogs:\n  - name: A\n",
			code: errcode.DefinitionsRegisterError,
		},
		{
			msg:  "missing module file",
			yml:  "modules: [rules/none.star]\ncatalogs:\n  - name: A\n",
			code: errcode.StarlarkLoadError,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			path := writeDefs(t, v.yml)
			dir := filepath.Dir(path)
			require.NoError(t, os.WriteFile(
				filepath.Join(dir, "rules", "photometry.star"),
				[]byte(extraStar), 0644))

			_, err := iodefs.Load(path)
			require.Error(t, err, v.msg)
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr), v.msg)
			assert.Equal(t, v.code, gnErr.Code, v.msg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := iodefs.Load(filepath.Join(t.TempDir(), "catalogs.yaml"))
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DefinitionsReadError, gnErr.Code)
}

func TestDefaultDefinitions(t *testing.T) {
	f, err := iodefs.Parse([]byte(iofs.CatalogsYAML))
	require.NoError(t, err)

	cats, err := iodefs.Build(f, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"color_catalog", "reference_catalog"},
		cats.Types.Types(),
	)
}
