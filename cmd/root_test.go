package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/instcat/internal/iotesting"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefs = `
modules:
  - extra.star
catalogs:
  - name: Mags
    columns: [id, mag]
    cannot_be_null: [mag]
    override_formats:
      mag: "%.1f"
  - name: Doubled
    columns: [id, double]
    cannot_be_null: [double]
    default_formats:
      float: "%.1f"
    modules: [extra]
`

const testStar = `
def get_double(cat):
    return [None if m == None else m * 2 for m in cat.column("mag")]
`

// setupHome creates a home directory with config.yaml pointing to a
// SQLite database of 5 rows (i, 10+i), where the mag of row 2 is null.
func setupHome(t *testing.T) string {
	t.Helper()
	home := iotesting.SetupHome(t)

	tbl := iotesting.Table{Columns: []string{"id INTEGER", "mag REAL"}}
	for i := range 5 {
		var mag any
		if i != 2 {
			mag = float64(10 + i)
		}
		tbl.Rows = append(tbl.Rows, []any{i, mag})
	}
	dbPath := iotesting.CreateDB(t, tbl)

	cfgYAML := fmt.Sprintf(`source:
  driver: sqlite
  dsn: %s
  table: objects
catalog:
  chunk_size: 2
`, dbPath)
	iotesting.WriteConfigFile(t, home, "config.yaml", cfgYAML)
	iotesting.WriteConfigFile(t, home, "catalogs.yaml", testDefs)
	iotesting.WriteConfigFile(t, home, "extra.star", testStar)
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// TestGetRootCmd verifies the command name and subcommands.
func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "instcat", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, v := range []string{"batch", "columns", "compound", "write"} {
		assert.Contains(t, names, v)
	}
}

// TestGetRootCmd_Version verifies both version flags.
func TestGetRootCmd_Version(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{flag})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), "v1.2.3")
			assert.Contains(t, buf.String(), "abc123")
		})
	}
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "instance catalog")
	assert.Contains(t, out, "INSTCAT_")
}

func TestSubcommandArgs(t *testing.T) {
	tests := []struct {
		msg  string
		cmd  *cobra.Command
		args []string
		ok   bool
	}{
		{"columns one", getColumnsCmd(), []string{"a"}, true},
		{"columns none", getColumnsCmd(), nil, false},
		{"columns two", getColumnsCmd(), []string{"a", "b"}, false},
		{"write one", getWriteCmd(), []string{"a"}, true},
		{"write two", getWriteCmd(), []string{"a", "b"}, false},
		{"compound none", getCompoundCmd(), nil, false},
		{"compound two", getCompoundCmd(), []string{"a", "b"}, true},
		{"batch none", getBatchCmd(), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := tt.cmd.Args(tt.cmd, tt.args)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestColumnsCmd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	setupHome(t)

	out, err := execute(t, "columns", "doubled")
	require.NoError(t, err)
	assert.Equal(t, "required: id, mag\noutput:   id, double\n", out)
}

func TestWriteCmd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	home := setupHome(t)
	path := filepath.Join(home, "mags.txt")

	_, err := execute(t, "write", "mags", "-o", path)
	require.NoError(t, err)
	assert.Equal(t, "0, 10.0\n1, 11.0\n3, 13.0\n4, 14.0\n", readOutput(t, path))

	_, err = execute(t, "write", "mags", "-o", path,
		"--header", "--constraint", "id > 2", "-c", "0")
	require.NoError(t, err)
	assert.Equal(t, "# id, mag\n3, 13.0\n4, 14.0\n", readOutput(t, path))
	assert.Equal(t, 0, cfg.Catalog.ChunkSize)

	_, err = execute(t, "write", "nope", "-o", path)
	assert.Error(t, err)
}

func TestWriteCmdDefsFlag(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	home := setupHome(t)
	defs := filepath.Join(home, "other.yaml")
	require.NoError(t, os.WriteFile(defs, []byte(`catalogs:
  - name: Ids
    columns: [id]
`), 0644))
	path := filepath.Join(home, "ids.txt")

	_, err := execute(t, "write", "ids", "-o", path, "--defs", defs)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n3\n4\n", readOutput(t, path))
}

func TestCompoundCmd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	home := setupHome(t)
	path := filepath.Join(home, "compound.txt")

	_, err := execute(t, "compound", "doubled", "mags", "-o", path)
	require.NoError(t, err)
	want := "0, 20.0\n1, 22.0\n3, 26.0\n4, 28.0\n" +
		"0, 10.0\n1, 11.0\n3, 13.0\n4, 14.0\n"
	assert.Equal(t, want, readOutput(t, path))
}

func TestBatchCmd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	home := setupHome(t)
	dir := filepath.Join(home, "out")

	_, err := execute(t, "batch", "doubled", "mags", "-d", dir)
	require.NoError(t, err)
	assert.Equal(t, "0, 20.0\n1, 22.0\n3, 26.0\n4, 28.0\n",
		readOutput(t, filepath.Join(dir, "doubled.txt")))
	assert.Equal(t, "0, 10.0\n1, 11.0\n3, 13.0\n4, 14.0\n",
		readOutput(t, filepath.Join(dir, "mags.txt")))
}
