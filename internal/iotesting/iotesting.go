// Package iotesting provides shared fixtures for tests that read from a
// data source or run commands against a home directory.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/instcat/pkg/config"
	_ "modernc.org/sqlite"
)

// Table describes a fixture table.
type Table struct {
	// Name of the table, "objects" when empty.
	Name string

	// Columns are column definitions, for example "id INTEGER".
	Columns []string

	// Rows are inserted in order. A nil value is stored as NULL.
	Rows [][]any
}

func (tbl Table) name() string {
	if tbl.Name == "" {
		return "objects"
	}
	return tbl.Name
}

// CreateDB writes a SQLite database file with one table and returns its
// path. The file is removed when the test finishes.
func CreateDB(t *testing.T, tbl Table) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), tbl.name()+".db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)",
		tbl.name(), strings.Join(tbl.Columns, ", "))
	if _, err = db.Exec(ddl); err != nil {
		t.Fatalf("Failed to create table %s: %v", tbl.name(), err)
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(tbl.Columns)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)", tbl.name(), marks)
	for i, row := range tbl.Rows {
		if _, err = db.Exec(insert, row...); err != nil {
			t.Fatalf("Failed to insert row %d: %v", i, err)
		}
	}
	return path
}

// SourceConfig returns the default source configuration pointed at a
// SQLite database created by CreateDB.
func SourceConfig(path string, tbl Table) config.SourceConfig {
	res := config.New().Source
	res.Driver = "sqlite"
	res.DSN = path
	res.Table = tbl.name()
	return res
}

// SetupHome points HOME to a temporary directory and creates the instcat
// config directory in it. HOME is restored when the test finishes.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    home := iotesting.SetupHome(t)
//	    iotesting.WriteConfigFile(t, home, "config.yaml", cfgYAML)
//	    // run commands
//	}
//
// Returns the temporary home directory.
func SetupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := os.MkdirAll(config.ConfigDir(home), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	return home
}

// WriteConfigFile writes a file to the instcat config directory of home.
// Must be called after SetupHome().
func WriteConfigFile(t *testing.T, home, name, content string) string {
	t.Helper()
	path := filepath.Join(config.ConfigDir(home), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
