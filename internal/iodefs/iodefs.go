// Package iodefs reads catalog definitions from catalogs.yaml and loads
// the Starlark rule modules it refers to.
package iodefs

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/instcat/internal/iostarlark"
	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/defs"
	"github.com/gnames/instcat/pkg/rules"
	"gopkg.in/yaml.v3"
)

type iodefs struct {
	path string
}

// New creates a loader of the definitions file at path.
func New(path string) defs.Defs {
	return &iodefs{path: path}
}

// Load implements defs.Defs.
func (d *iodefs) Load() (*defs.File, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, ReadError(d.path, err)
	}
	res, err := Parse(data)
	if err != nil {
		return nil, ParseError(d.path, err)
	}
	return res, nil
}

// Parse decodes and validates definitions. Unknown fields are errors.
func Parse(data []byte) (*defs.File, error) {
	var res defs.File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&res); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

// Catalogs are catalog types ready to be instantiated.
type Catalogs struct {
	// Types are the registered catalog types.
	Types *catalog.Registry

	// Modules are built-in rule modules plus the loaded Starlark ones.
	Modules *rules.Registry
}

// Load reads the definitions file at path and registers its catalog
// types.
func Load(path string) (*Catalogs, error) {
	f, err := New(path).Load()
	if err != nil {
		return nil, err
	}
	return Build(f, filepath.Dir(path))
}

// Build loads Starlark modules of f, with relative paths resolved against
// baseDir, and registers all catalog types of f.
func Build(f *defs.File, baseDir string) (*Catalogs, error) {
	res := Catalogs{
		Types:   catalog.NewRegistry(),
		Modules: rules.Default.Clone(),
	}

	for _, path := range f.Modules {
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		rs, err := iostarlark.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err = res.Modules.Register(rs); err != nil {
			return nil, RegisterError(rs.Name(), err)
		}
		slog.Info("Rule module loaded",
			"module", rs.Name(),
			"rules", len(rs.Names()),
		)
	}

	for i := range f.Catalogs {
		c := &f.Catalogs[i]
		def, err := c.Definition(res.Modules.Lookup)
		if err != nil {
			return nil, ModuleNotFoundError(c.TypeID(), err)
		}
		if err = res.Types.Register(def); err != nil {
			return nil, RegisterError(c.TypeID(), err)
		}
	}
	return &res, nil
}
