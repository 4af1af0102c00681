// Package iostarlark loads derivation rules written in Starlark.
//
// A module is a Starlark file. Every top-level function named
// get_<column> with one parameter becomes the rule for <column>. The
// parameter is a catalog handle with a column(name) method, which returns
// a list of values (None for null), and an obs attribute, which is a dict
// of observation metadata or None. A rule returns a list with one value
// per row.
//
//	def get_ug_color(cat):
//	    u = cat.column("umag")
//	    g = cat.column("gmag")
//	    return [None if a == None or b == None else a - b for a, b in zip(u, g)]
package iostarlark

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/instcat/pkg/catalog"
	"go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	rulePrefix = "get_"

	// defaultMaxSteps bounds one rule call on one chunk.
	defaultMaxSteps = uint64(1) << 34
	maxModuleBytes  = 1024 * 1024
)

var predeclared = starlark.StringDict{
	"math": math.Module,
}

// LoadFile loads a module from a .star file. The module name is the file
// name without extension.
func LoadFile(path string) (*catalog.RuleSet, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadError(path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Load(name, string(src))
}

// Load executes module source and collects its rules.
func Load(name, src string) (*catalog.RuleSet, error) {
	if len(src) > maxModuleBytes {
		return nil, LoadError(name,
			fmt.Errorf("module exceeds %d bytes", maxModuleBytes))
	}

	thread := &starlark.Thread{Name: "load " + name}
	thread.SetMaxExecutionSteps(defaultMaxSteps)
	globals, err := starlark.ExecFileOptions(
		&syntax.FileOptions{}, thread, name+".star", src, predeclared,
	)
	if err != nil {
		return nil, LoadError(name, err)
	}

	res := catalog.NewRuleSet(name)
	keys := globals.Keys()
	slices.Sort(keys)
	for _, k := range keys {
		col, ok := strings.CutPrefix(k, rulePrefix)
		if !ok || col == "" {
			continue
		}
		fn, ok := globals[k].(*starlark.Function)
		if !ok {
			continue
		}
		if fn.NumParams() != 1 {
			return nil, LoadError(name,
				fmt.Errorf("%s must take exactly one parameter", k))
		}
		if err = res.Add(col, newRule(col, fn)); err != nil {
			return nil, LoadError(name, err)
		}
	}

	if len(res.Names()) == 0 {
		return nil, LoadError(name,
			fmt.Errorf("no %s<column> functions found", rulePrefix))
	}
	return res, nil
}
