package iostarlark

import (
	"fmt"

	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/ent/column"
	"go.starlark.net/starlark"
)

// newRule wraps a Starlark function into a catalog rule.
func newRule(col string, fn *starlark.Function) catalog.Rule {
	return func(env catalog.Env) (column.Column, error) {
		handle := &catalogValue{env: env}
		thread := &starlark.Thread{Name: "rule " + col}
		thread.SetMaxExecutionSteps(defaultMaxSteps)

		res, err := starlark.Call(thread, fn, starlark.Tuple{handle}, nil)
		if handle.envErr != nil {
			// missing columns and cycles keep their type
			return column.Column{}, handle.envErr
		}
		if err != nil {
			return column.Column{}, err
		}
		return toColumn(res)
	}
}

// toColumn converts a list returned by a rule.
func toColumn(v starlark.Value) (column.Column, error) {
	iter, ok := v.(starlark.Iterable)
	if !ok {
		return column.Column{}, fmt.Errorf("rule returned %s, want list", v.Type())
	}
	it := iter.Iterate()
	defer it.Done()

	var vals []any
	var x starlark.Value
	for it.Next(&x) {
		val, err := toGo(x)
		if err != nil {
			return column.Column{}, err
		}
		vals = append(vals, val)
	}
	return column.FromAny(vals)
}

func toGo(v starlark.Value) (any, error) {
	switch x := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Int:
		i, ok := x.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s is too large", x)
		}
		return i, nil
	case starlark.Float:
		return float64(x), nil
	case starlark.String:
		return string(x), nil
	case starlark.Bool:
		return bool(x), nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", v.Type())
	}
}

// toStarlark converts a column to a list.
func toStarlark(col column.Column) *starlark.List {
	vals := make([]starlark.Value, col.Len())
	for i := range vals {
		switch v := col.Value(i).(type) {
		case nil:
			vals[i] = starlark.None
		case int64:
			vals[i] = starlark.MakeInt64(v)
		case float64:
			vals[i] = starlark.Float(v)
		case string:
			vals[i] = starlark.String(v)
		}
	}
	return starlark.NewList(vals)
}
