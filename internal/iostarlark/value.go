package iostarlark

import (
	"fmt"

	"github.com/gnames/instcat/pkg/catalog"
	"go.starlark.net/starlark"
)

// catalogValue is the handle passed to rule functions.
type catalogValue struct {
	env catalog.Env

	// envErr is the first error returned by env.
	envErr error
}

var _ starlark.HasAttrs = (*catalogValue)(nil)

func (c *catalogValue) String() string        { return "<catalog>" }
func (c *catalogValue) Type() string          { return "catalog" }
func (c *catalogValue) Freeze()               {}
func (c *catalogValue) Truth() starlark.Bool  { return starlark.True }
func (c *catalogValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: catalog") }

func (c *catalogValue) AttrNames() []string {
	return []string{"column", "obs"}
}

func (c *catalogValue) Attr(name string) (starlark.Value, error) {
	switch name {
	case "column":
		return starlark.NewBuiltin("column", c.column), nil
	case "obs":
		return c.obs(), nil
	}
	return nil, nil
}

func (c *catalogValue) column(
	_ *starlark.Thread,
	b *starlark.Builtin,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	col, err := c.env.Column(name)
	if err != nil {
		if c.envErr == nil {
			c.envErr = err
		}
		return nil, err
	}
	return toStarlark(col), nil
}

// obs returns observation metadata as a dict.
func (c *catalogValue) obs() starlark.Value {
	o := c.env.Obs()
	if o == nil {
		return starlark.None
	}
	res := starlark.NewDict(8)
	_ = res.SetKey(starlark.String("mjd"), starlark.Float(o.MJD))
	_ = res.SetKey(starlark.String("bandpass"), starlark.String(o.Bandpass))
	if b := o.Bounds; b != nil {
		_ = res.SetKey(starlark.String("ra_min"), starlark.Float(b.RAMin))
		_ = res.SetKey(starlark.String("ra_max"), starlark.Float(b.RAMax))
		_ = res.SetKey(starlark.String("dec_min"), starlark.Float(b.DecMin))
		_ = res.SetKey(starlark.String("dec_max"), starlark.Float(b.DecMax))
	}
	for k, v := range o.Extra {
		var sv starlark.Value
		switch x := v.(type) {
		case string:
			sv = starlark.String(x)
		case float64:
			sv = starlark.Float(x)
		case int:
			sv = starlark.MakeInt(x)
		case int64:
			sv = starlark.MakeInt64(x)
		case bool:
			sv = starlark.Bool(x)
		default:
			continue
		}
		_ = res.SetKey(starlark.String(k), sv)
	}
	return res
}
