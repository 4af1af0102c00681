package rules

import (
	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/ent/column"
)

// Photometry derives colors from magnitudes in the u, g, r and i bands.
var Photometry = catalog.NewRuleSet("photometry").
	MustAdd("ug_color", color("umag", "gmag")).
	MustAdd("gr_color", color("gmag", "rmag")).
	MustAdd("ri_color", color("rmag", "imag"))

func init() {
	if err := Default.Register(Photometry); err != nil {
		panic(err)
	}
}

// color returns a rule for the difference of two magnitudes. It is null
// where either magnitude is null.
func color(blue, red string) catalog.Rule {
	return func(env catalog.Env) (column.Column, error) {
		b, err := env.Column(blue)
		if err != nil {
			return column.Column{}, err
		}
		r, err := env.Column(red)
		if err != nil {
			return column.Column{}, err
		}
		return column.Sub(b, r), nil
	}
}
