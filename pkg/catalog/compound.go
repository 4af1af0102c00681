package catalog

import (
	"context"
	"io"
	"log/slog"

	"github.com/gnames/instcat/pkg/source"
)

// Member is one catalog type and data source pair of a compound catalog.
type Member struct {
	Definition *Definition
	Source     source.DataSource
	Options    []Option
}

// Compound is an ordered group of independent catalog instances whose
// outputs are concatenated.
type Compound struct {
	catalogs []*Catalog
}

// NewCompound creates one catalog instance per member, in order. It fails
// on the first member that cannot be constructed.
func NewCompound(members ...Member) (*Compound, error) {
	res := Compound{catalogs: make([]*Catalog, 0, len(members))}
	for _, m := range members {
		cat, err := New(m.Definition, m.Source, m.Options...)
		if err != nil {
			return nil, err
		}
		res.catalogs = append(res.catalogs, cat)
	}
	return &res, nil
}

// Catalogs returns member instances in declared order.
func (c *Compound) Catalogs() []*Catalog {
	return c.catalogs
}

// WriteTo writes every member to w in declared order. Members do not share
// filters, templates or columns, only the destination.
func (c *Compound) WriteTo(
	ctx context.Context,
	w io.Writer,
	chunkSize int,
) ([]Stats, error) {
	res := make([]Stats, 0, len(c.catalogs))
	for i, cat := range c.catalogs {
		stats, err := cat.WriteTo(ctx, w, chunkSize)
		res = append(res, stats)
		if err != nil {
			return res, err
		}
		slog.Info("Compound member written",
			"member", i+1,
			"catalog_type", cat.Type(),
			"lines", stats.Written,
		)
	}
	return res, nil
}

// Close closes all member instances.
func (c *Compound) Close() {
	for _, cat := range c.catalogs {
		cat.Close()
	}
}
