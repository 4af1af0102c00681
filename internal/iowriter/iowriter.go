// Package iowriter implements instcat.Writer. It opens data sources from
// the configuration, writes catalogs to files and records metrics.
package iowriter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/instcat/internal/iofs"
	"github.com/gnames/instcat/internal/iometrics"
	"github.com/gnames/instcat/internal/iosource"
	"github.com/gnames/instcat/pkg/catalog"
	"github.com/gnames/instcat/pkg/config"
	"github.com/gnames/instcat/pkg/instcat"
	"github.com/gnames/instcat/pkg/source"
	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

type writer struct {
	cfg     *config.Config
	types   *catalog.Registry
	metrics *iometrics.Metrics
}

// New creates a Writer for catalog types of the registry. Metrics can be
// nil.
func New(
	cfg *config.Config,
	types *catalog.Registry,
	m *iometrics.Metrics,
) instcat.Writer {
	return &writer{cfg: cfg, types: types, metrics: m}
}

// Columns creates an instance of the catalog type to report its columns.
// Nothing is read from the data source.
func (w *writer) Columns(
	ctx context.Context,
	typ string,
) ([]string, []string, error) {
	cat, src, err := w.open(ctx, typ, nil)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()
	defer cat.Close()

	return cat.RequiredColumns(), cat.Columns(), nil
}

// Write writes one catalog type to path.
func (w *writer) Write(
	ctx context.Context,
	typ, path string,
	obs *source.ObsMetadata,
) (*instcat.Report, error) {
	runID := uuid.NewString()
	slog.Info("Writing catalog",
		"run_id", runID,
		"catalog_type", typ,
		"path", path,
	)

	cat, src, err := w.open(ctx, typ, obs)
	if err != nil {
		w.record(catalog.Stats{Type: typ}, 0, err)
		return nil, err
	}
	defer src.Close()
	defer cat.Close()

	return w.writeFile(path, runID, func(out io.Writer) ([]catalog.Stats, error) {
		if err := w.writeHeader(out, cat.Columns(), path); err != nil {
			return []catalog.Stats{{Type: typ}}, err
		}
		stats, err := w.writeCatalog(ctx, cat, out, path)
		return []catalog.Stats{stats}, err
	})
}

// WriteCompound creates every member first, so a member that cannot be
// created leaves no file behind, and then writes members in order. The
// header, if any, is written once with the columns of the first member.
func (w *writer) WriteCompound(
	ctx context.Context,
	types []string,
	path string,
	obs *source.ObsMetadata,
) (*instcat.Report, error) {
	runID := uuid.NewString()
	slog.Info("Writing compound catalog",
		"run_id", runID,
		"catalog_types", types,
		"path", path,
	)

	members := make([]catalog.Member, 0, len(types))
	srcs := make([]iosource.Source, 0, len(types))
	defer func() {
		for _, src := range srcs {
			src.Close()
		}
	}()

	for _, typ := range types {
		def, err := w.types.Lookup(typ)
		if err != nil {
			return nil, CatalogError(typ, err)
		}
		src, err := iosource.New(ctx, w.cfg.Source)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
		members = append(members, catalog.Member{
			Definition: def,
			Source:     src,
			Options:    w.options(obs),
		})
	}

	comp, err := catalog.NewCompound(members...)
	if err != nil {
		return nil, CatalogError(strings.Join(types, ", "), err)
	}
	defer comp.Close()

	return w.writeFile(path, runID, func(out io.Writer) ([]catalog.Stats, error) {
		cats := comp.Catalogs()
		if len(cats) > 0 {
			if err := w.writeHeader(out, cats[0].Columns(), path); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		res, err := comp.WriteTo(ctx, out, w.cfg.Catalog.ChunkSize)
		dur := time.Since(start)
		for i, stats := range res {
			var statsErr error
			if i == len(res)-1 {
				statsErr = err
			}
			w.record(stats, dur, statsErr)
		}
		if err != nil {
			return res, wrapWriteError(res[len(res)-1].Type, path, err)
		}
		return res, nil
	})
}

// WriteBatch writes each catalog type to <dir>/<type>.txt. At most
// JobsNumber catalogs are written at the same time and each of them on a
// single goroutine. Repeated types are written once.
func (w *writer) WriteBatch(
	ctx context.Context,
	types []string,
	dir string,
	obs *source.ObsMetadata,
) ([]*instcat.Report, error) {
	if err := iofs.EnsureOutputDir(dir); err != nil {
		return nil, err
	}

	types = unique(types)
	res := make([]*instcat.Report, len(types))

	bar := newProgressBar(len(types), "catalogs ")
	defer bar.Finish()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(w.cfg.JobsNumber, 1))
	for i, typ := range types {
		g.Go(func() error {
			path := filepath.Join(dir, typ+".txt")
			r, err := w.Write(ctx, typ, path, obs)
			res[i] = r
			bar.Increment()
			return err
		})
	}

	err := g.Wait()
	return res, err
}

// open connects a new data source and creates an instance of the catalog
// type on it. The type is checked before connecting.
func (w *writer) open(
	ctx context.Context,
	typ string,
	obs *source.ObsMetadata,
) (*catalog.Catalog, iosource.Source, error) {
	def, err := w.types.Lookup(typ)
	if err != nil {
		return nil, nil, CatalogError(typ, err)
	}

	src, err := iosource.New(ctx, w.cfg.Source)
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.New(def, src, w.options(obs)...)
	if err != nil {
		src.Close()
		return nil, nil, CatalogError(typ, err)
	}
	return cat, src, nil
}

func (w *writer) options(obs *source.ObsMetadata) []catalog.Option {
	var res []catalog.Option
	if w.cfg.Catalog.Constraint != "" {
		res = append(res, catalog.OptConstraint(w.cfg.Catalog.Constraint))
	}
	if obs != nil {
		res = append(res, catalog.OptObsMetadata(obs))
	}
	return res
}

// writeHeader writes the column names as a comment line when headers are
// enabled.
func (w *writer) writeHeader(out io.Writer, cols []string, path string) error {
	if !w.cfg.Catalog.Header {
		return nil
	}
	_, err := fmt.Fprintf(out, "# %s\n", strings.Join(cols, ", "))
	if err != nil {
		return FileError(path, err)
	}
	return nil
}

// writeCatalog writes the lines of cat to out.
func (w *writer) writeCatalog(
	ctx context.Context,
	cat *catalog.Catalog,
	out io.Writer,
	path string,
) (catalog.Stats, error) {
	start := time.Now()
	stats, err := cat.WriteTo(ctx, out, w.cfg.Catalog.ChunkSize)
	dur := time.Since(start)
	w.record(stats, dur, err)
	if err != nil {
		return stats, wrapWriteError(cat.Type(), path, err)
	}

	slog.Info("Catalog written",
		"catalog_type", stats.Type,
		"chunks", stats.Chunks,
		"rows", stats.Rows,
		"kept", stats.Written,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	return stats, nil
}

// writeFile creates path and passes body a buffered writer that also
// feeds the digest. Whatever body wrote is flushed even when it fails.
func (w *writer) writeFile(
	path, runID string,
	body func(io.Writer) ([]catalog.Stats, error),
) (*instcat.Report, error) {
	start := time.Now()
	f, err := iofs.CreateOutput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := xxh3.New()
	bw := bufio.NewWriter(io.MultiWriter(f, h))

	stats, err := body(bw)
	if ferr := bw.Flush(); ferr != nil && err == nil {
		err = FileError(path, ferr)
	}

	res := &instcat.Report{
		RunID: runID,
		Path:  path,
		Stats: stats,
	}
	if err != nil {
		res.Duration = time.Since(start)
		slog.Error("Catalog file incomplete",
			"run_id", runID,
			"path", path,
			"error", err,
		)
		return res, err
	}

	info, err := f.Stat()
	if err != nil {
		return res, FileError(path, err)
	}
	res.Bytes = info.Size()
	res.Digest = fmt.Sprintf("%016x", h.Sum64())
	res.Duration = time.Since(start)

	slog.Info("Catalog file written",
		"run_id", runID,
		"path", path,
		"lines", res.Written(),
		"bytes", res.Bytes,
		"xxh3", res.Digest,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}

func (w *writer) record(stats catalog.Stats, dur time.Duration, err error) {
	if w.metrics == nil {
		return
	}
	w.metrics.Record(stats, dur, err)
}

// wrapWriteError keeps data source errors that already carry a user
// message.
func wrapWriteError(typ, path string, err error) error {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	return WriteError(typ, path, err)
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

func unique(types []string) []string {
	seen := make(map[string]struct{}, len(types))
	res := make([]string, 0, len(types))
	for _, typ := range types {
		if _, ok := seen[typ]; ok {
			slog.Warn("Repeated catalog type skipped", "catalog_type", typ)
			continue
		}
		seen[typ] = struct{}{}
		res = append(res, typ)
	}
	return res
}
