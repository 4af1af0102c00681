/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/instcat/internal/iodefs"
	"github.com/gnames/instcat/internal/iometrics"
	"github.com/gnames/instcat/internal/iowriter"
	"github.com/gnames/instcat/pkg/instcat"
	"github.com/spf13/cobra"
)

// getColumnsCmd returns the columns command.
func getColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <type>",
		Short: "Show raw columns a catalog type needs",
		Long: `Show raw columns a catalog type reads from the data source and the
columns it writes.

The catalog instance is created against the configured data source, so
missing raw columns are reported the same way as by the write command.
No rows are read.

Examples:
  instcat columns reference_catalog
  instcat columns color_catalog --defs ./catalogs.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runColumns(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runColumns(cmd *cobra.Command, typ string) error {
	w, _, err := newWriter()
	if err != nil {
		return err
	}

	req, out, err := w.Columns(context.Background(), typ)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "required: %s\noutput:   %s\n",
		strings.Join(req, ", "), strings.Join(out, ", "))
	return nil
}

// newWriter loads catalog definitions and creates a writer that records
// metrics.
func newWriter() (instcat.Writer, *iometrics.Metrics, error) {
	cats, err := iodefs.Load(cfg.DefinitionsPath())
	if err != nil {
		return nil, nil, err
	}

	m, err := iometrics.New(cfg.Metrics)
	if err != nil {
		return nil, nil, err
	}
	return iowriter.New(cfg, cats.Types, m), m, nil
}

// pushMetrics reports a failed push without failing the command, the
// catalogs are already written.
func pushMetrics(m *iometrics.Metrics) {
	if err := m.Push(); err != nil {
		gn.PrintErrorMessage(err)
	}
}
