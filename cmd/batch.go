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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getBatchCmd returns the batch command.
func getBatchCmd() *cobra.Command {
	var (
		dir   string
		flags catalogFlags
	)

	batchCmd := &cobra.Command{
		Use:   "batch <type>...",
		Short: "Write several catalog types to separate files",
		Long: `Write instance catalogs of several types, each to <dir>/<type>.txt.

Catalogs are independent and several of them are written at the same
time, up to jobs_number from config.yaml (INSTCAT_JOBS_NUMBER). The
first failure cancels catalogs that are still being written.

Examples:
  instcat batch stars galaxies -d ./catalogs
  instcat batch stars galaxies -d ./catalogs -c 10000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBatch(cmd, &flags, args, dir)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	batchCmd.Flags().StringVarP(&dir, "dir", "d", ".",
		"output directory")
	flags.register(batchCmd)

	return batchCmd
}

func runBatch(
	cmd *cobra.Command,
	flags *catalogFlags,
	types []string,
	dir string,
) error {
	start := time.Now()
	cfg.Update(flags.options(cmd))
	obs, err := flags.obsMetadata(cmd)
	if err != nil {
		return err
	}

	w, m, err := newWriter()
	if err != nil {
		return err
	}
	defer pushMetrics(m)

	gn.Info("Writing %d catalog types to <em>%s</em>", len(types), dir)
	rs, err := w.WriteBatch(context.Background(), types, dir, obs)
	if err != nil {
		return err
	}

	var lines int
	for _, r := range rs {
		printReport(r)
		lines += r.Written()
	}
	gn.Info(`Batch complete
Files: %d, lines: %s
Elapsed time: <em>%s</em>`,
		len(rs),
		humanize.Comma(int64(lines)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
