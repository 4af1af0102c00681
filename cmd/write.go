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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/instcat/pkg/instcat"
	"github.com/spf13/cobra"
)

// getWriteCmd returns the write command.
func getWriteCmd() *cobra.Command {
	var (
		output string
		flags  catalogFlags
	)

	writeCmd := &cobra.Command{
		Use:   "write <type>",
		Short: "Write one catalog type to a file",
		Long: `Write an instance catalog of one type to a file.

Rows are read from the configured data source chunk by chunk. Rows with a
null value in any column the catalog type declares as cannot-be-null are
skipped. Other null values are written as NULL.

Examples:
  instcat write reference_catalog -o reference.txt
  instcat write color_catalog -o colors.txt -c 50000 --header
  instcat write color_catalog -o field.txt --box 10,20,-5,5 --mjd 59580.1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runWrite(cmd, &flags, args[0], output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	writeCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file")
	_ = writeCmd.MarkFlagRequired("output")
	flags.register(writeCmd)

	return writeCmd
}

func runWrite(
	cmd *cobra.Command,
	flags *catalogFlags,
	typ, output string,
) error {
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

	gn.Info("Writing <em>%s</em> to <em>%s</em>", typ, output)
	r, err := w.Write(context.Background(), typ, output, obs)
	if err != nil {
		return err
	}

	printReport(r)
	return nil
}

func printReport(r *instcat.Report) {
	for _, v := range r.Warnings() {
		gn.Warn("%s", v)
	}
	gn.Info(`File <em>%s</em> is ready
Lines: %s of %s rows, xxh3: %s
Elapsed time: <em>%s</em>`,
		r.Path,
		humanize.Comma(int64(r.Written())),
		humanize.Comma(int64(r.Rows())),
		r.Digest,
		gnfmt.TimeString(r.Duration.Seconds()),
	)
}
