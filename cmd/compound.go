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
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCompoundCmd returns the compound command.
func getCompoundCmd() *cobra.Command {
	var (
		output string
		flags  catalogFlags
	)

	compoundCmd := &cobra.Command{
		Use:   "compound <type>...",
		Short: "Write several catalog types to one file",
		Long: `Write instance catalogs of several types, in the given order, to the
same file.

Every type gets its own data source connection, filters and formats.
All catalogs are created before anything is written, so a type with
missing columns stops the command with an empty output.

Examples:
  instcat compound stars galaxies -o field.txt
  instcat compound stars galaxies -o field.txt --header --box 0,10,-5,5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCompound(cmd, &flags, args, output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	compoundCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file")
	_ = compoundCmd.MarkFlagRequired("output")
	flags.register(compoundCmd)

	return compoundCmd
}

func runCompound(
	cmd *cobra.Command,
	flags *catalogFlags,
	types []string,
	output string,
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

	gn.Info("Writing <em>%s</em> to <em>%s</em>",
		strings.Join(types, ", "), output)
	r, err := w.WriteCompound(context.Background(), types, output, obs)
	if err != nil {
		return err
	}

	printReport(r)
	return nil
}
