package cmd

import (
	"fmt"

	"github.com/gnames/instcat/pkg/config"
	"github.com/gnames/instcat/pkg/source"
	"github.com/spf13/cobra"
)

// catalogFlags are shared by commands that write catalogs.
type catalogFlags struct {
	chunkSize  int
	header     bool
	constraint string
	box        []float64
	mjd        float64
	bandpass   string
}

func (f *catalogFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.chunkSize, "chunk-size", "c", 0,
		"rows per chunk, 0 reads everything at once (default from config)")
	cmd.Flags().BoolVar(&f.header, "header", false,
		"write a '# col1, col2' line before catalog lines")
	cmd.Flags().StringVar(&f.constraint, "constraint", "",
		"filter passed verbatim to the data source, e.g. \"mag < 22\"")
	cmd.Flags().Float64SliceVar(&f.box, "box", nil,
		"sky box in degrees: ra_min,ra_max,dec_min,dec_max")
	cmd.Flags().Float64Var(&f.mjd, "mjd", 0,
		"modified Julian date of the observation")
	cmd.Flags().StringVar(&f.bandpass, "bandpass", "",
		"filter name of the observation")
}

// options converts explicitly set flags to config options.
func (f *catalogFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("chunk-size") {
		res = append(res, config.OptCatalogChunkSize(f.chunkSize))
	}
	if cmd.Flags().Changed("header") {
		res = append(res, config.OptCatalogHeader(f.header))
	}
	if cmd.Flags().Changed("constraint") {
		res = append(res, config.OptCatalogConstraint(f.constraint))
	}
	return res
}

// obsMetadata returns observation metadata when any observation flag is
// set, nil otherwise.
func (f *catalogFlags) obsMetadata(cmd *cobra.Command) (*source.ObsMetadata, error) {
	fs := cmd.Flags()
	if !fs.Changed("box") && !fs.Changed("mjd") && !fs.Changed("bandpass") {
		return nil, nil
	}

	res := source.ObsMetadata{MJD: f.mjd, Bandpass: f.bandpass}
	if fs.Changed("box") {
		if len(f.box) != 4 {
			return nil, fmt.Errorf("--box needs 4 values, got %d", len(f.box))
		}
		b := source.BoxBounds{
			RAMin: f.box[0], RAMax: f.box[1],
			DecMin: f.box[2], DecMax: f.box[3],
		}
		if b.DecMin > b.DecMax {
			return nil, fmt.Errorf("--box: dec_min %g is above dec_max %g",
				b.DecMin, b.DecMax)
		}
		res.Bounds = &b
	}
	return &res, nil
}
