package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/pkg/grid"
	qtio "github.com/matzehuels/quicktiles/pkg/io"
	"github.com/matzehuels/quicktiles/pkg/pipeline"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

// gridFlags are the layout flags shared by layout and render.
// Settings flags override the settings store only when given.
type gridFlags struct {
	columns     int
	noDuplicate bool
	cellGap     float64
	width       int
	height      int
	landscape   bool
	padding     int
}

func (f *gridFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.columns, "columns", "c", 0, "tiles per row (default: from settings)")
	fl.BoolVar(&f.noDuplicate, "no-duplicate", false, "do not double the columns in landscape")
	fl.Float64Var(&f.cellGap, "cell-gap", 0, "gap between tiles in pixels (default: from theme)")
	fl.IntVar(&f.width, "width", 0, "content width in pixels (default: document frame or 360)")
	fl.IntVar(&f.height, "height", 0, "content height in pixels")
	fl.BoolVarP(&f.landscape, "landscape", "l", false, "lay out in landscape orientation")
	fl.IntVar(&f.padding, "padding", 0, "container padding on every side in pixels")
}

// apply fills opts from the settings store, then the flags the user gave.
func (f *gridFlags) apply(cmd *cobra.Command, snap settings.Snapshot, opts *pipeline.Options) {
	opts.ApplySnapshot(snap)

	fl := cmd.Flags()
	if fl.Changed("columns") {
		opts.Columns = f.columns
		opts.TextSize = 0
	}
	if fl.Changed("no-duplicate") {
		dup := !f.noDuplicate
		opts.DuplicateColumnsInLandscape = &dup
	}
	if fl.Changed("cell-gap") {
		gap := f.cellGap
		opts.CellGap = &gap
	}
	if fl.Changed("padding") {
		p := f.padding
		opts.Padding = grid.Padding{Left: p, Top: p, Right: p, Bottom: p}
	}
	opts.Width = f.width
	opts.Height = f.height
	opts.Landscape = f.landscape
}

// loadOptions reads the tile document at path and builds pipeline options
// from the settings store and the flags.
func (c *CLI) loadOptions(ctx context.Context, cmd *cobra.Command, path string, f *gridFlags) (pipeline.Options, error) {
	doc, err := qtio.ImportTiles(path)
	if err != nil {
		return pipeline.Options{}, err
	}

	store, theme, err := c.openStore(ctx)
	if err != nil {
		return pipeline.Options{}, err
	}
	defer store.Close()

	snap, err := settings.Read(ctx, store, theme)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{Tiles: doc.Tiles, Logger: c.Logger}
	f.apply(cmd, snap, &opts)
	opts.ApplyFrame(doc.Frame)
	return opts, nil
}
