package pipeline

import (
	"github.com/matzehuels/quicktiles/pkg/grid"
)

// ComputeLayout runs the engine's measure and layout passes for opts.
// Oversized tiles are accepted and logged at debug level.
func ComputeLayout(tiles []grid.Tile, opts Options) (grid.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return grid.Result{}, err
	}
	res, err := grid.Compute(tiles, opts.Config())
	if err != nil {
		return grid.Result{}, err
	}
	for _, i := range res.Oversized {
		opts.Logger.Debug("tile spans more columns than the grid",
			"tile", tiles[i].ID, "span", tiles[i].ColumnSpan, "columns", res.Columns)
	}
	return res, nil
}

// CountVisible returns the number of visible tiles.
func CountVisible(tiles []grid.Tile) int {
	n := 0
	for _, t := range tiles {
		if t.Visible {
			n++
		}
	}
	return n
}
