// Package grid implements the quick-settings tile grid layout engine.
//
// The engine arranges rectangular tiles into a column grid in two passes,
// mirroring the measure/layout callbacks of a UI toolkit container:
//
//  1. [Measure] derives the effective column count, the cell width, every
//     visible tile's size and the container height.
//  2. [Layout] walks the tiles again and assigns each visible tile an (x, y)
//     position, wrapping rows when a tile would overflow the current one.
//
// [Compute] runs both passes against the same [Config] and returns a
// [Result] with the container size and per-tile [Placement] values.
//
// # Columns
//
// The effective column count C is Config.Columns, doubled when
// Config.DuplicateColumnsInLandscape is set and the device is in landscape.
// Tiles may span several columns; a spanned tile absorbs the gaps it
// straddles, so a tile spanning n columns is n*cellWidth + (n-1)*cellGap wide.
//
// # Heights
//
// On portrait grids with more than three columns tiles are made squarer:
// height = width*(C-1)/C. Otherwise a tile keeps its intrinsic height, or its
// width when it gives none. The first visible tile's height is the row height
// for the whole grid. Later tiles with a different height still get placed at
// their own height, but the container is sized from the first one.
//
// # Invisible tiles
//
// Tiles with Visible=false are skipped entirely: they take no grid columns,
// do not affect rows, and produce no placement.
//
// # Errors
//
// Malformed input is rejected before any geometry is computed. Non-positive
// columns or available width, a negative gap or padding, and a gap so wide
// that no column width remains all return an INVALID_CONFIG error. A tile with
// a column span below one returns INVALID_TILE. A span larger than C is not an
// error: such a tile overflows its row every time it is placed.
//
// The engine is a pure function of its inputs and holds no state between
// calls, so it is safe for concurrent use.
package grid
