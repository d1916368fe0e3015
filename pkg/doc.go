// Package pkg provides the core libraries for quicktiles quick-settings
// grid layout.
//
// # Overview
//
// quicktiles arranges rectangular quick-setting tiles into a column grid. The
// column count comes from the system settings, doubles in landscape when the
// settings ask for it, and tiles that span several columns wrap onto the next
// row when they do not fit. The pkg directory is organized into four areas:
//
//  1. [grid] - The layout engine (measure, layout, text size)
//  2. [settings] and [container] - The settings provider and the host
//     adapter that replays layout passes on configuration changes
//  3. [pipeline] - Orchestration (load → layout → render) with caching
//  4. [render] - Output formats (SVG, PNG, JSON, terminal)
//
// # Architecture
//
// The typical data flow through quicktiles:
//
//	Tile document (JSON/TOML)    Settings store
//	         ↓                          ↓
//	    [io] package             [settings.Read] snapshot
//	         ↓                          ↓
//	             [grid.Measure] → [grid.Layout]
//	                       ↓
//	               [render/sink] package
//	                       ↓
//	           SVG/PNG/JSON/terminal output
//
// # Quick Start
//
// Lay out four tiles in a three-column grid:
//
//	import (
//	    "github.com/matzehuels/quicktiles/pkg/grid"
//	    "github.com/matzehuels/quicktiles/pkg/render/sink"
//	)
//
//	media := grid.NewTile("media")
//	media.ColumnSpan = 2
//	tiles := []grid.Tile{grid.NewTile("wifi"), grid.NewTile("bt"), grid.NewTile("dnd"), media}
//
//	res, err := grid.Compute(tiles, grid.Config{
//	    Columns:        3,
//	    CellGap:        4,
//	    AvailableWidth: 300,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(res)
//
// # Main Packages
//
// ## Layout
//
// [grid] - The two-pass engine. [grid.Measure] computes the cell width, each
// tile's size and the container height; [grid.Layout] positions the tiles
// with a cursor that walks the grid in input order.
//
// [settings] - The settings collaborator: keys, theme defaults, and memory,
// TOML file and Redis stores with change notifications.
//
// [container] - A host view adapter that owns the tiles and orientation,
// drives measure then layout, and re-reads settings when they change.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching with file, Redis, MongoDB and null
// backends.
//
// [observability] - Hooks for layout, render, cache, settings and HTTP
// events.
//
// [io] - Tile document import and export.
//
// ## Visualization
//
// [render/sink] - SVG, PNG, JSON and terminal output.
//
// [render/styles] - Visual styles (simple, hand-drawn).
//
// ## Orchestration
//
// [pipeline] - Options, validation and a [pipeline.Runner] that caches
// layouts and rendered artifacts.
//
// [errors] - Structured error codes shared across packages.
//
// [buildinfo] - Version metadata injected at build time.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/grid
// [settings]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/settings
// [container]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/container
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/observability
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/render/styles
// [errors]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/buildinfo
// [grid.Measure]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/grid#Measure
// [grid.Layout]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/grid#Layout
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/quicktiles/pkg/pipeline#Runner
package pkg
