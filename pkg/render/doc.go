// Package render groups the output side of quicktiles.
//
// # Overview
//
// Rendering is split in two:
//
//   - [sink] turns a [grid.Result] into SVG, PNG, JSON or terminal output
//   - [styles] decides how a tile looks (simple, or hand-drawn in
//     [styles/handdrawn])
//
// Sinks never lay anything out. They draw the placements they are given,
// one element per placement, so the same result renders identically in
// every format.
//
//	res, _ := grid.Compute(tiles, cfg)
//	svg := sink.RenderSVG(res, sink.WithStyle(handdrawn.New(42)))
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//
// [grid.Result]: github.com/matzehuels/quicktiles/pkg/grid.Result
// [sink]: github.com/matzehuels/quicktiles/pkg/render/sink
// [styles]: github.com/matzehuels/quicktiles/pkg/render/styles
// [styles/handdrawn]: github.com/matzehuels/quicktiles/pkg/render/styles/handdrawn
package render
