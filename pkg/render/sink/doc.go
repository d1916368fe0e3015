// Package sink turns a computed grid into output formats.
//
// # Overview
//
// A "sink" transforms a [grid.Result] into a final output format:
//
//   - SVG: vector drawing of the frame and every placed tile
//   - JSON: the geometry for external tools
//   - PNG: raster image drawn with fogleman/gg, scaled with imaging
//   - Terminal: boxes drawn with lipgloss for the CLI preview
//
// Every sink emits exactly one element per placement, in input order.
// Invisible tiles have no placement and so never appear.
//
// # SVG Output
//
//	svg := sink.RenderSVG(result,
//	    sink.WithStyle(handdrawn.New(seed)),
//	    sink.WithTextSize(snapshot.TextSize),
//	)
//
// # Options
//
//   - [WithStyle]: visual style ([styles.Simple] or [handdrawn.New])
//   - [WithTextSize]: label size from the settings snapshot; 0 fits labels
//   - [WithoutLabels]: draw tile shapes only
//
// # PNG Output
//
//	png, err := sink.RenderPNG(result, sink.WithScale(2), sink.WithPNGStyle(style))
//
// [grid.Result]: github.com/matzehuels/quicktiles/pkg/grid.Result
// [styles.Simple]: github.com/matzehuels/quicktiles/pkg/render/styles.Simple
// [handdrawn.New]: github.com/matzehuels/quicktiles/pkg/render/styles/handdrawn.New
package sink
