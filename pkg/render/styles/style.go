// Package styles defines how tiles are drawn by the render sinks.
//
// A [Style] writes SVG fragments for each tile and reports the colors the
// raster and terminal sinks use. [Simple] is the flat default; the
// handdrawn subpackage provides a sketchy look with per-tile greys.
package styles

import (
	"bytes"

	"github.com/matzehuels/quicktiles/pkg/grid"
)

// Style defines the visual appearance of a rendered grid.
type Style interface {
	// Name identifies the style in options and cache keys.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground writes the frame background.
	RenderBackground(buf *bytes.Buffer, width, height float64)
	// RenderTile writes the SVG for a single tile shape.
	RenderTile(buf *bytes.Buffer, t Tile)
	// RenderText writes the SVG for a tile's label.
	RenderText(buf *bytes.Buffer, t Tile)
	// Colors returns the colors for t, as #rrggbb strings.
	Colors(t Tile) Colors
}

// Tile contains all data needed to render a single placed tile.
type Tile struct {
	ID          string
	Label       string
	Index       int     // Position in the input list
	Column, Row int     // Visual grid position
	Span        int     // Column span
	X, Y, W, H  float64 // Position and dimensions
	CX, CY      float64 // Center coordinates (for text)
	TextSize    float64 // Label size; 0 fits the label to the tile
	Oversized   bool    // Span exceeds the column count
}

// Colors is a tile's palette.
type Colors struct {
	Background string
	Fill       string
	Stroke     string
	Text       string
}

// FromPlacement converts an engine placement to a render tile.
func FromPlacement(p grid.Placement, textSize int, oversized bool) Tile {
	return Tile{
		ID:        p.ID,
		Label:     p.Label,
		Index:     p.Index,
		Column:    p.Column,
		Row:       p.Row,
		Span:      p.Span,
		X:         float64(p.X),
		Y:         float64(p.Y),
		W:         float64(p.Width),
		H:         float64(p.Height),
		CX:        p.CenterX(),
		CY:        p.CenterY(),
		TextSize:  float64(textSize),
		Oversized: oversized,
	}
}

// FromResult converts every placement in r. Oversized tiles are flagged
// from r.Oversized.
func FromResult(r grid.Result, textSize int) []Tile {
	over := make(map[int]bool, len(r.Oversized))
	for _, i := range r.Oversized {
		over[i] = true
	}
	tiles := make([]Tile, len(r.Placements))
	for i, p := range r.Placements {
		tiles[i] = FromPlacement(p, textSize, over[p.Index])
	}
	return tiles
}

// ByName returns the built-in style with the given name. The handdrawn
// style lives in its own package; this resolves only "simple".
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	}
	return nil, false
}
