package pipeline

import (
	"strings"

	"github.com/matzehuels/quicktiles/pkg/grid"
	qtio "github.com/matzehuels/quicktiles/pkg/io"
)

// LoadTiles returns opts.Tiles, or decodes opts.Document when no tiles are
// given. The document's frame is applied with [Options.ApplyFrame].
func LoadTiles(opts *Options) ([]grid.Tile, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if len(opts.Tiles) > 0 {
		return opts.Tiles, nil
	}

	format := qtio.FormatJSON
	if opts.DocumentFormat == "toml" {
		format = qtio.FormatTOML
	}
	doc, err := qtio.ReadTiles(strings.NewReader(opts.Document), format)
	if err != nil {
		return nil, err
	}
	opts.ApplyFrame(doc.Frame)
	opts.Tiles = doc.Tiles
	return doc.Tiles, nil
}

// ApplyFrame fills Width, Height, Landscape and Padding from a document
// frame where they are unset. A nil frame is ignored.
func (o *Options) ApplyFrame(f *qtio.Frame) {
	if f == nil {
		return
	}
	if o.Width == 0 {
		o.Width = f.Width
	}
	if o.Height == 0 {
		o.Height = f.Height
	}
	if !o.Landscape {
		o.Landscape = f.Landscape
	}
	if o.Padding == (grid.Padding{}) {
		o.Padding = f.Padding
	}
}
