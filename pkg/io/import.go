package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
	"github.com/matzehuels/quicktiles/pkg/grid"
)

// ReadTiles decodes a tile document from r in the given format.
//
// ReadTiles returns an error if:
//   - The input is malformed
//   - A tile has an invalid or duplicate ID
//   - A tile has a span below 1 or a negative height
//
// ReadTiles does not close r.
func ReadTiles(r io.Reader, format Format) (Document, error) {
	var data document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return Document{}, qterrors.Wrap(qterrors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
			return Document{}, qterrors.Wrap(qterrors.ErrCodeInvalidFormat, err, "decode toml")
		}
	default:
		return Document{}, qterrors.New(qterrors.ErrCodeInvalidFormat, "unsupported tile format %q", format)
	}

	doc := Document{Tiles: make([]grid.Tile, 0, len(data.Tiles))}
	seen := make(map[string]int, len(data.Tiles))
	for i, t := range data.Tiles {
		if err := qterrors.ValidateTileID(t.ID); err != nil {
			return Document{}, fmt.Errorf("tile %d: %w", i, err)
		}
		if prev, dup := seen[t.ID]; dup {
			return Document{}, qterrors.New(qterrors.ErrCodeInvalidTile, "tile %d: duplicate id %q (first at %d)", i, t.ID, prev)
		}
		seen[t.ID] = i

		tile := grid.NewTile(t.ID)
		if t.Label != "" {
			tile.Label = t.Label
		}
		if t.Span != nil {
			tile.ColumnSpan = *t.Span
		}
		if t.Visible != nil {
			tile.Visible = *t.Visible
		}
		if t.Height < 0 {
			return Document{}, qterrors.New(qterrors.ErrCodeInvalidTile, "tile %d (%s): height must be non-negative, got %d", i, t.ID, t.Height)
		}
		tile.IntrinsicHeight = t.Height
		doc.Tiles = append(doc.Tiles, tile)
	}
	if err := grid.ValidateTiles(doc.Tiles); err != nil {
		return Document{}, err
	}
	doc.Frame = data.Frame
	return doc, nil
}

// ImportTiles reads the tile document at path, choosing the format from
// the extension.
func ImportTiles(path string) (Document, error) {
	if err := qterrors.ValidatePath(path); err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, qterrors.Wrap(qterrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTiles(f, FormatFromPath(path))
}
