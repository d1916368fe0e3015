package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
	"github.com/matzehuels/quicktiles/pkg/grid"
)

// Format is a tile document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks TOML for ".toml" files and JSON otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Frame describes the container a document's tiles are laid out in.
// Zero fields are filled in by the caller.
type Frame struct {
	Width     int          `json:"width,omitempty" toml:"width,omitempty"`
	Height    int          `json:"height,omitempty" toml:"height,omitempty"`
	Landscape bool         `json:"landscape,omitempty" toml:"landscape,omitempty"`
	Padding   grid.Padding `json:"padding,omitzero" toml:"padding,omitempty"`
}

// Document is a decoded tile document.
type Document struct {
	Tiles []grid.Tile
	Frame *Frame
}

type document struct {
	Tiles []tile `json:"tiles" toml:"tiles"`
	Frame *Frame `json:"frame,omitempty" toml:"frame,omitempty"`
}

type tile struct {
	ID      string `json:"id" toml:"id"`
	Label   string `json:"label,omitempty" toml:"label,omitempty"`
	Span    *int   `json:"span,omitempty" toml:"span,omitempty"`
	Visible *bool  `json:"visible,omitempty" toml:"visible,omitempty"`
	Height  int    `json:"height,omitempty" toml:"height,omitempty"`
}

// WriteTiles encodes doc to w. Fields equal to their defaults are omitted,
// so the output re-imports to the same tiles with [ReadTiles].
func WriteTiles(doc Document, w io.Writer, format Format) error {
	out := document{Tiles: make([]tile, len(doc.Tiles)), Frame: doc.Frame}
	for i, t := range doc.Tiles {
		td := tile{ID: t.ID, Height: t.IntrinsicHeight}
		if t.Label != t.ID {
			td.Label = t.Label
		}
		if t.ColumnSpan != 1 {
			span := t.ColumnSpan
			td.Span = &span
		}
		if !t.Visible {
			visible := false
			td.Visible = &visible
		}
		out.Tiles[i] = td
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return qterrors.New(qterrors.ErrCodeInvalidFormat, "unsupported tile format %q", format)
	}
	return nil
}

// ExportTiles writes doc to path, choosing the format from the extension.
func ExportTiles(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTiles(doc, f, FormatFromPath(path))
}
