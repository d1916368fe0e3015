package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
	"github.com/matzehuels/quicktiles/pkg/grid"
)

func TestReadTilesJSON(t *testing.T) {
	input := `{
	  "tiles": [
	    {"id": "wifi", "label": "Wi-Fi"},
	    {"id": "brightness", "span": 2, "height": 48},
	    {"id": "airplane", "visible": false}
	  ],
	  "frame": {"width": 400, "landscape": true, "padding": {"left": 8}}
	}`

	doc, err := ReadTiles(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("ReadTiles() error: %v", err)
	}

	want := []grid.Tile{
		{ID: "wifi", Label: "Wi-Fi", ColumnSpan: 1, Visible: true},
		{ID: "brightness", Label: "brightness", ColumnSpan: 2, Visible: true, IntrinsicHeight: 48},
		{ID: "airplane", Label: "airplane", ColumnSpan: 1, Visible: false},
	}
	if !reflect.DeepEqual(doc.Tiles, want) {
		t.Errorf("Tiles = %+v, want %+v", doc.Tiles, want)
	}
	if doc.Frame == nil || doc.Frame.Width != 400 || !doc.Frame.Landscape || doc.Frame.Padding.Left != 8 {
		t.Errorf("Frame = %+v", doc.Frame)
	}
}

func TestReadTilesTOML(t *testing.T) {
	input := `
[[tiles]]
id = "wifi"

[[tiles]]
id = "battery"
span = 3

[frame]
width = 320
`
	doc, err := ReadTiles(strings.NewReader(input), FormatTOML)
	if err != nil {
		t.Fatalf("ReadTiles() error: %v", err)
	}
	if len(doc.Tiles) != 2 || doc.Tiles[1].ColumnSpan != 3 {
		t.Errorf("Tiles = %+v", doc.Tiles)
	}
	if doc.Frame == nil || doc.Frame.Width != 320 {
		t.Errorf("Frame = %+v", doc.Frame)
	}
}

func TestReadTilesErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		code   qterrors.Code
	}{
		{"malformed json", `{"tiles": [`, FormatJSON, qterrors.ErrCodeInvalidFormat},
		{"malformed toml", `[[tiles]`, FormatTOML, qterrors.ErrCodeInvalidFormat},
		{"unknown format", `{}`, Format("yaml"), qterrors.ErrCodeInvalidFormat},
		{"empty id", `{"tiles": [{"id": ""}]}`, FormatJSON, qterrors.ErrCodeInvalidTile},
		{"bad id", `{"tiles": [{"id": "has space"}]}`, FormatJSON, qterrors.ErrCodeInvalidTile},
		{"duplicate id", `{"tiles": [{"id": "a"}, {"id": "a"}]}`, FormatJSON, qterrors.ErrCodeInvalidTile},
		{"zero span", `{"tiles": [{"id": "a", "span": 0}]}`, FormatJSON, qterrors.ErrCodeInvalidTile},
		{"negative height", `{"tiles": [{"id": "a", "height": -1}]}`, FormatJSON, qterrors.ErrCodeInvalidTile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTiles(strings.NewReader(tt.input), tt.format)
			if !qterrors.Is(err, tt.code) {
				t.Errorf("ReadTiles() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestWriteTilesOmitsDefaults(t *testing.T) {
	doc := Document{Tiles: []grid.Tile{grid.NewTile("wifi")}}
	var buf bytes.Buffer
	if err := WriteTiles(doc, &buf, FormatJSON); err != nil {
		t.Fatalf("WriteTiles() error: %v", err)
	}
	out := buf.String()
	for _, field := range []string{"label", "span", "visible", "height", "frame"} {
		if strings.Contains(out, `"`+field+`"`) {
			t.Errorf("output contains default field %q:\n%s", field, out)
		}
	}
}

func TestExportImportFiles(t *testing.T) {
	doc := Document{
		Tiles: []grid.Tile{
			grid.NewTile("wifi"),
			{ID: "clock", Label: "Clock", ColumnSpan: 2, Visible: false, IntrinsicHeight: 60},
		},
		Frame: &Frame{Width: 400, Height: 900},
	}

	for _, name := range []string{"tiles.json", "tiles.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := ExportTiles(doc, path); err != nil {
				t.Fatalf("ExportTiles() error: %v", err)
			}
			got, err := ImportTiles(path)
			if err != nil {
				t.Fatalf("ImportTiles() error: %v", err)
			}
			if !reflect.DeepEqual(got.Tiles, doc.Tiles) {
				t.Errorf("Tiles = %+v, want %+v", got.Tiles, doc.Tiles)
			}
			if got.Frame == nil || *got.Frame != *doc.Frame {
				t.Errorf("Frame = %+v, want %+v", got.Frame, doc.Frame)
			}
		})
	}
}

func TestImportTilesMissingFile(t *testing.T) {
	_, err := ImportTiles(filepath.Join(t.TempDir(), "nope.json"))
	if !qterrors.Is(err, qterrors.ErrCodeFileNotFound) {
		t.Errorf("ImportTiles() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.toml": FormatTOML,
		"a.TOML": FormatTOML,
		"a.json": FormatJSON,
		"a":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}
