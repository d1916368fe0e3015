// Package io reads and writes tile documents in JSON and TOML.
//
// # Overview
//
// A tile document lists the tiles of a quick settings grid in display order,
// optionally followed by the frame the grid is laid out in. The same document
// drives the CLI, the HTTP API and the render pipeline.
//
// # JSON Format
//
//	{
//	  "tiles": [
//	    {"id": "wifi", "label": "Wi-Fi"},
//	    {"id": "brightness", "span": 2},
//	    {"id": "airplane", "visible": false}
//	  ],
//	  "frame": {"width": 400, "landscape": false}
//	}
//
// # TOML Format
//
//	[[tiles]]
//	id = "wifi"
//	label = "Wi-Fi"
//
//	[[tiles]]
//	id = "brightness"
//	span = 2
//
//	[frame]
//	width = 400
//
// # Tile Fields
//
// Required:
//   - id: Unique identifier (letters, digits, '.', '_', ':', '-')
//
// Optional:
//   - label: Display text (defaults to id)
//   - span: Column span, at least 1 (defaults to 1)
//   - visible: false removes the tile from measure and layout (defaults to true)
//   - height: Intrinsic height hint in pixels (0 means none)
//
// # Import and Export
//
// Use [ReadTiles]/[WriteTiles] with any reader or writer, or
// [ImportTiles]/[ExportTiles] for files. The file format follows the
// extension: ".toml" is TOML, anything else JSON.
//
//	doc, err := io.ImportTiles("tiles.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reading validates every tile and rejects duplicate IDs. Errors carry the
// index and ID of the offending tile.
package io
