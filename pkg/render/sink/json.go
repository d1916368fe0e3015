package sink

import (
	"encoding/json"

	"github.com/matzehuels/quicktiles/pkg/grid"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id       string
	style    string
	textSize int
}

// WithJSONID records an identifier for the result, such as a request ID.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// WithJSONStyle records the style name for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONTextSize records the label text size.
func WithJSONTextSize(size int) JSONOption { return func(r *jsonRenderer) { r.textSize = size } }

type jsonOutput struct {
	ID         string     `json:"id,omitempty"`
	Width      int        `json:"width"`
	FrameWidth int        `json:"frame_width"`
	Height     int        `json:"height"`
	Columns    int        `json:"columns"`
	Rows       int        `json:"rows"`
	CellWidth  int        `json:"cell_width"`
	CellHeight int        `json:"cell_height"`
	TextSize   int        `json:"text_size,omitempty"`
	Style      string     `json:"style,omitempty"`
	Tiles      []jsonTile `json:"tiles"`
}

type jsonTile struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Index     int    `json:"index"`
	Column    int    `json:"column"`
	Row       int    `json:"row"`
	Span      int    `json:"span"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Oversized bool   `json:"oversized,omitempty"`
}

// RenderJSON exports the grid geometry as a pretty-printed JSON document.
// Tiles appear in input order; invisible tiles are absent.
func RenderJSON(res grid.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	over := make(map[int]bool, len(res.Oversized))
	for _, i := range res.Oversized {
		over[i] = true
	}

	out := jsonOutput{
		ID:         r.id,
		Width:      res.Width,
		FrameWidth: res.FrameWidth,
		Height:     res.MeasuredHeight,
		Columns:    res.Columns,
		Rows:       res.Rows,
		CellWidth:  res.CellWidth,
		CellHeight: res.CellHeight,
		TextSize:   r.textSize,
		Style:      r.style,
		Tiles:      make([]jsonTile, len(res.Placements)),
	}
	for i, p := range res.Placements {
		out.Tiles[i] = jsonTile{
			ID: p.ID, Label: p.Label, Index: p.Index,
			Column: p.Column, Row: p.Row, Span: p.Span,
			X: p.X, Y: p.Y, Width: p.Width, Height: p.Height,
			Oversized: over[p.Index],
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
