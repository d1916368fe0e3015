package grid

// Tile describes one cell of the grid. The engine reads tiles but never
// modifies them.
type Tile struct {
	ID    string `json:"id" toml:"id"`
	Label string `json:"label,omitempty" toml:"label,omitempty"`

	// ColumnSpan is the number of grid columns the tile occupies. Must be >= 1.
	ColumnSpan int `json:"column_span" toml:"column_span"`

	// Visible tiles take part in layout; invisible ones are skipped.
	Visible bool `json:"visible" toml:"visible"`

	// IntrinsicHeight is the tile's preferred height in pixels, 0 if none.
	IntrinsicHeight int `json:"intrinsic_height,omitempty" toml:"intrinsic_height,omitempty"`
}

// NewTile returns a visible single-column tile.
func NewTile(id string) Tile {
	return Tile{ID: id, Label: id, ColumnSpan: 1, Visible: true}
}

// Size is a measured tile size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Placement is the computed geometry of one visible tile in
// container-local coordinates.
type Placement struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Label  string `json:"label,omitempty"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Span   int    `json:"span"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (p Placement) Right() int { return p.X + p.Width }

// Bottom returns the y coordinate of the bottom edge.
func (p Placement) Bottom() int { return p.Y + p.Height }

// CenterX returns the horizontal center point of the tile.
func (p Placement) CenterX() float64 { return float64(p.X) + float64(p.Width)/2 }

// CenterY returns the vertical center point of the tile.
func (p Placement) CenterY() float64 { return float64(p.Y) + float64(p.Height)/2 }

// Overlaps reports whether two placements share any area.
func (p Placement) Overlaps(o Placement) bool {
	return p.X < o.Right() && o.X < p.Right() && p.Y < o.Bottom() && o.Y < p.Bottom()
}
