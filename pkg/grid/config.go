package grid

import (
	"math"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
)

// Padding is the container padding in pixels.
type Padding struct {
	Left   int `json:"left,omitempty" toml:"left,omitempty"`
	Top    int `json:"top,omitempty" toml:"top,omitempty"`
	Right  int `json:"right,omitempty" toml:"right,omitempty"`
	Bottom int `json:"bottom,omitempty" toml:"bottom,omitempty"`
}

// Config is the immutable configuration snapshot for one measure+layout pass.
type Config struct {
	// Columns is the base column count. Must be positive.
	Columns int `json:"columns"`

	// DuplicateColumnsInLandscape doubles Columns when Landscape is set.
	DuplicateColumnsInLandscape bool `json:"duplicate_columns_in_landscape"`

	// CellGap is the gap between adjacent cells, horizontally and vertically.
	CellGap float64 `json:"cell_gap"`

	// AvailableWidth and AvailableHeight are the content-box dimensions
	// after padding removal.
	AvailableWidth  int `json:"available_width"`
	AvailableHeight int `json:"available_height,omitempty"`

	// Landscape is the externally supplied orientation signal.
	Landscape bool `json:"landscape"`

	Padding Padding `json:"padding"`
}

// EffectiveColumns returns the column count used for layout. It never
// returns less than 1.
func EffectiveColumns(cfg Config) int {
	c := cfg.Columns
	if cfg.DuplicateColumnsInLandscape && cfg.Landscape {
		c *= 2
	}
	return max(c, 1)
}

// Validate checks the configuration and returns an INVALID_CONFIG error
// describing the first problem found.
func (c Config) Validate() error {
	if c.Columns <= 0 {
		return qterrors.New(qterrors.ErrCodeInvalidConfig, "columns must be positive, got %d", c.Columns)
	}
	if c.CellGap < 0 || math.IsNaN(c.CellGap) || math.IsInf(c.CellGap, 0) {
		return qterrors.New(qterrors.ErrCodeInvalidConfig, "cell gap must be a non-negative number, got %v", c.CellGap)
	}
	if c.AvailableWidth <= 0 {
		return qterrors.New(qterrors.ErrCodeInvalidConfig, "available width must be positive, got %d", c.AvailableWidth)
	}
	if c.AvailableHeight < 0 {
		return qterrors.New(qterrors.ErrCodeInvalidConfig, "available height must not be negative, got %d", c.AvailableHeight)
	}
	p := c.Padding
	if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
		return qterrors.New(qterrors.ErrCodeInvalidConfig, "padding must not be negative, got %+v", p)
	}
	if cellWidth(c.AvailableWidth, EffectiveColumns(c), c.CellGap) < 1 {
		return qterrors.New(qterrors.ErrCodeInvalidConfig,
			"cell gap %v leaves no room for %d columns in %dpx", c.CellGap, EffectiveColumns(c), c.AvailableWidth)
	}
	return nil
}

// FrameWidth returns the container width including horizontal padding.
func (c Config) FrameWidth() int {
	return c.Padding.Left + c.AvailableWidth + c.Padding.Right
}

// cellWidth divides the width left after the inner gaps evenly across the
// columns, rounding up.
func cellWidth(available, columns int, gap float64) int {
	return int(math.Ceil((float64(available) - float64(columns-1)*gap) / float64(columns)))
}

// ValidateTiles checks every tile's column span and returns an INVALID_TILE
// error naming the first offending tile.
func ValidateTiles(tiles []Tile) error {
	for i, t := range tiles {
		if t.ColumnSpan <= 0 {
			return qterrors.New(qterrors.ErrCodeInvalidTile,
				"tile %d (%q): column span must be at least 1, got %d", i, t.ID, t.ColumnSpan)
		}
	}
	return nil
}
