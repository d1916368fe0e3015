package grid

import (
	"fmt"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
)

// Measurement is the output of [Measure]. It carries the geometry [Layout]
// needs so that both passes agree on column count and tile sizes.
type Measurement struct {
	// Columns is the effective column count C.
	Columns int `json:"columns"`

	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`

	// Cursor is the number of column units consumed by visible tiles.
	Cursor int `json:"cursor"`
	Rows   int `json:"rows"`

	// Width is always the available width; Height is the measured
	// container height including vertical padding.
	Width  int `json:"width"`
	Height int `json:"height"`

	// FrameWidth is Width plus horizontal padding.
	FrameWidth int `json:"frame_width"`

	// Sizes holds one entry per input tile; invisible tiles have a zero Size.
	Sizes []Size `json:"sizes"`

	// Oversized lists the indices of visible tiles whose span exceeds
	// Columns. They are still laid out and overflow their row.
	Oversized []int `json:"oversized,omitempty"`
}

// Result is the combined outcome of a measure and layout pass.
type Result struct {
	Width          int         `json:"width"`
	FrameWidth     int         `json:"frame_width"`
	MeasuredHeight int         `json:"measured_height"`
	Columns        int         `json:"columns"`
	Rows           int         `json:"rows"`
	CellWidth      int         `json:"cell_width"`
	CellHeight     int         `json:"cell_height"`
	Placements     []Placement `json:"placements"`
	Oversized      []int       `json:"oversized,omitempty"`
}

// Measure computes the cell width, each visible tile's size, and the
// container height. It does not position tiles.
func Measure(tiles []Tile, cfg Config) (Measurement, error) {
	if err := cfg.Validate(); err != nil {
		return Measurement{}, err
	}
	if err := ValidateTiles(tiles); err != nil {
		return Measurement{}, err
	}

	c := EffectiveColumns(cfg)
	m := Measurement{
		Columns:    c,
		CellWidth:  cellWidth(cfg.AvailableWidth, c, cfg.CellGap),
		Width:      cfg.AvailableWidth,
		FrameWidth: cfg.FrameWidth(),
		Sizes:      make([]Size, len(tiles)),
	}
	squarer := c > 3 && !cfg.Landscape

	for i, t := range tiles {
		if !t.Visible {
			continue
		}
		span := t.ColumnSpan
		w := int(float64(span*m.CellWidth) + float64(span-1)*cfg.CellGap)

		var h int
		switch {
		case squarer:
			h = w * (c - 1) / c
		case t.IntrinsicHeight > 0:
			h = t.IntrinsicHeight
		default:
			h = w
		}

		m.Sizes[i] = Size{Width: w, Height: h}
		if m.CellHeight <= 0 {
			m.CellHeight = h
		}
		if span > c {
			m.Oversized = append(m.Oversized, i)
		}
		m.Cursor += span
	}

	m.Rows = (m.Cursor + c - 1) / c
	m.Height = cfg.Padding.Top + cfg.Padding.Bottom
	if m.Rows > 0 {
		m.Height += int(float64(m.Rows*m.CellHeight) + float64(m.Rows-1)*cfg.CellGap)
	}
	return m, nil
}

// Layout positions every visible tile using the sizes from a preceding
// [Measure] call. cfg must be the configuration that call used; a
// measurement taken with a different effective column count is rejected.
func Layout(tiles []Tile, m Measurement, cfg Config) ([]Placement, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := EffectiveColumns(cfg)
	if m.Columns != c {
		return nil, qterrors.New(qterrors.ErrCodeInvalidInput,
			"measurement was taken with %d columns but config yields %d", m.Columns, c)
	}
	if len(m.Sizes) != len(tiles) {
		return nil, qterrors.New(qterrors.ErrCodeInvalidInput,
			"measurement has %d sizes for %d tiles", len(m.Sizes), len(tiles))
	}

	left := cfg.Padding.Left
	x, y := left, cfg.Padding.Top
	cursor := 0
	// visualCol and visualRow track where tiles actually land, which can
	// differ from the cursor arithmetic once a tile has been pushed down.
	visualCol, visualRow := 0, 0
	placements := make([]Placement, 0, len(tiles))

	for i, t := range tiles {
		if !t.Visible {
			continue
		}
		span := t.ColumnSpan
		size := m.Sizes[i]
		col := cursor % c
		row := cursor / c

		// Push the tile to the next row if it can't fit on this one.
		if col+span > c {
			x = left
			y = advance(y, size.Height, cfg.CellGap)
			row++
			visualCol = 0
			visualRow++
		}

		placements = append(placements, Placement{
			Index:  i,
			ID:     t.ID,
			Label:  t.Label,
			Column: visualCol,
			Row:    visualRow,
			Span:   span,
			X:      x,
			Y:      y,
			Width:  size.Width,
			Height: size.Height,
		})

		cursor += span
		if cursor < (row+1)*c {
			x = advance(x, size.Width, cfg.CellGap)
			visualCol += span
		} else {
			x = left
			y = advance(y, size.Height, cfg.CellGap)
			visualCol = 0
			visualRow++
		}
	}
	return placements, nil
}

// Compute runs [Measure] followed by [Layout] against the same config.
func Compute(tiles []Tile, cfg Config) (Result, error) {
	m, err := Measure(tiles, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("measure: %w", err)
	}
	placements, err := Layout(tiles, m, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("layout: %w", err)
	}
	return NewResult(m, placements), nil
}

// NewResult combines a measurement with the placements laid out from it.
func NewResult(m Measurement, placements []Placement) Result {
	return Result{
		Width:          m.Width,
		FrameWidth:     m.FrameWidth,
		MeasuredHeight: m.Height,
		Columns:        m.Columns,
		Rows:           m.Rows,
		CellWidth:      m.CellWidth,
		CellHeight:     m.CellHeight,
		Placements:     placements,
		Oversized:      m.Oversized,
	}
}

// advance moves a coordinate past a tile and the following gap, truncating
// to whole pixels.
func advance(pos, size int, gap float64) int {
	return int(float64(pos+size) + gap)
}
