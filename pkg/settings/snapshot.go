package settings

import (
	"context"

	"github.com/matzehuels/quicktiles/pkg/grid"
)

// Snapshot is the immutable settings view for one measure+layout pass.
type Snapshot struct {
	Columns                     int     `json:"columns"`
	DuplicateColumnsInLandscape bool    `json:"duplicate_columns_in_landscape"`
	CellGap                     float64 `json:"cell_gap"`
	TextSize                    int     `json:"text_size"`
}

// Read takes a snapshot of the grid settings from s, falling back to theme
// for unset values. A store implementing [ThemeSource] supplies its own
// theme, read fresh on every call.
func Read(ctx context.Context, s Store, theme Theme) (Snapshot, error) {
	theme = ResolveTheme(s, theme)

	cols, err := GetInt(ctx, s, KeyTilesPerRow, theme.Columns)
	if err != nil {
		return Snapshot{}, err
	}
	dup, err := GetBool(ctx, s, KeyDuplicateLandscape, defaultDuplicateSetting == 1)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Columns:                     cols,
		DuplicateColumnsInLandscape: dup,
		CellGap:                     theme.Gap(),
		TextSize:                    grid.TileTextSizeFor(cols),
	}, nil
}

// Config builds the engine configuration for a container of the given
// content size and orientation.
func (s Snapshot) Config(width, height int, landscape bool, padding grid.Padding) grid.Config {
	return grid.Config{
		Columns:                     s.Columns,
		DuplicateColumnsInLandscape: s.DuplicateColumnsInLandscape,
		CellGap:                     s.CellGap,
		AvailableWidth:              width,
		AvailableHeight:             height,
		Landscape:                   landscape,
		Padding:                     padding,
	}
}
