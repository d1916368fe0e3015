// Package container adapts the grid engine to a host view's layout passes.
//
// A [Container] owns the tile list, the settings store, and the orientation
// signal. The host calls [Container.OnMeasure] whenever it is asked for a
// size and [Container.OnLayout] afterwards; both passes share one settings
// snapshot. A configuration change (a settings write, a theme change, a
// rotation) re-reads the settings and forces a new pass.
//
// All methods are safe for concurrent use. Passes are serialized under a
// mutex, so a settings change arriving on another goroutine is applied
// between passes, never during one.
package container

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/observability"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

// Options configures a Container.
type Options struct {
	Store settings.Store
	// Theme fills values the store's own theme leaves unset; see
	// settings.ThemeSource.
	Theme   settings.Theme
	Padding grid.Padding
	// Landscape is the initial orientation.
	Landscape bool
	Logger    *log.Logger
	// OnChange, if set, is called with each result produced by a pass that
	// Run triggers after a configuration change.
	OnChange func(grid.Result)
}

// Container drives measure and layout for a list of tiles.
type Container struct {
	mu sync.Mutex

	store     settings.Store
	theme     settings.Theme
	padding   grid.Padding
	landscape bool
	logger    *log.Logger
	onChange  func(grid.Result)

	tiles []grid.Tile
	snap  settings.Snapshot

	width, height int
	measured      *grid.Measurement
	result        *grid.Result
	needsLayout   bool
}

// New creates a container and reads the initial settings snapshot.
func New(ctx context.Context, tiles []grid.Tile, opts Options) (*Container, error) {
	if opts.Store == nil {
		opts.Store = settings.NewMemoryStore(nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if err := grid.ValidateTiles(tiles); err != nil {
		return nil, err
	}
	c := &Container{
		store:     opts.Store,
		theme:     opts.Theme.WithDefaults(),
		padding:   opts.Padding,
		landscape: opts.Landscape,
		logger:    opts.Logger,
		onChange:  opts.OnChange,
		tiles:     slices.Clone(tiles),
	}
	if err := c.UpdateResources(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateResources re-reads the settings and requests a new layout pass.
func (c *Container) UpdateResources(ctx context.Context) error {
	start := time.Now()
	snap, err := settings.Read(ctx, c.store, c.theme)
	observability.Settings().OnSettingsRead(ctx, time.Since(start), err)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.requestLayout()
	c.logger.Debug("settings read", "columns", snap.Columns, "duplicate_landscape", snap.DuplicateColumnsInLandscape, "gap", snap.CellGap)
	return nil
}

// requestLayout drops the cached pass. Callers must hold c.mu.
func (c *Container) requestLayout() {
	c.measured = nil
	c.result = nil
	c.needsLayout = true
}

// OnMeasure measures the grid for a view of the given outer size. Width is
// the full view width; padding is subtracted before the engine sees it.
// It returns the view's measured width and height.
func (c *Container) OnMeasure(width, height int) (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, err := c.measureLocked(width, height)
	if err != nil {
		return 0, 0, err
	}
	return width, m.Height, nil
}

func (c *Container) measureLocked(width, height int) (grid.Measurement, error) {
	cfg := c.configLocked(width, height)
	m, err := grid.Measure(c.tiles, cfg)
	if err != nil {
		return grid.Measurement{}, err
	}
	for _, i := range m.Oversized {
		c.logger.Debug("tile wider than grid", "tile", c.tiles[i].ID, "span", c.tiles[i].ColumnSpan, "columns", m.Columns)
	}
	c.width, c.height = width, height
	c.measured = &m
	c.needsLayout = true
	return m, nil
}

func (c *Container) configLocked(width, height int) grid.Config {
	p := c.padding
	return c.snap.Config(width-p.Left-p.Right, max(0, height-p.Top-p.Bottom), c.landscape, p)
}

// OnLayout positions the tiles using the preceding OnMeasure call.
func (c *Container) OnLayout() ([]grid.Placement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, err := c.layoutLocked()
	if err != nil {
		return nil, err
	}
	return r.Placements, nil
}

func (c *Container) layoutLocked() (grid.Result, error) {
	if c.measured == nil {
		return grid.Result{}, qterrors.New(qterrors.ErrCodeInvalidInput, "layout requested before measure")
	}
	cfg := c.configLocked(c.width, c.height)
	placements, err := grid.Layout(c.tiles, *c.measured, cfg)
	if err != nil {
		return grid.Result{}, err
	}
	r := grid.NewResult(*c.measured, placements)
	c.result = &r
	c.needsLayout = false
	return r, nil
}

// Relayout runs a full pass at the last measured size.
func (c *Container) Relayout(ctx context.Context) (grid.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passLocked(ctx)
}

func (c *Container) passLocked(ctx context.Context) (grid.Result, error) {
	if c.width == 0 {
		return grid.Result{}, qterrors.New(qterrors.ErrCodeInvalidInput, "container has not been measured")
	}
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(c.tiles), grid.EffectiveColumns(c.configLocked(c.width, c.height)))
	r, err := c.measureThenLayoutLocked()
	observability.Pipeline().OnLayoutComplete(ctx, r.Columns, r.Rows, time.Since(start), err)
	return r, err
}

func (c *Container) measureThenLayoutLocked() (grid.Result, error) {
	if _, err := c.measureLocked(c.width, c.height); err != nil {
		return grid.Result{}, err
	}
	return c.layoutLocked()
}

// Result returns the last completed pass, if it is still current.
func (c *Container) Result() (grid.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return grid.Result{}, false
	}
	return *c.result, true
}

// NeedsLayout reports whether a configuration change has invalidated the
// last pass.
func (c *Container) NeedsLayout() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.needsLayout
}

// Snapshot returns the settings in effect.
func (c *Container) Snapshot() settings.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Tiles returns a copy of the tile list.
func (c *Container) Tiles() []grid.Tile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tiles)
}

// SetTiles replaces the tile list and requests a new layout.
func (c *Container) SetTiles(tiles []grid.Tile) error {
	if err := grid.ValidateTiles(tiles); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tiles = slices.Clone(tiles)
	c.requestLayout()
	return nil
}

// SetTileVisible shows or hides the tile with the given ID.
func (c *Container) SetTileVisible(id string, visible bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.tiles, func(t grid.Tile) bool { return t.ID == id })
	if i < 0 {
		return qterrors.New(qterrors.ErrCodeNotFound, "no tile %q", id)
	}
	if c.tiles[i].Visible != visible {
		c.tiles[i].Visible = visible
		c.requestLayout()
	}
	return nil
}

// Landscape reports the current orientation.
func (c *Container) Landscape() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.landscape
}

// SetLandscape records a rotation and requests a new layout.
func (c *Container) SetLandscape(landscape bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.landscape != landscape {
		c.landscape = landscape
		c.requestLayout()
	}
}

// UpdateTileTextSize returns the label text size for the configured base
// column count, read fresh from the store.
func (c *Container) UpdateTileTextSize(ctx context.Context) (int, error) {
	cols, err := settings.GetInt(ctx, c.store, settings.KeyTilesPerRow, c.theme.Columns)
	if err != nil {
		return 0, err
	}
	return grid.TileTextSizeFor(cols), nil
}

// Run watches the settings store until ctx is done. Each change re-reads
// the settings and, once the container has been measured, runs a new pass
// and hands it to OnChange. Errors from a single pass are logged and do not
// stop the loop.
func (c *Container) Run(ctx context.Context) error {
	changes, err := c.store.Watch(ctx)
	if err != nil {
		return qterrors.Wrap(qterrors.ErrCodeSettings, err, "watch settings")
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			observability.Settings().OnSettingsChange(ctx, change.Key)
			c.logger.Debug("configuration changed", "key", change.Key)
			c.applyChange(ctx)
		}
	}
}

func (c *Container) applyChange(ctx context.Context) {
	if err := c.UpdateResources(ctx); err != nil {
		c.logger.Warn("settings reload failed", "error", err)
		return
	}

	c.mu.Lock()
	if c.width == 0 {
		c.mu.Unlock()
		return
	}
	r, err := c.passLocked(ctx)
	notify := c.onChange
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("relayout failed", "error", err)
		return
	}
	if notify != nil {
		notify(r)
	}
}
