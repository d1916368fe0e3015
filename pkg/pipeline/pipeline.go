// Package pipeline provides the load → layout → render pipeline for quicktiles.
//
// The CLI and the HTTP API both run tile documents through this package so
// that defaults, validation and caching behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode a tile document (JSON or TOML) unless tiles are given
//  2. Layout: run the grid engine's measure and layout passes
//  3. Render: produce artifacts (SVG, PNG, JSON, terminal text)
//
// Each stage can be run on its own or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Tiles:   tiles,
//	    Columns: 4,
//	    Width:   360,
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quicktiles/pkg/cache"
	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default content width in pixels.
	DefaultWidth = 360

	// DefaultSeed is the default random seed for the handdrawn style.
	DefaultSeed = uint64(42)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultStyle is the default visual style.
	DefaultStyle = StyleSimple
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "txt"
)

// Style names.
const (
	StyleSimple    = "simple"
	StyleHanddrawn = "handdrawn"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple:    true,
	StyleHanddrawn: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Document       string `json:"document,omitempty"`
	DocumentFormat string `json:"document_format,omitempty"` // json or toml

	// Settings. Nil pointers fall back to the default theme.
	Columns                     int      `json:"columns,omitempty"`
	DuplicateColumnsInLandscape *bool    `json:"duplicate_columns_in_landscape,omitempty"`
	CellGap                     *float64 `json:"cell_gap,omitempty"`

	// Frame
	Width     int          `json:"width,omitempty"`
	Height    int          `json:"height,omitempty"`
	Landscape bool         `json:"landscape,omitempty"`
	Padding   grid.Padding `json:"padding,omitzero"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Seed        uint64   `json:"seed,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	TextSize    int      `json:"text_size,omitempty"`
	HideLabels  bool     `json:"hide_labels,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Tiles  []grid.Tile `json:"-"`
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tiles is the input tile list after loading.
	Tiles []grid.Tile

	// TilesHash is the content hash of Tiles.
	TilesHash string

	// Layout is the engine output.
	Layout grid.Result

	// TextSize is the label size used for rendering.
	TextSize int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TileCount    int
	VisibleCount int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return qterrors.New(qterrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return qterrors.New(qterrors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s)", style, strings.Join(sortedKeys(ValidStyles), ", "))
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to lay out.
func (o *Options) ValidateForLoad() error {
	if len(o.Tiles) == 0 && strings.TrimSpace(o.Document) == "" {
		return qterrors.New(qterrors.ErrCodeInvalidInput, "tiles or document is required")
	}
	switch o.DocumentFormat {
	case "", "json", "toml":
	default:
		return qterrors.New(qterrors.ErrCodeInvalidFormat,
			"invalid document_format: %q (must be json or toml)", o.DocumentFormat)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// SetLayoutDefaults fills unset settings from the default theme.
func (o *Options) SetLayoutDefaults() {
	theme := settings.DefaultTheme()
	if o.Columns == 0 {
		o.Columns = theme.Columns
	}
	if o.DuplicateColumnsInLandscape == nil {
		dup := true
		o.DuplicateColumnsInLandscape = &dup
	}
	if o.CellGap == nil {
		gap := theme.Gap()
		o.CellGap = &gap
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForLayout sets layout defaults and validates the resulting
// engine configuration.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Config().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return qterrors.New(qterrors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// ApplySnapshot copies a settings snapshot into the options.
func (o *Options) ApplySnapshot(s settings.Snapshot) {
	o.Columns = s.Columns
	dup, gap := s.DuplicateColumnsInLandscape, s.CellGap
	o.DuplicateColumnsInLandscape = &dup
	o.CellGap = &gap
	if o.TextSize == 0 {
		o.TextSize = s.TextSize
	}
}

// Config builds the engine configuration. Layout defaults must be set.
func (o *Options) Config() grid.Config {
	cfg := grid.Config{
		Columns:         o.Columns,
		AvailableWidth:  o.Width,
		AvailableHeight: o.Height,
		Landscape:       o.Landscape,
		Padding:         o.Padding,
	}
	if o.DuplicateColumnsInLandscape != nil {
		cfg.DuplicateColumnsInLandscape = *o.DuplicateColumnsInLandscape
	}
	if o.CellGap != nil {
		cfg.CellGap = *o.CellGap
	}
	return cfg
}

// LabelSize returns the explicit text size or the one derived from Columns.
func (o *Options) LabelSize() int {
	if o.TextSize > 0 {
		return o.TextSize
	}
	return grid.TileTextSizeFor(o.Columns)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.Config()
	return cache.LayoutKeyOpts{
		Columns:   cfg.Columns,
		Duplicate: cfg.DuplicateColumnsInLandscape,
		Landscape: cfg.Landscape,
		CellGap:   cfg.CellGap,
		Width:     cfg.AvailableWidth,
		Height:    cfg.AvailableHeight,
		Padding:   [4]int{cfg.Padding.Left, cfg.Padding.Top, cfg.Padding.Right, cfg.Padding.Bottom},
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		ShowLabels: !o.HideLabels,
		TextSize:   o.LabelSize(),
	}
	if o.Style == StyleHanddrawn {
		k.Seed = o.Seed
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG:
		k.Interactive = o.Interactive
	}
	return k
}
