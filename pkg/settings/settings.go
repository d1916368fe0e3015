// Package settings provides the system settings collaborator for the tile grid.
//
// The grid reads three values per layout pass:
//   - quick_tiles_per_row: base column count (defaults to the theme's columns)
//   - quick_tiles_per_row_duplicate_landscape: 1 to double columns in
//     landscape, 0 to keep them (defaults to 1)
//   - the cell gap, a fixed theme dimension
//
// Values live in a [Store]. Stores hold plain strings keyed by setting name,
// the way a system settings provider does, with implementations for
// different backends:
//   - memory: in-process storage for tests and embedding
//   - file: a TOML document for the CLI (~/.config/quicktiles/settings.toml)
//   - redis: a Redis hash shared across processes, with pub/sub change
//     notifications
//
// # Usage
//
//	store, err := settings.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	snap, err := settings.Read(ctx, store, store.Theme())
//	if err != nil {
//	    return err
//	}
//	cfg := snap.Config(width, height, landscape, grid.Padding{})
//
// A snapshot is read once per pass and never changes. Watch a store to learn
// when to take a new one.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
)

// Setting keys.
const (
	KeyTilesPerRow          = "quick_tiles_per_row"
	KeyDuplicateLandscape   = "quick_tiles_per_row_duplicate_landscape"
	KeyCellGap              = "quick_settings_cell_gap"
	defaultDuplicateSetting = 1
)

// KeyInfo documents a known setting.
type KeyInfo struct {
	Key         string
	Description string
	Default     string
}

// KnownKeys lists the settings the grid understands. The cell gap is a theme
// dimension and is listed for reference only; stores never override it.
func KnownKeys(theme Theme) []KeyInfo {
	return []KeyInfo{
		{KeyTilesPerRow, "Tiles per row in the quick settings grid", strconv.Itoa(theme.Columns)},
		{KeyDuplicateLandscape, "Duplicate tiles per row in landscape (1 = on, 0 = off)", strconv.Itoa(defaultDuplicateSetting)},
		{KeyCellGap, "Gap between tiles (theme dimension, read-only)", strconv.FormatFloat(theme.Gap(), 'f', -1, 64)},
	}
}

// IsKnownKey reports whether key is one of the writable grid settings.
func IsKnownKey(key string) bool {
	return key == KeyTilesPerRow || key == KeyDuplicateLandscape
}

// DefaultCellGap is the stock gap between tiles, in pixels.
const DefaultCellGap = 4.0

// Theme holds the resource defaults a host ships with.
type Theme struct {
	Columns int `toml:"columns,omitempty" json:"columns,omitempty"`
	// CellGap is nil when the theme leaves the gap unset. A zero gap is
	// a real value: tiles touch.
	CellGap *float64 `toml:"cell_gap,omitempty" json:"cell_gap,omitempty"`
}

// Gap returns a pointer to v, for building a Theme literal.
func Gap(v float64) *float64 { return &v }

// DefaultTheme returns the stock theme: three columns, 4px gaps.
func DefaultTheme() Theme {
	return Theme{Columns: 3, CellGap: Gap(DefaultCellGap)}
}

// Gap returns the theme's cell gap, or DefaultCellGap when unset.
func (t Theme) Gap() float64 {
	if t.CellGap == nil {
		return DefaultCellGap
	}
	return *t.CellGap
}

// WithDefaults fills unset fields of t from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	return t.merge(DefaultTheme())
}

// merge fills unset fields of t from d. Columns of zero is unset; the gap
// is unset only when nil.
func (t Theme) merge(d Theme) Theme {
	if t.Columns == 0 {
		t.Columns = d.Columns
	}
	if t.CellGap == nil && d.CellGap != nil {
		g := *d.CellGap
		t.CellGap = &g
	}
	return t
}

// ThemeSource is implemented by stores that carry their own theme, such as
// a settings file with a [theme] table. [Read] prefers it over the theme
// the caller passes, so theme edits reach the next snapshot.
type ThemeSource interface {
	Theme() Theme
}

// ResolveTheme returns the theme a snapshot of s should use: the store's
// own theme when it has one, then fallback, then DefaultTheme.
func ResolveTheme(s Store, fallback Theme) Theme {
	t := fallback
	if ts, ok := s.(ThemeSource); ok {
		t = ts.Theme().merge(fallback)
	}
	return t.merge(DefaultTheme())
}

// Change describes a settings update. An empty Key means the whole store may
// have changed and should be re-read.
type Change struct {
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}

// Store is the interface for settings storage backends.
type Store interface {
	// Get returns the raw value for key. ok is false if the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key and notifies watchers.
	Put(ctx context.Context, key, value string) error

	// Delete removes key and notifies watchers. Deleting an unset key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored key and value.
	List(ctx context.Context) (map[string]string, error)

	// Watch returns a channel of changes. The channel is closed when ctx is
	// done or the store is closed. Slow receivers may miss changes; every
	// change should trigger a full re-read.
	Watch(ctx context.Context) (<-chan Change, error)

	// Close releases resources held by the store.
	Close() error
}

// GetInt reads key as an integer, returning def when the key is unset.
func GetInt(ctx context.Context, s Store, key string, def int) (int, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return 0, qterrors.Wrap(qterrors.ErrCodeSettings, err, "read %s", key)
	}
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, qterrors.New(qterrors.ErrCodeInvalidConfig, "%s: %q is not an integer", key, v)
	}
	return n, nil
}

// GetFloat reads key as a float, returning def when the key is unset.
func GetFloat(ctx context.Context, s Store, key string, def float64) (float64, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return 0, qterrors.Wrap(qterrors.ErrCodeSettings, err, "read %s", key)
	}
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, qterrors.New(qterrors.ErrCodeInvalidConfig, "%s: %q is not a number", key, v)
	}
	return f, nil
}

// GetBool reads key as a 0/1 flag, returning def when the key is unset.
// "true" and "false" are accepted as well.
func GetBool(ctx context.Context, s Store, key string, def bool) (bool, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, qterrors.Wrap(qterrors.ErrCodeSettings, err, "read %s", key)
	}
	if !ok {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n == 1, nil
	}
	return false, qterrors.New(qterrors.ErrCodeInvalidConfig, "%s: %q is not a flag", key, v)
}

// ValidateValue checks value against the type a known key expects.
func ValidateValue(key, value string) error {
	if err := qterrors.ValidateSettingKey(key); err != nil {
		return err
	}
	switch key {
	case KeyTilesPerRow:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return qterrors.New(qterrors.ErrCodeInvalidConfig, "%s must be a positive integer, got %q", key, value)
		}
	case KeyDuplicateLandscape:
		if value != "0" && value != "1" {
			return qterrors.New(qterrors.ErrCodeInvalidConfig, "%s must be 0 or 1, got %q", key, value)
		}
	case KeyCellGap:
		return qterrors.New(qterrors.ErrCodeInvalidKey, "%s is a theme dimension and cannot be set", key)
	}
	return nil
}

// formatValue renders a decoded document value as a settings string.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(t)
	}
}

// parseValue picks the narrowest document type that holds s.
func parseValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
