package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/pkg/buildinfo"
	"github.com/matzehuels/quicktiles/pkg/cache"
	"github.com/matzehuels/quicktiles/pkg/pipeline"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "quicktiles"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// settingsPath and settingsRedis select the settings store; see openStore.
	settingsPath  string
	settingsRedis string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "quicktiles lays out quick-settings tiles in a column grid",
		Long: `quicktiles arranges quick-settings tiles into a grid whose column count comes
from the system settings, doubles in landscape, and wraps tiles that span
several columns onto the next row.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.settingsPath, "settings", "", "settings file (default: ~/.config/quicktiles/settings.toml)")
	root.PersistentFlags().StringVar(&c.settingsRedis, "settings-redis", "", "read settings from Redis at this URL instead of the settings file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.textsizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory (~/.cache/quicktiles/, XDG aware).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Settings Store
// =============================================================================

// openStore opens the settings store chosen by --settings-redis or
// --settings and returns the theme that goes with it. Redis stores use the
// default theme; file stores carry their own.
func (c *CLI) openStore(ctx context.Context) (settings.Store, settings.Theme, error) {
	if c.settingsRedis != "" {
		s, err := settings.NewRedisStore(ctx, settings.RedisConfig{URL: c.settingsRedis})
		if err != nil {
			return nil, settings.Theme{}, fmt.Errorf("open redis settings: %w", err)
		}
		return s, settings.DefaultTheme(), nil
	}
	s, err := settings.NewFileStore(c.settingsPath)
	if err != nil {
		return nil, settings.Theme{}, fmt.Errorf("open settings: %w", err)
	}
	return s, s.Theme().WithDefaults(), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
