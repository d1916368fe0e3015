package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/internal/api"
	"github.com/matzehuels/quicktiles/pkg/cache"
	"github.com/matzehuels/quicktiles/pkg/observability"
	"github.com/matzehuels/quicktiles/pkg/pipeline"
)

// Cache backends for the serve command.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendMongo = "mongo"
	cacheBackendNone  = "none"
)

type serveOpts struct {
	addr       string
	backend    string
	cacheURL   string
	cacheScope string
	timeout    time.Duration
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    ":8080",
		backend: cacheBackendFile,
		timeout: 30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz
  GET  /v1/textsize/{columns}
  POST /v1/layout
  POST /v1/render/{svg|png|json|txt}
  GET  /v1/settings
  PUT  /v1/settings/{key}

Requests that leave grid settings unset use the settings store (--settings or
--settings-redis). Layouts and artifacts are cached in the chosen backend;
redis and mongo backends let several servers share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", opts.backend, "cache backend: file (default), redis, mongo, none")
	cmd.Flags().StringVar(&opts.cacheURL, "cache-url", "", "redis:// or mongodb:// URL for the redis and mongo backends")
	cmd.Flags().StringVar(&opts.cacheScope, "cache-scope", "", "prefix for cache keys, to share a backend between deployments")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	_ = cmd.RegisterFlagCompletionFunc("cache", completeCacheBackends)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	backend, err := openCacheBackend(ctx, opts.backend, opts.cacheURL)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if opts.cacheScope != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.cacheScope)
	}
	runner := pipeline.NewRunner(backend, keyer, c.Logger)
	defer runner.Close()

	store, theme, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	observability.Register(observability.NewLogHooks(c.Logger))
	defer observability.Reset()

	srv := api.New(runner,
		api.WithStore(store, theme),
		api.WithLogger(c.Logger),
		api.WithTimeout(opts.timeout))

	printSuccess("Serving on %s", StyleLink.Render(opts.addr))
	printDetail("cache: %s", opts.backend)
	if err := srv.ListenAndServe(ctx, opts.addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	printInfo("Server stopped")
	return nil
}

// openCacheBackend opens the named cache backend.
func openCacheBackend(ctx context.Context, backend, url string) (cache.Cache, error) {
	switch backend {
	case cacheBackendFile:
		return newCache(false)
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		if url == "" {
			url = "redis://localhost:6379/0"
		}
		return cache.NewRedisCache(ctx, url, appName+":")
	case cacheBackendMongo:
		if url == "" {
			url = "mongodb://localhost:27017"
		}
		return cache.NewMongoCache(ctx, cache.MongoConfig{URI: url})
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be one of: file, redis, mongo, none)", backend)
	}
}
