package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tilegarden/tilegarden/internal/api"
	"github.com/tilegarden/tilegarden/pkg/cache"
	"github.com/tilegarden/tilegarden/pkg/pipeline"
	"github.com/tilegarden/tilegarden/pkg/store"
)

// serveCommand creates the serve command for the HTTP solve service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solve service",
		Long: `Run the HTTP solve service.

The server exposes POST /v1/solve, GET /v1/runs, GET /v1/runs/{id}, and
GET /healthz. By default it uses the local file cache and keeps run records
in memory; point --redis and --mongo at shared backends for a multi-instance
deployment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			solveCache, err := serveCache(ctx, noCache, redisURL)
			if err != nil {
				return err
			}

			var runStore store.Store = store.NewMemoryStore()
			if mongoURL != "" {
				runStore, err = store.NewMongoStore(ctx, mongoURL, appName)
				if err != nil {
					return fmt.Errorf("connect mongo: %w", err)
				}
			}
			defer func() {
				if err := runStore.Close(ctx); err != nil {
					c.Logger.Error("close store", "err", err)
				}
			}()

			runner := pipeline.NewRunner(solveCache, nil, c.Logger)
			defer runner.Close()

			server := api.NewServer(api.Config{
				Addr:   addr,
				Runner: runner,
				Store:  runStore,
				Logger: c.Logger,
			})
			return server.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared solve cache")
	cmd.Flags().StringVar(&mongoURL, "mongo", "", "MongoDB URL for persistent run records")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serveCache picks the cache backend for the server. Redis wins over the
// local file cache so only the selected backend is ever opened.
func serveCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, nil
	}
	c, err := newCache(noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	return c, nil
}
