package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csvtable/pkg/cache"
	"github.com/matzehuels/csvtable/pkg/pipeline"
	"github.com/matzehuels/csvtable/pkg/server"
)

const defaultAddr = "127.0.0.1:8080"

// serveCommand creates the serve command, which runs the HTTP render
// service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisURL  string
		noCache   bool
		maxUpload int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

  GET  /healthz
  GET  /presets
  POST /render?preset=&format=&scale=&dpi=&font=&quality=&svg_font=   (CSV request body)

Artifacts are cached on disk by default, or in Redis with --redis.`,
		Example: `  csvtable serve --addr :8080
  curl --data-binary @scores.csv 'localhost:8080/render?preset=colorful' > scores.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, noCache, maxUpload)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared artifact cache (redis://host:port/db)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().Int64Var(&maxUpload, "max-upload", server.DefaultMaxUpload, "largest accepted CSV body in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool, maxUpload int64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cacheCfg := cfg.Cache
	if redisURL != "" {
		cacheCfg.RedisURL = redisURL
	}

	ch, err := newCache(ctx, cacheCfg, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	c.Logger.Info("starting render service", "addr", addr, "cache", cacheKind(ch))
	srv := server.New(runner, c.Logger,
		server.WithThemes(cfg.Themes),
		server.WithMaxUpload(maxUpload))
	return srv.ListenAndServe(ctx, addr)
}

func cacheKind(ch cache.Cache) string {
	switch ch.(type) {
	case *cache.RedisCache:
		return "redis"
	case *cache.FileCache:
		return "file"
	}
	return "none"
}
