package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/csvtable/internal/config"
	"github.com/matzehuels/csvtable/pkg/buildinfo"
	"github.com/matzehuels/csvtable/pkg/cache"
	"github.com/matzehuels/csvtable/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "csvtable"

	// redisKeyPrefix namespaces artifacts in a shared Redis.
	redisKeyPrefix = "csvtable:"
)

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

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "csvtable renders CSV files as table images",
		Long:         `csvtable lays out a CSV file as a styled table and writes it as PNG, JPEG, BMP, TIFF, SVG, PDF or a JSON draw plan.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/csvtable/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the config file once. A missing file yields defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFromPath(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.RedisURL, redisKeyPrefix)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/csvtable/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfig fills unset options from the config file.
func applyConfig(opts *pipeline.Options, cfg *config.Config) {
	if opts.Preset == "" {
		opts.Preset = cfg.Preset
	}
	if len(opts.Formats) == 0 {
		opts.Formats = cfg.Formats
	}
	if opts.Scale == 0 {
		opts.Scale = cfg.Scale
	}
	if opts.DPI == 0 {
		opts.DPI = cfg.DPI
	}
	if opts.FontPath == "" {
		opts.FontPath = cfg.FontPath
	}
	if opts.FontFamily == "" {
		opts.FontFamily = cfg.FontFamily
	}
	if opts.Quality == 0 {
		opts.Quality = cfg.JPEGQuality
	}
	if opts.SVGFont == "" {
		opts.SVGFont = cfg.SVGFontFamily
	}
	opts.Themes = cfg.Themes
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so that config defaults still apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
