package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csvtable/pkg/cache"
	tableio "github.com/matzehuels/csvtable/pkg/io"
	"github.com/matzehuels/csvtable/pkg/observability"
	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/sink"
)

const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and service use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
//
// A missing input file fails with FILE_NOT_FOUND and an empty table with
// EMPTY_DATA; see errors.IsReport.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	cfg, err := opts.ResolveConfig()
	if err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	data, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.DataHash = cache.Hash(tableio.Canonical(data))
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Rows = len(data)
	result.Stats.Columns = data.Columns()

	opts.Logger.Debug("loaded table",
		"source", opts.Source(),
		"rows", result.Stats.Rows,
		"columns", result.Stats.Columns,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	res, err := r.Layout(ctx, data, cfg)
	if err != nil {
		return nil, err
	}
	result.Table = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Width = res.Layout.Width
	result.Stats.Height = res.Layout.Height

	opts.Logger.Debug("computed layout",
		"columns", res.Layout.Columns,
		"rows", res.Layout.Rows,
		"width", res.Layout.Width,
		"height", res.Layout.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, res, result.DataHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the table named by opts.
func (r *Runner) Load(ctx context.Context, opts Options) (table.Data, error) {
	source := opts.Source()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	var (
		data table.Data
		err  error
	)
	switch {
	case opts.Data != nil:
		data = opts.Data
	case opts.CSV != nil:
		data, err = tableio.ReadCSV(bytes.NewReader(opts.CSV))
	default:
		data, err = tableio.ImportCSV(opts.Input)
	}

	hooks.OnLoadComplete(ctx, source, len(data), time.Since(start), err)
	return data, err
}

// Layout lays out data with cfg. The layout is always computed from scratch.
func (r *Runner) Layout(ctx context.Context, data table.Data, cfg table.Config) (*table.Result, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(data), data.Columns())
	start := time.Now()

	res, err := table.Render(data, cfg)

	width, height := 0, 0
	if res != nil {
		width, height = res.Layout.Width, res.Layout.Height
		if res.Header.Fallback != "" {
			r.Logger.Debug("font fallback", "font", res.Header.Name, "reason", res.Header.Fallback)
		}
	}
	hooks.OnLayoutComplete(ctx, width, height, time.Since(start), err)
	return res, err
}

// RenderWithCacheInfo encodes res in every format of opts, reusing cached
// artifacts, and reports whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *table.Result, dataHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	var err error
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(dataHash, ArtifactKeyOpts(res.Config, format, res.Header))

		if !opts.Refresh {
			if data, hit, getErr := r.Cache.Get(ctx, key); getErr == nil && hit {
				cacheHooks.OnCacheHit(ctx, artifactKeyType)
				artifacts[format] = data
				continue
			} else if getErr != nil {
				r.Logger.Debug("cache read failed", "format", format, "error", getErr)
			}
			cacheHooks.OnCacheMiss(ctx, artifactKeyType)
		}
		allCached = false

		var data []byte
		if data, err = sink.Render(ctx, res, sink.Format(format)); err != nil {
			break
		}
		artifacts[format] = data

		if setErr := r.Cache.Set(ctx, key, data, cache.TTLArtifact); setErr != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", setErr)
		} else {
			cacheHooks.OnCacheSet(ctx, artifactKeyType, len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *table.Result, dataHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, dataHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
