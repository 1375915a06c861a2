// Package pipeline provides the core table rendering pipeline for csvtable.
//
// This package implements the complete load → layout → render pipeline that
// is shared by the CLI and the HTTP service, so both resolve presets, apply
// overrides and cache artifacts the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read CSV from a file, raw bytes or an already parsed table
//  2. Layout: Measure, wrap and position every cell (never cached)
//  3. Render: Encode the draw plan in each requested format (cached)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "input/scores.csv",
//	    Preset:  "professional",
//	    Formats: []string{"png", "svg"},
//	    Scale:   2,
//	    DPI:     300,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if errors.IsReport(err) {
//	    // missing or empty input: nothing to render
//	}
//	png := result.Artifacts["png"]
//
// Render many independent variants concurrently with [Runner.RunBatch].
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csvtable/pkg/cache"
	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/fonts"
	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Service
// =============================================================================

const (
	// DefaultPreset is the preset used when none is given.
	DefaultPreset = table.PresetStandard

	// DefaultFormat is the output format used when none is given.
	DefaultFormat = string(sink.FormatPNG)

	// DefaultBatchLimit bounds concurrent renders in a batch.
	DefaultBatchLimit = 4
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// Exactly one input source must be set: Data, CSV or Input, checked in that
// order.
type Options struct {
	// Load options
	Input string     `json:"input,omitempty"` // CSV file path
	CSV   []byte     `json:"-"`               // raw CSV bytes
	Data  table.Data `json:"-"`               // already parsed table

	// Style options
	Preset     string  `json:"preset,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	DPI        int     `json:"dpi,omitempty"`
	FontPath   string  `json:"font_path,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
	Quality    int     `json:"quality,omitempty"`  // JPEG quality, 1-100
	SVGFont    string  `json:"svg_font,omitempty"` // CSS font-family for SVG and PDF

	// Render options
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // skip cache reads

	// Runtime options (not serialized)
	Config *table.Config          `json:"-"` // explicit base config, replaces Preset
	Themes map[string]table.Theme `json:"-"` // custom themes from the config file
	Logger *log.Logger            `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the loaded table.
	Data table.Data

	// DataHash is the content hash of the canonical CSV encoding of Data.
	DataHash string

	// Table is the laid-out table with its draw plan.
	Table *table.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Columns    int
	Width      int
	Height     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// NormalizeFormats validates formats and returns their canonical names
// ("jpg" becomes "jpeg"), dropping duplicates while keeping order.
func NormalizeFormats(formats []string) ([]string, error) {
	seen := make(map[string]bool, len(formats))
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		parsed, err := sink.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		name := string(parsed)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Data == nil && o.CSV == nil && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "an input file or CSV data is required")
	}
	if o.Scale != 0 && !(o.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Scale)
	}
	if o.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must not be negative, got %d", o.DPI)
	}
	if o.Quality < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "quality must not be negative, got %d", o.Quality)
	}

	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRender validates the formats and sets render defaults. It does
// not require an input source.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats, err := NormalizeFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = formats

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ResolveConfig builds the render configuration: the explicit Config or the
// named preset/theme, then the scale, DPI and font overrides.
func (o *Options) ResolveConfig() (table.Config, error) {
	var cfg table.Config
	if o.Config != nil {
		cfg = *o.Config
	} else {
		var err error
		if cfg, err = table.Lookup(o.Preset, o.Themes); err != nil {
			return table.Config{}, err
		}
	}

	if o.Scale != 0 {
		cfg.Scale = o.Scale
	}
	if o.DPI > 0 {
		cfg.DPI = [2]int{o.DPI, o.DPI}
	}
	if o.FontPath != "" {
		cfg.FontPath = o.FontPath
	}
	if o.FontFamily != "" {
		cfg.FontFamily = o.FontFamily
	}
	if o.Quality != 0 {
		cfg.JPEGQuality = o.Quality
	}
	if o.SVGFont != "" {
		cfg.SVGFontFamily = o.SVGFont
	}

	if err := cfg.Validate(); err != nil {
		return table.Config{}, err
	}
	return cfg, nil
}

// Source describes the input for logs and hooks.
func (o *Options) Source() string {
	switch {
	case o.Data != nil:
		return "data"
	case o.CSV != nil:
		return "csv"
	default:
		return o.Input
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func ArtifactKeyOpts(cfg table.Config, format string, font *fonts.Font) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Config: cfg.Key(),
	}
	if font != nil {
		opts.Font = font.Name
		opts.FontDigest = font.Digest
	}
	return opts
}
