// Package pkg provides the core libraries for csvtable, which renders CSV
// files as styled table images.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [render/table] - Domain logic (presets, layout, draw plan, sinks)
//  2. [io] - CSV import and canonical export
//  3. [fonts] - Font loading with a fallback chain
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache] - Artifact caches (file, Redis, null)
//  6. [server] - HTTP render service
//
// # Architecture
//
// The typical data flow through csvtable:
//
//	CSV file or request body
//	         ↓
//	    [io] package (parse rows, ragged rows kept)
//	         ↓
//	    [render/table/layout] package (column widths, wrapping, row heights)
//	         ↓
//	    ordered draw plan (fill, stroke, text)
//	         ↓
//	    [render/table/sink] package (PNG/JPEG/BMP/TIFF/SVG/PDF/JSON)
//
// # Quick Start
//
// Lay out a table and encode it as PNG:
//
//	import (
//	    "github.com/matzehuels/csvtable/pkg/io"
//	    "github.com/matzehuels/csvtable/pkg/render/table"
//	    "github.com/matzehuels/csvtable/pkg/render/table/sink"
//	)
//
//	data, _ := io.ImportCSV("scores.csv")
//	cfg, _ := table.Preset(table.PresetProfessional)
//	res, _ := table.Render(data, cfg.WithScale(2, 300))
//	png, _ := sink.RenderRaster(res, sink.FormatPNG)
//
// Most callers go through [pipeline] instead, which adds presets by name,
// user themes and the artifact cache.
//
// # Error Handling
//
// Errors carry machine-readable codes from [errors]. A missing input file
// and a table without rows are reports rather than failures: the CLI prints
// a warning and exits successfully, the service answers 404 or 422.
//
// [render/table]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/render/table
// [render/table/layout]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/render/table/layout
// [render/table/sink]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/render/table/sink
// [io]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/io
// [fonts]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/csvtable/pkg/errors
package pkg
