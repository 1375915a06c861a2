// Package render provides table image rendering.
//
// # Overview
//
// Rendering is split into three layers:
//
//   - [table/text]: text measurement and greedy word wrapping
//   - [table/layout]: column widths, row heights, cell geometry and the
//     ordered draw plan
//   - [table/sink]: output formats (PNG, JPEG, BMP, TIFF, SVG, PDF, JSON)
//
// The [table] package ties them together with configuration presets.
//
//	res, err := table.Render(data, table.DefaultConfig())
//	png, err := sink.RenderRaster(res, sink.FormatPNG)
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF using the external rsvg-convert tool (from
// librsvg). Raster formats are drawn natively and need no external tools.
//
//	svg := sink.RenderSVG(res)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [table]: github.com/matzehuels/csvtable/pkg/render/table
// [table/text]: github.com/matzehuels/csvtable/pkg/render/table/text
// [table/layout]: github.com/matzehuels/csvtable/pkg/render/table/layout
// [table/sink]: github.com/matzehuels/csvtable/pkg/render/table/sink
package render
