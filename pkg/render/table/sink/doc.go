// Package sink encodes a laid-out table.
//
// Raster formats (PNG, JPEG, BMP, TIFF) execute the draw plan on a [Canvas]
// and encode the result; PNG and JPEG record the configured DPI. SVG replays
// the same plan as vector elements, PDF converts that SVG with rsvg-convert,
// and JSON dumps the layout and plan for inspection.
//
// All sinks take a [table.Result] and never re-run layout.
//
// [table.Result]: github.com/matzehuels/csvtable/pkg/render/table.Result
package sink
