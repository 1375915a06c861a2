package sink

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/render/table"
)

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatPNG, FormatJPEG, FormatBMP, FormatTIFF, FormatSVG, FormatPDF, FormatJSON}

var aliases = map[string]Format{
	"png":  FormatPNG,
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"bmp":  FormatBMP,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
	"svg":  FormatSVG,
	"pdf":  FormatPDF,
	"json": FormatJSON,
}

// ParseFormat accepts a format name or file extension, with or without the
// leading dot, in any case.
func ParseFormat(s string) (Format, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported format %q (must be one of: png, jpg, bmp, tiff, svg, pdf, json)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q: no extension", path)
	}
	return ParseFormat(ext)
}

// Ext returns the canonical file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Raster reports whether f is drawn on a pixel canvas.
func (f Format) Raster() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatBMP, FormatTIFF:
		return true
	}
	return false
}

// Render encodes res in the given format. ctx only bounds external
// conversion (PDF).
func Render(ctx context.Context, res *table.Result, f Format) ([]byte, error) {
	switch {
	case f.Raster():
		return RenderRaster(res, f)
	case f == FormatSVG:
		return RenderSVG(res, svgOptions(res.Config)...), nil
	case f == FormatPDF:
		return RenderPDF(res, WithPDFContext(ctx), WithPDFSVGOptions(svgOptions(res.Config)...))
	case f == FormatJSON:
		return RenderJSON(res)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
}

func svgOptions(cfg table.Config) []SVGOption {
	if cfg.SVGFontFamily == "" {
		return nil
	}
	return []SVGOption{WithFontFamily(cfg.SVGFontFamily)}
}
