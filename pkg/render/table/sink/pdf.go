package sink

import (
	"context"

	"github.com/matzehuels/csvtable/pkg/render"
	"github.com/matzehuels/csvtable/pkg/render/table"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	ctx     context.Context
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// WithPDFContext bounds the external conversion by ctx.
func WithPDFContext(ctx context.Context) PDFOption {
	return func(r *pdfRenderer) { r.ctx = ctx }
}

// RenderPDF renders res as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(res *table.Result, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{ctx: context.Background()}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPDF(r.ctx, RenderSVG(res, r.svgOpts...))
}
