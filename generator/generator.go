// Package generator turns payloads into SVG QR codes.
package generator

import (
	"github.com/jrh3k5/qrsvg/failure"
	"github.com/jrh3k5/qrsvg/qr"
	"github.com/jrh3k5/qrsvg/svg"
)

// Generator pairs a symbol encoder with fixed encoding and rendering options.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	encoder qr.Encoder
	qrOpts  qr.Options
	svgOpts svg.Options
	// embedPayload copies the payload into the document's <desc>.
	embedPayload bool
}

// Option customizes a Generator.
type Option func(*Generator)

// WithQROptions sets the level, mode and mask policy.
func WithQROptions(opts qr.Options) Option {
	return func(g *Generator) {
		g.qrOpts = opts
	}
}

// WithSVGOptions sets the rendering options. Their Description is ignored;
// see WithEmbeddedPayload.
func WithSVGOptions(opts svg.Options) Option {
	return func(g *Generator) {
		opts.Description = ""
		g.svgOpts = opts
	}
}

// WithEmbeddedPayload stores each payload in the generated document's <desc>.
func WithEmbeddedPayload(embed bool) Option {
	return func(g *Generator) {
		g.embedPayload = embed
	}
}

// New creates a Generator using encoder. Without options it encodes at level
// M with automatic mode and mask selection, and renders 10-unit modules with a
// four-module quiet zone.
func New(encoder qr.Encoder, opts ...Option) *Generator {
	g := &Generator{
		encoder: encoder,
		qrOpts:  qr.DefaultOptions(),
		svgOpts: svg.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Encode builds the QR symbol for data.
func (g *Generator) Encode(data string) (*qr.Grid, error) {
	return g.encoder.Encode(data, g.qrOpts)
}

// EncodeToSVG encodes data and renders it as a self-contained SVG document.
// Payloads that do not fit fail with a failure.KindEncoding error, as do
// payloads that cannot be embedded as XML text when embedding is on.
func (g *Generator) EncodeToSVG(data string) (string, error) {
	if g.embedPayload && !svg.IsDescribable(data) {
		return "", failure.Encoding("payload cannot be embedded in SVG: it is not valid UTF-8 or contains characters XML does not allow")
	}

	grid, err := g.Encode(data)
	if err != nil {
		return "", err
	}

	opts := g.svgOpts
	if g.embedPayload {
		opts.Description = data
	}

	return svg.Render(grid, opts), nil
}
