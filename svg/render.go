// Package svg serializes QR symbols as SVG 1.1 markup and reads rendered
// symbols back.
package svg

import (
	"fmt"
	"strings"

	"github.com/jrh3k5/qrsvg/qr"
)

const (
	DefaultModuleSize = 10
	DefaultQuietZone  = 4
	DefaultForeground = "#000000"
	DefaultBackground = "#ffffff"
)

// Options controls how a symbol is drawn.
type Options struct {
	// ModuleSize is the side of one module in SVG user units.
	ModuleSize int
	// QuietZone is the light margin around the symbol, in modules.
	QuietZone  int
	Foreground string
	Background string
	// Description, when not empty, is embedded as <desc><![CDATA[...]]></desc>.
	Description string
}

func DefaultOptions() Options {
	return Options{
		ModuleSize: DefaultModuleSize,
		QuietZone:  DefaultQuietZone,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
	}
}

// Render draws g as a standalone SVG document: a background rect covering the
// canvas followed by one rect per dark module. Identical input yields
// identical output.
func Render(g *qr.Grid, opts Options) string {
	opts = withDefaults(opts)

	unit := opts.ModuleSize
	offset := opts.QuietZone * unit
	side := (g.Size() + 2*opts.QuietZone) * unit

	var b strings.Builder
	b.Grow(64 * (g.DarkCount() + 8))

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, side, side, side, side)
	b.WriteString("\n")
	if opts.Description != "" {
		b.WriteString(descElement(opts.Description))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, escapeAttr(opts.Background))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<g fill="%s">`, escapeAttr(opts.Foreground))
	b.WriteString("\n")
	for y := 0; y < g.Size(); y++ {
		for x := 0; x < g.Size(); x++ {
			if !g.Dark(x, y) {
				continue
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d"/>`, offset+x*unit, offset+y*unit, unit, unit)
			b.WriteString("\n")
		}
	}
	b.WriteString("</g>\n</svg>\n")

	return b.String()
}

func withDefaults(opts Options) Options {
	if opts.ModuleSize <= 0 {
		opts.ModuleSize = DefaultModuleSize
	}
	if opts.QuietZone < 0 {
		opts.QuietZone = 0
	}
	if opts.Foreground == "" {
		opts.Foreground = DefaultForeground
	}
	if opts.Background == "" {
		opts.Background = DefaultBackground
	}

	return opts
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
