// Package scan decodes QR symbols back into their payload.
package scan

import (
	"fmt"
	"image"
	"image/color"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"

	"github.com/jrh3k5/qrsvg/qr"
	"github.com/jrh3k5/qrsvg/svg"
)

const (
	rasterScale     = 4
	rasterQuietZone = 4
)

// Rasterize draws g as a grayscale image, scale pixels per module, with a
// light margin of quietZone modules.
func Rasterize(g *qr.Grid, scale, quietZone int) *image.Gray {
	side := (g.Size() + 2*quietZone) * scale
	img := image.NewGray(image.Rect(0, 0, side, side))
	for py := 0; py < side; py++ {
		for px := 0; px < side; px++ {
			shade := color.Gray{Y: 0xff}
			if g.Dark(px/scale-quietZone, py/scale-quietZone) {
				shade = color.Gray{Y: 0x00}
			}
			img.SetGray(px, py, shade)
		}
	}

	return img
}

// DecodeGrid reads the payload of a symbol.
func DecodeGrid(g *qr.Grid) (string, error) {
	bitmap, err := gozxing.NewBinaryBitmapFromImage(Rasterize(g, rasterScale, rasterQuietZone))
	if err != nil {
		return "", fmt.Errorf("failed to binarize symbol: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE: true,
	}
	result, err := gozxingqr.NewQRCodeReader().Decode(bitmap, hints)
	if err != nil {
		return "", fmt.Errorf("failed to decode symbol: %w", err)
	}

	return result.GetText(), nil
}

// DecodeSVG reads the payload of a document produced by svg.Render.
func DecodeSVG(svgText string) (string, error) {
	grid, err := svg.ExtractGrid(svgText)
	if err != nil {
		return "", fmt.Errorf("failed to extract module grid: %w", err)
	}

	return DecodeGrid(grid)
}
