package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jrh3k5/qrsvg/qr"
)

type moduleRect struct {
	x, y, size float64
}

// ExtractGrid re-reads the module grid of a document produced by Render. Only
// rects with explicit coordinates count as modules. The symbol is located from
// its always-dark top-left and top-right finder corners, so the quiet zone and
// module size need not be known.
func ExtractGrid(svgText string) (*qr.Grid, error) {
	rects, err := moduleRects(svgText)
	if err != nil {
		return nil, err
	}
	if len(rects) == 0 {
		return nil, errors.New("no module rects found")
	}

	unit := rects[0].size
	if unit <= 0 {
		return nil, fmt.Errorf("invalid module size %v", unit)
	}

	minX, minY, maxX := rects[0].x, rects[0].y, rects[0].x
	for _, r := range rects[1:] {
		if r.size != unit {
			return nil, fmt.Errorf("inconsistent module sizes %v and %v", unit, r.size)
		}
		minX = min(minX, r.x)
		minY = min(minY, r.y)
		maxX = max(maxX, r.x)
	}

	size := int((maxX-minX)/unit+0.5) + 1
	dark := make(map[[2]int]bool, len(rects))
	for _, r := range rects {
		col := int((r.x-minX)/unit + 0.5)
		row := int((r.y-minY)/unit + 0.5)
		if col >= size || row >= size {
			return nil, fmt.Errorf("module at (%v, %v) lies outside a %d-module symbol", r.x, r.y, size)
		}
		dark[[2]int{col, row}] = true
	}

	return qr.NewGrid(size, func(x, y int) bool {
		return dark[[2]int{x, y}]
	}), nil
}

func moduleRects(svgText string) ([]moduleRect, error) {
	decoder := xml.NewDecoder(strings.NewReader(svgText))

	var rects []moduleRect
	sawRoot := false
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to parse SVG: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "svg" {
			sawRoot = true
			continue
		}
		if start.Name.Local != "rect" {
			continue
		}

		attrs := make(map[string]string, len(start.Attr))
		for _, attr := range start.Attr {
			attrs[attr.Name.Local] = attr.Value
		}
		if _, hasX := attrs["x"]; !hasX {
			continue
		}

		rect, err := parseRect(attrs)
		if err != nil {
			return nil, err
		}
		rects = append(rects, rect)
	}

	if !sawRoot {
		return nil, errors.New("document has no <svg> root")
	}

	return rects, nil
}

func parseRect(attrs map[string]string) (moduleRect, error) {
	var values [4]float64
	for i, name := range []string{"x", "y", "width", "height"} {
		value, err := strconv.ParseFloat(attrs[name], 64)
		if err != nil {
			return moduleRect{}, fmt.Errorf("invalid rect %s '%s': %w", name, attrs[name], err)
		}
		values[i] = value
	}

	if values[2] != values[3] {
		return moduleRect{}, fmt.Errorf("rect is not square: %vx%v", values[2], values[3])
	}

	return moduleRect{x: values[0], y: values[1], size: values[2]}, nil
}
