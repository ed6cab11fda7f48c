package qr

// Grid is an immutable QR symbol: a square of light and dark modules without
// quiet zone.
type Grid struct {
	size    int
	modules []bool
	version int
	level   Level
	mask    int
}

// NewGrid builds a grid of the given side length, asking dark for the color
// of every module. The grid carries no symbol metadata: Version is 0 and Mask
// is MaskAuto.
func NewGrid(size int, dark func(x, y int) bool) *Grid {
	return newSymbol(size, dark, 0, 0, MaskAuto)
}

func newSymbol(size int, dark func(x, y int) bool, version int, level Level, mask int) *Grid {
	if size < 0 {
		size = 0
	}

	modules := make([]bool, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			modules[y*size+x] = dark(x, y)
		}
	}

	return &Grid{
		size:    size,
		modules: modules,
		version: version,
		level:   level,
		mask:    mask,
	}
}

// Size is the number of modules per side.
func (g *Grid) Size() int {
	return g.size
}

// Dark reports whether the module at column x, row y is dark. Coordinates
// outside the grid are light.
func (g *Grid) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= g.size || y >= g.size {
		return false
	}

	return g.modules[y*g.size+x]
}

// DarkCount is the number of dark modules.
func (g *Grid) DarkCount() int {
	count := 0
	for _, dark := range g.modules {
		if dark {
			count++
		}
	}

	return count
}

// Version is the QR version (1-40), or 0 when unknown.
func (g *Grid) Version() int {
	return g.version
}

// Level is the error-correction level the symbol was built with.
func (g *Grid) Level() Level {
	return g.level
}

// Mask is the mask pattern applied, or MaskAuto when the backend does not
// report it.
func (g *Grid) Mask() int {
	return g.mask
}
