package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	clear(g.data)
}

// CellIndex returns the position of local coordinates (x, y, z) within a
// Sim's Cells slice.
func CellIndex(size Size, x, y, z int) int { return (x*size.H+y)*size.D + z }

// Layer copies the z-th depth layer of cells into dst, which must be W x H.
// Higher y values land on lower rows so "up" is drawn at the top.
func Layer(dst *ByteGrid, cells []uint8, size Size, z int) bool {
	if dst.W != size.W || dst.H != size.H || z < 0 || z >= size.D || len(cells) != size.W*size.H*size.D {
		return false
	}
	for x := 0; x < size.W; x++ {
		for y := 0; y < size.H; y++ {
			dst.data[dst.Index(x, size.H-1-y)] = cells[CellIndex(size, x, y, z)]
		}
	}
	return true
}
