package render

import (
	"image/color"

	"voxel-ca/internal/core"
)

// Values written into a layer buffer before it is converted to pixels.
const (
	ValueDead uint8 = iota
	ValueAlive
	ValueBorn
	ValueDied
)

// DefaultPalette colors dead, alive, born and died cells. Alive voxels are
// near-white and fresh births use lime.
var DefaultPalette = []color.RGBA{
	ValueDead:  {R: 12, G: 12, B: 18, A: 255},
	ValueAlive: {R: 236, G: 236, B: 244, A: 255},
	ValueBorn:  {R: 0, G: 255, B: 0, A: 255},
	ValueDied:  {R: 110, G: 24, B: 24, A: 255},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// MarkChanges overlays born/died markers on a layer produced by core.Layer
// for depth z. delta holds Cells indices and cells the post-step values.
func MarkChanges(layer *core.ByteGrid, cells []uint8, delta []int, size core.Size, z int) {
	if layer.W != size.W || layer.H != size.H {
		return
	}
	for _, idx := range delta {
		if idx < 0 || idx >= len(cells) || idx%size.D != z {
			continue
		}
		y := (idx / size.D) % size.H
		x := idx / (size.D * size.H)
		v := ValueDied
		if cells[idx] != 0 {
			v = ValueBorn
		}
		layer.Cells()[layer.Index(x, size.H-1-y)] = v
	}
}
