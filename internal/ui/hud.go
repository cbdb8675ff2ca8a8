//go:build ebiten

package ui

import (
	"image/color"

	"voxel-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 14

// HUD renders the parameter panel to the right of the layer view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	title      string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, title: Title(sim)}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot from the simulation.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
}

// Draw paints the HUD panel at offsetX with the given height, followed by the
// status rows.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int, status ...string) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	for i, line := range Lines(h.title, h.snapshot, status...) {
		text.Draw(h.panel, line, basicfont.Face7x13, 8, 16+i*lineHeight, color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
