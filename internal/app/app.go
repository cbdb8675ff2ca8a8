//go:build ebiten

package app

import (
	"log"
	"time"

	"voxel-ca/internal/core"
	"voxel-ca/internal/render"
	"voxel-ca/internal/ui"
	rng "voxel-ca/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// editor is implemented by simulations whose voxels can be toggled by hand.
type editor interface {
	SetCell(x, y, z int, alive bool) error
}

// Game adapts a core simulation to the ebiten.Game interface, drawing one
// depth layer at a time.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	layer   *core.ByteGrid
	ticker  *core.FixedStep
	view    View

	scale int
	seed  int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		layer:   core.NewByteGrid(size.W, size.H),
		ticker:  core.NewFixedStep(cfg.TPS, 4),
		view:    NewView(size.D, cfg.Layer),
		scale:   cfg.Scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.ticker.Reset()
	log.Printf("reset %s with seed %d", g.sim.Name(), seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.view.Auto = !g.view.Auto
		g.ticker.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.view.SetLayer(g.view.Layer + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.view.SetLayer(g.view.Layer - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.view.ShowDelta = !g.view.ShowDelta
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(rng.ClockSeed())
	}

	g.edit()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.sim.Step()
	}
	if g.view.Auto {
		for n := g.ticker.Due(time.Now()); n > 0; n-- {
			g.sim.Step()
		}
	}
	g.hud.Update()
	return nil
}

func (g *Game) edit() {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if !left && !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		return
	}
	ed, ok := g.sim.(editor)
	if !ok {
		return
	}
	size := g.sim.Size()
	cx, cy := ebiten.CursorPosition()
	x, y, ok := g.view.CellAt(cx, cy, g.scale, size.W, size.H)
	if !ok {
		return
	}
	if err := ed.SetCell(x, y, g.view.Layer, left); err != nil {
		log.Printf("edit (%d,%d,%d): %v", x, y, g.view.Layer, err)
	}
}

// Draw renders the current layer and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.sim.Size()
	cells := g.sim.Cells()
	if !core.Layer(g.layer, cells, size, g.view.Layer) {
		return
	}
	if dp, ok := g.sim.(core.DeltaProvider); ok && g.view.ShowDelta {
		render.MarkChanges(g.layer, cells, dp.Delta(), size, g.view.Layer)
	}
	g.painter.Blit(screen, g.layer.Cells(), render.DefaultPalette, g.scale)
	g.hud.Draw(screen, size.W*g.scale, g.height(), g.view.Status()...)
}

func (g *Game) height() int {
	return max(g.sim.Size().H*g.scale, 360)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sim.Size().W*g.scale + g.hud.Width(), g.height()
}
