package app

import "fmt"

// View tracks which depth layer is on screen and how generations advance.
type View struct {
	Layer     int
	Depth     int
	Auto      bool
	ShowDelta bool
}

// NewView clamps layer into [0, depth).
func NewView(depth, layer int) View {
	v := View{Depth: depth, ShowDelta: true}
	v.SetLayer(layer)
	return v
}

// SetLayer moves to layer, clamped to the grid depth.
func (v *View) SetLayer(layer int) {
	v.Layer = min(max(layer, 0), max(v.Depth-1, 0))
}

// CellAt maps a cursor position on a layer drawn at scale to grid x and y.
// Screen rows run top down while y grows upward.
func (v View) CellAt(cx, cy, scale, w, h int) (x, y int, ok bool) {
	if scale <= 0 || cx < 0 || cy < 0 {
		return 0, 0, false
	}
	x, row := cx/scale, cy/scale
	if x >= w || row >= h {
		return 0, 0, false
	}
	return x, h - 1 - row, true
}

// Status returns the rows appended under the HUD parameters.
func (v View) Status() []string {
	mode := "paused (P/N step, Space run)"
	if v.Auto {
		mode = "running (Space pause)"
	}
	delta := "off"
	if v.ShowDelta {
		delta = "on"
	}
	return []string{
		fmt.Sprintf("Layer z=%d/%d (Up/Down)", v.Layer, v.Depth-1),
		"Mode: " + mode,
		"Delta markers: " + delta + " (H)",
		"Click place, right-click remove",
		"R reset, S reseed, Q quit",
	}
}
