package ui

import (
	"fmt"

	"voxel-ca/internal/core"
)

// Lines flattens a parameter snapshot into the text rows shown by the HUD,
// followed by any status rows.
func Lines(title string, snap core.ParameterSnapshot, status ...string) []string {
	out := []string{title}
	for _, g := range snap.Groups {
		out = append(out, "", g.Name)
		for _, p := range g.Params {
			out = append(out, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	if len(status) > 0 {
		out = append(out, "")
		out = append(out, status...)
	}
	return out
}

// Title returns the panel heading for sim.
func Title(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	return sim.Name() + " controls"
}
