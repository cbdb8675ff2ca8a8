package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a three-dimensional simulation grid.
type Size struct {
	W int
	H int
	D int
}

// Sim defines the minimal contract a cellular automaton must implement.
// Cells are laid out x-major, then y, then z; a non-zero value is alive.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// New builds the named simulation.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v)", name, Names())
	}
	return f(cfg)
}

// Names lists registered simulations in sorted order.
func Names() []string {
	out := make([]string, 0, len(sims))
	for name := range sims {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DeltaProvider is implemented by sims that know which Cells indices flipped
// during the latest Step.
type DeltaProvider interface {
	Delta() []int
}
