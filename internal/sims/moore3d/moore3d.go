package moore3d

import (
	"fmt"

	"voxel-ca/internal/automaton"
	"voxel-ca/internal/config"
	"voxel-ca/internal/core"
	rng "voxel-ca/pkg/core"
)

// Sim adapts an automaton World to core.Sim. The display buffer mirrors what a
// renderer shows and is only written for cells reported by Advance.
type Sim struct {
	cfg      config.Config
	opts     automaton.Options
	world    *automaton.World
	display  []uint8
	last     []automaton.Change
	delta    []int
	seed     int64
	observer automaton.Observer
}

// New validates cfg and builds a seeded simulation.
func New(cfg config.Config) (*Sim, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	s := &Sim{cfg: cfg, opts: opts, display: make([]uint8, opts.Size.Volume())}
	s.Reset(0)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "moore3d" }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size {
	return core.Size{W: s.opts.Size.W, H: s.opts.Size.H, D: s.opts.Size.D}
}

// Cells exposes the display buffer.
func (s *Sim) Cells() []uint8 { return s.display }

// World exposes the underlying automaton.
func (s *Sim) World() *automaton.World { return s.world }

// LastChanges returns the cells flipped by the latest Step.
func (s *Sim) LastChanges() []automaton.Change { return s.last }

// Delta returns the Cells indices flipped by the latest Step.
func (s *Sim) Delta() []int { return s.delta }

// Seed returns the seed used by the latest Reset.
func (s *Sim) Seed() int64 { return s.seed }

// SetObserver attaches o to the running world and to worlds built by later
// resets.
func (s *Sim) SetObserver(o automaton.Observer) {
	s.observer = o
	s.world.SetObserver(o)
}

// SetCell places (alive) or removes a voxel at local coordinates, keeping the
// world's reported state and the display buffer in step.
func (s *Sim) SetCell(x, y, z int, alive bool) error {
	origin := s.opts.Origin
	c, ok, err := s.world.Set(automaton.Vec3{X: origin.X + x, Y: origin.Y + y, Z: origin.Z + z}, alive)
	if err != nil || !ok {
		return err
	}
	s.display[core.CellIndex(s.Size(), x, y, z)] = boolToCell(c.Alive)
	return nil
}

// Reset rebuilds the world. A zero seed falls back to the configured seed.
func (s *Sim) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.seed = seed
	opts := s.opts
	opts.Observer = s.observer

	world, initial, err := automaton.NewWorld(opts, rng.NewRNG(seed))
	if err != nil {
		// opts passed cfg.Options in New.
		panic(fmt.Sprintf("moore3d: reset with validated options failed: %v", err))
	}
	s.world = world
	s.last = nil
	s.delta = s.delta[:0]
	for i, c := range initial {
		s.display[i] = boolToCell(c.Alive)
	}
}

// Step advances one generation and applies the delta to the display buffer.
func (s *Sim) Step() {
	s.last = s.world.Advance()
	s.delta = s.delta[:0]
	size := s.Size()
	origin := s.opts.Origin
	for _, c := range s.last {
		idx := core.CellIndex(size, c.Pos.X-origin.X, c.Pos.Y-origin.Y, c.Pos.Z-origin.Z)
		s.display[idx] = boolToCell(c.Alive)
		s.delta = append(s.delta, idx)
	}
}

func boolToCell(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Parameters reports the world settings and live statistics.
func (s *Sim) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.StringParam("size", "Size", s.cfg.Size.String()),
				core.StringParam("origin", "Origin", s.cfg.Origin.String()),
				core.FloatParam("death", "Death chance", s.cfg.DeathProbability),
				core.Int64Param("seed", "Seed", s.seed),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.StringParam("rule", "Rule", s.world.Rule().String()),
				core.StringParam("strategy", "Counting", s.opts.Strategy.String()),
				core.IntParam("workers", "Workers", s.opts.Workers),
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				core.IntParam("generation", "Generation", s.world.Generation()),
				core.IntParam("alive", "Alive", s.world.AliveCount()),
				core.IntParam("changed", "Changed", len(s.last)),
				core.IntParam("period", "Period", s.world.Period()),
			},
		},
	}}
}

func init() {
	core.Register("moore3d", func(cfg map[string]string) (core.Sim, error) {
		c, err := config.FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
