package automaton

import "time"

// DefaultHistory is how many generation fingerprints a World keeps for cycle
// detection when Options.History is zero.
const DefaultHistory = 64

// AdvanceStats summarizes one call to World.Advance.
type AdvanceStats struct {
	Generation int
	Changed    int
	Alive      int
	Duration   time.Duration
}

// Observer receives a summary after every generation.
type Observer interface {
	ObserveAdvance(AdvanceStats)
}

// Options configures NewWorld. The zero Rule selects DefaultRule.
type Options struct {
	Size             Size
	Origin           Vec3
	DeathProbability float64

	Rule     Rule
	Strategy Strategy
	Workers  int
	History  int

	Observer Observer
}

// World owns a grid together with the alive state last reported to the
// renderer, so each generation only reports the cells that flipped.
type World struct {
	grid   *Grid
	visual []bool

	generation  int
	lastChanged int
	edited      bool

	history  int
	seen     map[uint64]int
	ring     []uint64
	period   int
	observer Observer
}

// NewWorld creates and seeds a grid and returns the initial state of every
// cell in grid order.
func NewWorld(opts Options, src RandomSource) (*World, []Change, error) {
	g, err := Create(opts.Size, opts.Origin)
	if err != nil {
		return nil, nil, err
	}
	if _, err := g.Seed(src, opts.DeathProbability); err != nil {
		return nil, nil, err
	}
	if opts.Rule != (Rule{}) {
		g.SetRule(opts.Rule)
	}
	g.SetStrategy(opts.Strategy)
	g.SetWorkers(opts.Workers)

	history := opts.History
	if history <= 0 {
		history = DefaultHistory
	}
	w := &World{
		grid:     g,
		visual:   make([]bool, g.Len()),
		history:  history,
		seen:     make(map[uint64]int, history),
		observer: opts.Observer,
	}
	for i, c := range g.cells {
		w.visual[i] = c.Alive
	}
	w.remember(g.Fingerprint())
	return w, w.State(), nil
}

// Advance runs one generation and returns the cells whose state changed, in
// grid order. The result is empty when nothing flipped.
func (w *World) Advance() []Change {
	start := time.Now()
	w.grid.Step()

	var changes []Change
	for i, c := range w.grid.cells {
		if w.visual[i] == c.Alive {
			continue
		}
		w.visual[i] = c.Alive
		changes = append(changes, Change{Pos: c.Pos, Alive: c.Alive})
	}
	w.generation++
	w.lastChanged = len(changes)
	w.edited = false
	w.remember(w.grid.Fingerprint())

	if w.observer != nil {
		w.observer.ObserveAdvance(AdvanceStats{
			Generation: w.generation,
			Changed:    len(changes),
			Alive:      w.grid.AliveCount(),
			Duration:   time.Since(start),
		})
	}
	return changes
}

// SetObserver replaces the observer fed after each Advance. A nil o stops
// reporting. The running generation is kept.
func (w *World) SetObserver(o Observer) { w.observer = o }

// Set overwrites the cell at pos in both the grid and the reported state, as
// when a player places or removes a voxel. It returns the change to render, or
// ok=false when the cell already had that state. Cycle history restarts since
// earlier generations no longer lead here.
func (w *World) Set(pos Vec3, alive bool) (c Change, ok bool, err error) {
	i, err := w.grid.Index(pos)
	if err != nil {
		return Change{}, false, err
	}
	if w.grid.cells[i].Alive == alive && w.visual[i] == alive {
		return Change{}, false, nil
	}
	w.grid.cells[i].Alive = alive
	w.visual[i] = alive
	w.edited = true

	clear(w.seen)
	w.ring = w.ring[:0]
	w.remember(w.grid.Fingerprint())
	return Change{Pos: pos, Alive: alive}, true, nil
}

func (w *World) remember(fp uint64) {
	w.period = 0
	if gen, ok := w.seen[fp]; ok {
		w.period = w.generation - gen
	}
	if len(w.ring) == w.history {
		oldest := w.ring[0]
		w.ring = w.ring[1:]
		if w.seen[oldest] <= w.generation-w.history {
			delete(w.seen, oldest)
		}
	}
	w.ring = append(w.ring, fp)
	w.seen[fp] = w.generation
}

// Alive returns the last reported state of the cell at pos.
func (w *World) Alive(pos Vec3) (bool, error) {
	i, err := w.grid.Index(pos)
	if err != nil {
		return false, err
	}
	return w.visual[i], nil
}

// State returns the reported state of every cell in grid order.
func (w *World) State() []Change {
	out := make([]Change, len(w.visual))
	for i, c := range w.grid.cells {
		out[i] = Change{Pos: c.Pos, Alive: w.visual[i]}
	}
	return out
}

// Size returns the grid extent.
func (w *World) Size() Size { return w.grid.Size() }

// Origin returns the lowest corner of the grid.
func (w *World) Origin() Vec3 { return w.grid.Origin() }

// Rule returns the transition rule in use.
func (w *World) Rule() Rule { return w.grid.Rule() }

// Generation returns how many times Advance has run.
func (w *World) Generation() int { return w.generation }

// AliveCount returns the number of alive cells.
func (w *World) AliveCount() int { return w.grid.AliveCount() }

// Stable reports whether the most recent Advance changed nothing and no cell
// was set since.
func (w *World) Stable() bool { return w.generation > 0 && w.lastChanged == 0 && !w.edited }

// Period returns the length of the cycle the latest generation closed, or 0
// when its fingerprint was not seen within the remembered history. A stable
// world has period 1.
func (w *World) Period() int { return w.period }
