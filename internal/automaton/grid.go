package automaton

import (
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// RandomSource yields uniform values in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Strategy selects how alive neighbors are counted. Both strategies return
// identical counts.
type Strategy int

const (
	// StrategyLocal visits only the (clipped) 3x3x3 box around the target.
	StrategyLocal Strategy = iota
	// StrategyScan tests every cell of the grid against the target's box.
	StrategyScan
)

func (s Strategy) String() string {
	switch s {
	case StrategyLocal:
		return "local"
	case StrategyScan:
		return "scan"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "local" or "scan" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local":
		return StrategyLocal, nil
	case "scan":
		return StrategyScan, nil
	}
	return 0, fmt.Errorf("automaton: unknown strategy %q", s)
}

// Grid is a cuboid of cells stored x-major, then y, then z.
type Grid struct {
	size   Size
	origin Vec3
	cells  []Cell

	rule     Rule
	strategy Strategy
	workers  int

	prev   []Cell
	counts []int
	bits   []byte
}

// Create builds a grid covering [origin, origin+size) with every cell alive.
func Create(size Size, origin Vec3) (*Grid, error) {
	if !size.valid() || overflows(size) {
		return nil, &InvalidSizeError{Size: size}
	}
	cells := make([]Cell, 0, size.Volume())
	for x := 0; x < size.W; x++ {
		for y := 0; y < size.H; y++ {
			for z := 0; z < size.D; z++ {
				cells = append(cells, Cell{
					Pos:   Vec3{X: origin.X + x, Y: origin.Y + y, Z: origin.Z + z},
					Alive: true,
				})
			}
		}
	}
	return &Grid{
		size:    size,
		origin:  origin,
		cells:   cells,
		rule:    DefaultRule,
		workers: 1,
		prev:    make([]Cell, len(cells)),
		counts:  make([]int, len(cells)),
	}, nil
}

// overflows reports whether W*H*D does not fit in an int.
func overflows(s Size) bool {
	if s.H > math.MaxInt/s.W {
		return true
	}
	return s.D > math.MaxInt/(s.W*s.H)
}

// SetRule replaces the transition rule used by Step.
func (g *Grid) SetRule(r Rule) { g.rule = r }

// Rule returns the transition rule used by Step.
func (g *Grid) Rule() Rule { return g.rule }

// SetStrategy selects the neighbor counting strategy.
func (g *Grid) SetStrategy(s Strategy) { g.strategy = s }

// SetWorkers sets how many goroutines count neighbors during Step. Values
// below one are treated as one.
func (g *Grid) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	g.workers = n
}

// Size returns the grid extent.
func (g *Grid) Size() Size { return g.size }

// Origin returns the lowest corner of the grid.
func (g *Grid) Origin() Vec3 { return g.origin }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cells returns a copy of the cells in grid order.
func (g *Grid) Cells() []Cell { return append([]Cell(nil), g.cells...) }

// Contains reports whether pos lies inside the grid.
func (g *Grid) Contains(pos Vec3) bool {
	x, y, z := pos.X-g.origin.X, pos.Y-g.origin.Y, pos.Z-g.origin.Z
	return x >= 0 && x < g.size.W && y >= 0 && y < g.size.H && z >= 0 && z < g.size.D
}

// Index returns the position of pos within the cell order.
func (g *Grid) Index(pos Vec3) (int, error) {
	if !g.Contains(pos) {
		return 0, g.outOfRange(pos)
	}
	return g.index(pos), nil
}

func (g *Grid) index(pos Vec3) int {
	x, y, z := pos.X-g.origin.X, pos.Y-g.origin.Y, pos.Z-g.origin.Z
	return (x*g.size.H+y)*g.size.D + z
}

func (g *Grid) outOfRange(pos Vec3) error {
	return &OutOfRangeError{Pos: pos, Origin: g.origin, Size: g.size}
}

// At returns the cell at pos.
func (g *Grid) At(pos Vec3) (Cell, error) {
	i, err := g.Index(pos)
	if err != nil {
		return Cell{}, err
	}
	return g.cells[i], nil
}

// Alive reports the alive flag of the cell at pos.
func (g *Grid) Alive(pos Vec3) (bool, error) {
	c, err := g.At(pos)
	return c.Alive, err
}

// Set overwrites the alive flag of the cell at pos.
func (g *Grid) Set(pos Vec3, alive bool) error {
	i, err := g.Index(pos)
	if err != nil {
		return err
	}
	g.cells[i].Alive = alive
	return nil
}

// Fill sets every cell to alive.
func (g *Grid) Fill(alive bool) {
	for i := range g.cells {
		g.cells[i].Alive = alive
	}
}

// AliveCount returns the number of alive cells.
func (g *Grid) AliveCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Alive {
			n++
		}
	}
	return n
}

// Seed kills each cell independently with probability p and returns g.
func (g *Grid) Seed(src RandomSource, p float64) (*Grid, error) {
	if !(p >= 0 && p <= 1) {
		return nil, &InvalidProbabilityError{P: p}
	}
	for i := range g.cells {
		if src.Float64() < p {
			g.cells[i].Alive = false
		}
	}
	return g, nil
}

// CountAliveNeighbors returns how many alive cells, other than the one at pos,
// lie within one step of pos on every axis.
func (g *Grid) CountAliveNeighbors(pos Vec3) (int, error) {
	if !g.Contains(pos) {
		return 0, g.outOfRange(pos)
	}
	return g.count(g.cells, pos), nil
}

func (g *Grid) count(cells []Cell, pos Vec3) int {
	if g.strategy == StrategyScan {
		return countScan(cells, pos, cells[g.index(pos)].Alive)
	}
	return g.countLocal(cells, pos)
}

func within(v, center int) bool { return center-1 <= v && v <= center+1 }

func countScan(cells []Cell, pos Vec3, centerAlive bool) int {
	n := 0
	for _, c := range cells {
		if !c.Alive {
			continue
		}
		if within(c.Pos.X, pos.X) && within(c.Pos.Y, pos.Y) && within(c.Pos.Z, pos.Z) {
			n++
		}
	}
	if centerAlive {
		n--
	}
	return n
}

// countLocal reads cells through the grid's index layout; cells must share it.
func (g *Grid) countLocal(cells []Cell, pos Vec3) int {
	hi := g.origin.Add(Vec3{g.size.W - 1, g.size.H - 1, g.size.D - 1})
	n := 0
	for x := max(pos.X-1, g.origin.X); x <= min(pos.X+1, hi.X); x++ {
		for y := max(pos.Y-1, g.origin.Y); y <= min(pos.Y+1, hi.Y); y++ {
			for z := max(pos.Z-1, g.origin.Z); z <= min(pos.Z+1, hi.Z); z++ {
				if cells[g.index(Vec3{x, y, z})].Alive {
					n++
				}
			}
		}
	}
	if cells[g.index(pos)].Alive {
		n--
	}
	return n
}

// Step advances the grid by one generation and returns g. Every count is
// taken from a copy of the current generation before any cell is written.
func (g *Grid) Step() *Grid {
	copy(g.prev, g.cells)
	prev := g.prev

	workers := min(g.workers, len(prev))
	if workers <= 1 {
		for i, c := range prev {
			g.counts[i] = g.count(prev, c.Pos)
		}
	} else {
		// Chunks outnumber workers so the limit balances uneven chunks.
		var eg errgroup.Group
		eg.SetLimit(workers)
		chunk := max(len(prev)/(workers*4), 1)
		for start := 0; start < len(prev); start += chunk {
			start, end := start, min(start+chunk, len(prev))
			eg.Go(func() error {
				for i := start; i < end; i++ {
					g.counts[i] = g.count(prev, prev[i].Pos)
				}
				return nil
			})
		}
		// Counting cannot fail; Wait only joins the workers.
		_ = eg.Wait()
	}

	for i, c := range prev {
		g.cells[i].Alive = g.rule.Next(c.Alive, g.counts[i])
	}
	return g
}

// Fingerprint hashes the alive bitmap of the current generation.
func (g *Grid) Fingerprint() uint64 {
	need := (len(g.cells) + 7) / 8
	if len(g.bits) != need {
		g.bits = make([]byte, need)
	}
	clear(g.bits)
	for i, c := range g.cells {
		if c.Alive {
			g.bits[i/8] |= 1 << (i % 8)
		}
	}
	return xxhash.Sum64(g.bits)
}
