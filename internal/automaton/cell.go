package automaton

import "fmt"

// Vec3 is an integer grid coordinate.
type Vec3 struct {
	X, Y, Z int
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) String() string { return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z) }

// Size holds the extent of a grid along each axis.
type Size struct {
	W, H, D int
}

// Volume returns the number of cells a grid of this size holds.
func (s Size) Volume() int { return s.W * s.H * s.D }

func (s Size) valid() bool { return s.W > 0 && s.H > 0 && s.D > 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%dx%d", s.W, s.H, s.D) }

// Cell is a single voxel position and its alive flag.
type Cell struct {
	Pos   Vec3
	Alive bool
}

// Change reports the new alive state of a cell whose state flipped.
type Change struct {
	Pos   Vec3
	Alive bool
}
