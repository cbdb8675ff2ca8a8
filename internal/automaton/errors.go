package automaton

import "fmt"

// InvalidSizeError is returned when a grid dimension is not strictly positive
// or the cell count does not fit in an int.
type InvalidSizeError struct {
	Size Size
}

func (e *InvalidSizeError) Error() string {
	if e.Size.valid() {
		return fmt.Sprintf("automaton: invalid grid size %s: cell count overflows int", e.Size)
	}
	return fmt.Sprintf("automaton: invalid grid size %s: every dimension must be positive", e.Size)
}

// OutOfRangeError is returned when a coordinate lies outside [origin, origin+size).
type OutOfRangeError struct {
	Pos    Vec3
	Origin Vec3
	Size   Size
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("automaton: position %s outside grid at %s with size %s", e.Pos, e.Origin, e.Size)
}

// InvalidProbabilityError is returned when a death probability is outside [0,1].
type InvalidProbabilityError struct {
	P float64
}

func (e *InvalidProbabilityError) Error() string {
	return fmt.Sprintf("automaton: death probability %v outside [0,1]", e.P)
}

// RuleError is returned by ParseRule for malformed or unsupported notation.
type RuleError struct {
	Rule   string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("automaton: rule %q: %s", e.Rule, e.Reason)
}
