package automaton

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxNeighbors is the size of the 3D Moore neighborhood.
const MaxNeighbors = 26

// Range is an inclusive interval of neighbor counts.
type Range struct {
	Min, Max int
}

// Contains reports whether n lies in [Min, Max].
func (r Range) Contains(n int) bool { return n >= r.Min && n <= r.Max }

func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Rule is a two-state Moore automaton rule written as survive/birth/states/neighborhood.
// An alive cell whose count falls outside Survive dies; a dead cell whose count
// falls inside Birth revives.
type Rule struct {
	Survive      Range
	Birth        Range
	States       int
	Neighborhood byte
}

// DefaultRule is 12-26/13-14/2/M: cells with 0-11 neighbors die and dead cells
// with 13 or 14 neighbors revive.
var DefaultRule = Rule{
	Survive:      Range{Min: 12, Max: MaxNeighbors},
	Birth:        Range{Min: 13, Max: 14},
	States:       2,
	Neighborhood: 'M',
}

// Next returns the state a cell moves to given its current state and alive
// neighbor count.
func (r Rule) Next(alive bool, neighbors int) bool {
	if alive {
		return r.Survive.Contains(neighbors)
	}
	return r.Birth.Contains(neighbors)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s/%s/%d/%c", r.Survive, r.Birth, r.States, r.Neighborhood)
}

// ParseRule parses notation such as "12-26/13-14/2/M".
func ParseRule(s string) (Rule, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 4 {
		return Rule{}, &RuleError{Rule: s, Reason: "expected survive/birth/states/neighborhood"}
	}
	survive, err := parseRange(parts[0])
	if err != nil {
		return Rule{}, &RuleError{Rule: s, Reason: "survive: " + err.Error()}
	}
	birth, err := parseRange(parts[1])
	if err != nil {
		return Rule{}, &RuleError{Rule: s, Reason: "birth: " + err.Error()}
	}
	states, err := strconv.Atoi(parts[2])
	if err != nil {
		return Rule{}, &RuleError{Rule: s, Reason: "states: " + err.Error()}
	}
	if states != 2 {
		return Rule{}, &RuleError{Rule: s, Reason: fmt.Sprintf("only 2 states are supported, got %d", states)}
	}
	hood := strings.ToUpper(parts[3])
	if hood != "M" {
		return Rule{}, &RuleError{Rule: s, Reason: fmt.Sprintf("only the Moore neighborhood (M) is supported, got %q", parts[3])}
	}
	return Rule{Survive: survive, Birth: birth, States: states, Neighborhood: 'M'}, nil
}

func parseRange(s string) (Range, error) {
	loStr, hiStr, found := strings.Cut(s, "-")
	lo, err := strconv.Atoi(loStr)
	if err != nil {
		return Range{}, err
	}
	hi := lo
	if found {
		if hi, err = strconv.Atoi(hiStr); err != nil {
			return Range{}, err
		}
	}
	if lo < 0 || hi > MaxNeighbors || lo > hi {
		return Range{}, fmt.Errorf("range %q must satisfy 0 <= min <= max <= %d", s, MaxNeighbors)
	}
	return Range{Min: lo, Max: hi}, nil
}
