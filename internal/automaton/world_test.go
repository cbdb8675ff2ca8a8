package automaton

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxel-ca/pkg/core"
)

type recordingObserver struct {
	stats []AdvanceStats
}

func (r *recordingObserver) ObserveAdvance(s AdvanceStats) { r.stats = append(r.stats, s) }

func mustWorld(t *testing.T, opts Options, src RandomSource) (*World, []Change) {
	t.Helper()
	w, initial, err := NewWorld(opts, src)
	require.NoError(t, err)
	return w, initial
}

func TestNewWorldReportsInitialState(t *testing.T) {
	opts := Options{Size: Size{10, 10, 10}, Origin: Vec3{5, 0, 0}, DeathProbability: 0.3}
	w, initial := mustWorld(t, opts, core.NewRNG(42).Source())

	require.Len(t, initial, 1000)
	alive := 0
	for _, c := range initial {
		got, err := w.Alive(c.Pos)
		require.NoError(t, err)
		assert.Equal(t, c.Alive, got)
		if c.Alive {
			alive++
		}
	}
	assert.Equal(t, w.AliveCount(), alive)
	assert.Equal(t, Vec3{5, 0, 0}, initial[0].Pos)
	assert.Equal(t, DefaultRule, w.Rule())
	assert.Zero(t, w.Generation())
	assert.False(t, w.Stable())
}

func TestNewWorldErrors(t *testing.T) {
	_, _, err := NewWorld(Options{Size: Size{0, 2, 2}}, constSource(0))
	var sizeErr *InvalidSizeError
	assert.True(t, errors.As(err, &sizeErr))

	w, initial, err := NewWorld(Options{Size: Size{2, 2, 2}, DeathProbability: 2}, constSource(0))
	var probErr *InvalidProbabilityError
	assert.True(t, errors.As(err, &probErr))
	assert.Nil(t, w)
	assert.Nil(t, initial)
}

func TestAdvanceTwoByTwoReportsEveryCell(t *testing.T) {
	w, initial := mustWorld(t, Options{Size: Size{2, 2, 2}}, constSource(0))
	for _, c := range initial {
		require.True(t, c.Alive)
	}

	var want []Change
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				want = append(want, Change{Pos: Vec3{x, y, z}, Alive: false})
			}
		}
	}
	if diff := cmp.Diff(want, w.Advance()); diff != "" {
		t.Fatalf("advance mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, w.Generation())
	assert.Zero(t, w.Period(), "all-dead state is new")

	assert.Empty(t, w.Advance())
	assert.True(t, w.Stable())
	assert.Equal(t, 1, w.Period())
}

func TestAdvanceEmptyAtFixedPoint(t *testing.T) {
	w, _ := mustWorld(t, Options{Size: Size{4, 3, 5}, DeathProbability: 1}, constSource(0.5))
	assert.Empty(t, w.Advance())
	assert.Empty(t, w.Advance())
	assert.True(t, w.Stable())
}

func TestAdvanceReportsOnlyFlips(t *testing.T) {
	opts := Options{Size: Size{6, 6, 6}, Origin: Vec3{-3, 0, 2}, DeathProbability: 0.1}
	w, before := mustWorld(t, opts, core.NewRNG(3).Source())

	for gen := 0; gen < 5; gen++ {
		changes := w.Advance()
		after := w.State()

		seen := make(map[Vec3]bool, len(changes))
		for _, c := range changes {
			require.False(t, seen[c.Pos], "duplicate change at %v", c.Pos)
			seen[c.Pos] = true
		}
		flipped := 0
		for i := range after {
			if before[i].Alive == after[i].Alive {
				require.False(t, seen[after[i].Pos], "unchanged cell %v reported", after[i].Pos)
				continue
			}
			flipped++
			require.True(t, seen[after[i].Pos], "flip at %v missing", after[i].Pos)
		}
		require.Equal(t, flipped, len(changes))

		for _, c := range changes {
			got, err := w.grid.Alive(c.Pos)
			require.NoError(t, err)
			require.Equal(t, got, c.Alive)
		}
		before = after
	}
}

func TestAdvanceMatchesAcrossStrategies(t *testing.T) {
	base := Options{Size: Size{5, 6, 4}, DeathProbability: 0.2}
	local, _ := mustWorld(t, base, core.NewRNG(9).Source())

	scanOpts := base
	scanOpts.Strategy = StrategyScan
	scanOpts.Workers = 3
	scan, _ := mustWorld(t, scanOpts, core.NewRNG(9).Source())

	for gen := 0; gen < 3; gen++ {
		if diff := cmp.Diff(local.Advance(), scan.Advance()); diff != "" {
			t.Fatalf("generation %d (-local +scan):\n%s", gen+1, diff)
		}
	}
}

func TestWorldAliveOutOfRange(t *testing.T) {
	w, _ := mustWorld(t, Options{Size: Size{2, 2, 2}, Origin: Vec3{5, 0, 0}}, constSource(0))
	_, err := w.Alive(Vec3{0, 0, 0})
	var rangeErr *OutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, Vec3{5, 0, 0}, rangeErr.Origin)
	assert.Equal(t, Size{2, 2, 2}, rangeErr.Size)
}

func TestWorldCustomRule(t *testing.T) {
	// 7-7/0/2/M keeps a full 2x2x2 block alive forever.
	r, err := ParseRule("7/0/2/M")
	require.NoError(t, err)
	w, _ := mustWorld(t, Options{Size: Size{2, 2, 2}, Rule: r}, constSource(0))
	assert.Empty(t, w.Advance())
	assert.Equal(t, 8, w.AliveCount())
	assert.Equal(t, r, w.Rule())
}

func TestObserverReceivesStats(t *testing.T) {
	obs := &recordingObserver{}
	w, _ := mustWorld(t, Options{Size: Size{2, 2, 2}, Observer: obs}, constSource(0))
	w.Advance()
	w.Advance()

	require.Len(t, obs.stats, 2)
	assert.Equal(t, 1, obs.stats[0].Generation)
	assert.Equal(t, 8, obs.stats[0].Changed)
	assert.Zero(t, obs.stats[0].Alive)
	assert.Equal(t, 2, obs.stats[1].Generation)
	assert.Zero(t, obs.stats[1].Changed)
}

func TestPeriodForgetsBeyondHistory(t *testing.T) {
	w, _ := mustWorld(t, Options{Size: Size{2, 2, 2}, History: 1}, constSource(0))
	w.Advance()
	w.Advance()
	assert.Equal(t, 1, w.Period())
	assert.LessOrEqual(t, len(w.seen), 2)
	assert.Len(t, w.ring, 1)
}

func TestSetObserverKeepsRunningWorld(t *testing.T) {
	w, _ := mustWorld(t, Options{Size: Size{2, 2, 2}}, constSource(0))
	w.Advance()

	obs := &recordingObserver{}
	w.SetObserver(obs)
	assert.Equal(t, 1, w.Generation())
	assert.Zero(t, w.AliveCount())

	w.Advance()
	require.Len(t, obs.stats, 1)
	assert.Equal(t, 2, obs.stats[0].Generation)

	w.SetObserver(nil)
	w.Advance()
	assert.Len(t, obs.stats, 1)
}

func TestWorldSetKeepsReportedStateInSync(t *testing.T) {
	w, _ := mustWorld(t, Options{Size: Size{3, 3, 3}, Origin: Vec3{5, 0, 0}, DeathProbability: 1}, constSource(0))
	w.Advance()
	require.True(t, w.Stable())

	p := Vec3{6, 1, 1}
	c, ok, err := w.Set(p, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Change{Pos: p, Alive: true}, c)
	assert.False(t, w.Stable(), "an edit is a change")
	assert.Equal(t, 1, w.AliveCount())

	alive, err := w.Alive(p)
	require.NoError(t, err)
	assert.True(t, alive)

	_, ok, err = w.Set(p, true)
	require.NoError(t, err)
	assert.False(t, ok, "setting the same state reports nothing")

	// The lone cell dies next generation and is reported exactly once.
	if diff := cmp.Diff([]Change{{Pos: p, Alive: false}}, w.Advance()); diff != "" {
		t.Fatalf("advance after edit (-want +got):\n%s", diff)
	}
	assert.Zero(t, w.Period(), "edited state history must not close a cycle")
	assert.Empty(t, w.Advance())
	assert.Equal(t, 1, w.Period())

	_, _, err = w.Set(Vec3{}, true)
	var rangeErr *OutOfRangeError
	assert.True(t, errors.As(err, &rangeErr))
}
