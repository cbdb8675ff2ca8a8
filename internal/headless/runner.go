// Package headless advances a simulation without a window, logging a summary
// per generation.
package headless

import (
	"context"
	"log"

	"voxel-ca/internal/automaton"
)

// Sim is the part of the moore3d simulation the runner drives.
type Sim interface {
	Step()
	World() *automaton.World
	LastChanges() []automaton.Change
}

// Runner advances a Sim for up to Steps generations.
type Runner struct {
	Steps int
	// StopOnRepeat ends the run once the world is stable or revisits an
	// earlier generation.
	StopOnRepeat bool
	// Verbose logs every reported change.
	Verbose bool
	Logger  *log.Logger
}

// StopReason explains why Run returned.
type StopReason string

const (
	StopSteps    StopReason = "steps"
	StopStable   StopReason = "stable"
	StopCycle    StopReason = "cycle"
	StopCanceled StopReason = "canceled"
)

// Summary describes a finished run.
type Summary struct {
	Generations  int
	TotalChanged int
	Alive        int
	Period       int
	Reason       StopReason
}

// Run advances sim until Steps generations ran, ctx is done, or (with
// StopOnRepeat) the world stops changing or cycles. Cancellation is checked
// between generations.
func (r Runner) Run(ctx context.Context, sim Sim) (Summary, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	w := sim.World()
	sum := Summary{Reason: StopSteps}
	for i := 0; i < r.Steps; i++ {
		if err := ctx.Err(); err != nil {
			sum.Reason = StopCanceled
			r.finish(&sum, w)
			return sum, err
		}
		sim.Step()
		changes := sim.LastChanges()
		sum.Generations++
		sum.TotalChanged += len(changes)

		logger.Printf("generation %d: %d changed, %d alive", w.Generation(), len(changes), w.AliveCount())
		if r.Verbose {
			for _, c := range changes {
				logger.Printf("  %v alive=%t", c.Pos, c.Alive)
			}
		}
		if !r.StopOnRepeat {
			continue
		}
		if w.Stable() {
			sum.Reason = StopStable
			break
		}
		if w.Period() > 1 {
			sum.Reason = StopCycle
			break
		}
	}
	r.finish(&sum, w)
	return sum, nil
}

func (r Runner) finish(sum *Summary, w *automaton.World) {
	sum.Alive = w.AliveCount()
	sum.Period = w.Period()
}
