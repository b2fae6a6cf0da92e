// ABOUTME: Simulated annealing acceptance policy
// ABOUTME: Metropolis criterion with a geometric cooling schedule ending at Tmin

package selector

import (
	"math"
	"math/rand/v2"
)

// metropolis accepts improving moves and worsening moves with probability exp(delta/T).
// T is multiplied by alpha every numIterations attempted moves; T < tMin ends the run.
// Attempts is kept for progress reporting only; it never stops the run. The run
// ends on the best sequence seen, not the last one accepted.
type metropolis struct {
	rng           *rand.Rand
	tMin          float64
	alpha         float64
	numIterations int64
	best          bestState
}

func (p *metropolis) candidates() int { return 1 }

func (p *metropolis) admissible(move, *Run) bool { return true }

func (p *metropolis) accept(m move, run *Run) bool {
	if m.delta >= 0 {
		return true
	}

	return p.rng.Float64() < math.Exp(float64(m.delta)/run.Temperature)
}

func (p *metropolis) update(m move, found, applied bool, run *Run) {
	switch {
	case run.Score > run.BestScore:
		run.Attempts = 0
		p.best.improved()
	case applied:
		run.Attempts++
		p.best.record(run, m)
	default:
		run.Attempts++
	}

	if run.Iterations%p.numIterations == 0 {
		run.Temperature *= p.alpha
	}
}

func (p *metropolis) done(run *Run) (StopReason, bool) {
	return StopMinTemperature, run.Temperature < p.tMin
}

func (p *metropolis) finish(run *Run) {
	p.best.restore(run)
}
