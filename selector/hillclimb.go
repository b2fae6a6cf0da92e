// ABOUTME: Hill climbing acceptance policy
// ABOUTME: Accepts non-worsening moves and stops after too many non-improving attempts

package selector

// greedy accepts any move that does not lower the score
type greedy struct {
	maxAttempts int64
}

func (g *greedy) candidates() int { return 1 }

func (g *greedy) admissible(move, *Run) bool { return true }

func (g *greedy) accept(m move, _ *Run) bool {
	return m.delta >= 0
}

func (g *greedy) update(m move, found, applied bool, run *Run) {
	if applied && m.delta > 0 {
		run.Attempts = 0

		return
	}

	run.Attempts++
}

func (g *greedy) done(run *Run) (StopReason, bool) {
	return StopMaxAttempts, run.Attempts >= g.maxAttempts
}

func (g *greedy) finish(*Run) {}
