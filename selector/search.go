// ABOUTME: Shared local search driver for hill climbing, annealing, and tabu search
// ABOUTME: Repeats propose -> score delta -> accept/reject under a pluggable acceptance policy

package selector

import (
	"context"
	"math/rand/v2"
)

// acceptancePolicy is the part of a local search that differs between heuristics
type acceptancePolicy interface {
	// candidates is the number of moves sampled per iteration
	candidates() int
	// admissible reports whether m may be chosen this iteration
	admissible(m move, run *Run) bool
	// accept decides whether the chosen move is applied
	accept(m move, run *Run) bool
	// update runs after every iteration; found is false when no admissible move was sampled
	update(m move, found, applied bool, run *Run)
	// done reports whether the search must stop
	done(run *Run) (StopReason, bool)
	// finish runs once after the loop, including on cancellation
	finish(run *Run)
}

// ctxCheckMask sets how often the loop polls the context (every 256 iterations)
const ctxCheckMask = 0xff

// localSearch drives run with the given policy until the policy, the
// iteration cap, or ctx stops it
func (s *Selector) localSearch(ctx context.Context, run *Run, rng *rand.Rand, policy acceptancePolicy) error {
	progress := newProgressTracker(s.onProgress, s.cfg.ProgressInterval)
	maxIterations := int64(s.cfg.MaxIterations)

	defer policy.finish(run)

	for {
		if reason, stop := policy.done(run); stop {
			run.Stop = reason

			return nil
		}

		if run.Iterations >= maxIterations {
			run.Stop = StopMaxIterations

			return nil
		}

		if run.Iterations&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				run.Stop = StopCanceled

				return err
			}
		}

		run.Iterations++

		var (
			chosen move
			found  bool
		)

		for range policy.candidates() {
			m, err := proposeMove(rng, run.Slides, s.cfg.RepairRate)
			if err != nil {
				return err
			}

			if !policy.admissible(m, run) {
				continue
			}

			if !found || m.delta > chosen.delta {
				chosen, found = m, true
			}
		}

		applied := found && policy.accept(chosen, run)
		if applied {
			applyMove(run.Slides, chosen)
			run.Score += chosen.delta
			run.StateChanges++
		}

		policy.update(chosen, found, applied, run)

		improved := run.Score > run.BestScore
		if improved {
			run.BestScore = run.Score
		}

		if run.Iterations%int64(s.cfg.ProgressInterval) == 0 {
			s.logger.Debug("search progress", "run", run.ID, "iteration", run.Iterations, "score", run.Score, "best", run.BestScore, "attempts", run.Attempts)
		}

		progress.sendUpdate(run, run.Iterations, improved)
	}
}
