// ABOUTME: Tests for best-state bookkeeping
// ABOUTME: Walks random move sequences and checks restore returns the best sequence and score

package selector

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slideshow-sorter/config"
)

func TestBestStateRestore(t *testing.T) {
	tests := []struct {
		name        string
		steps       int
		worsenOnly  bool
		wantCompact bool
	}{
		{"short log", 5, true, false},
		{"compacted log", 300, true, true},
		{"random walk", 300, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newBuiltSelector(t, 4, smallConfig(config.SimulatedAnnealing))
			rng := rand.New(rand.NewPCG(11, 12))

			run := &Run{Slides: s.Slides(), Score: s.CurrentScore(), BestScore: s.CurrentScore()}
			want := slideIDs(run.Slides)

			var best bestState
			compacted := false

			for applied := 0; applied < tt.steps; {
				m, err := proposeMove(rng, run.Slides, 0.5)
				require.NoError(t, err)

				if tt.worsenOnly && m.delta > 0 {
					continue
				}

				applyMove(run.Slides, m)
				run.Score += m.delta
				applied++

				if run.Score > run.BestScore {
					best.improved()
					run.BestScore = run.Score
					want = slideIDs(run.Slides)
				} else {
					best.record(run, m)
				}

				compacted = compacted || best.hasSnap
			}

			if tt.wantCompact {
				require.True(t, compacted, "log never outgrew the sequence")
			}

			best.restore(run)

			assert.Equal(t, run.BestScore, run.Score)
			assert.Equal(t, EvaluateScore(run.Slides), run.Score)
			assert.Equal(t, want, slideIDs(run.Slides))
			requireCoverage(t, run.Slides, 35)
		})
	}
}
