// ABOUTME: Search-run context carried through every heuristic call
// ABOUTME: Holds the slide sequence, scores, counters, and stop reason of one run

package selector

import (
	"math/rand/v2"
	"time"

	"slideshow-sorter/config"
	"slideshow-sorter/photo"
)

// StopReason records which bound ended a run
type StopReason string

const (
	StopMaxAttempts    StopReason = "max-attempts"
	StopMaxIterations  StopReason = "max-iterations"
	StopMinTemperature StopReason = "t-min"
	StopMaxGenerations StopReason = "max-generations"
	StopCanceled       StopReason = "canceled"
)

// Run is the state of a single search. It is owned by the running heuristic
// until the search returns; Slides must not be shared while it runs.
type Run struct {
	ID        string
	Heuristic config.Heuristic
	Seed      uint64

	Slides       []photo.Slide
	InitialScore int // Score of the builder's sequence
	StartScore   int // Score when this run started
	Score        int // Score of Slides
	BestScore    int // Best score seen during the run

	StateChanges int64   // Accepted moves (or best-individual improvements for the GA)
	Attempts     int64   // Consecutive iterations without a new best score
	Iterations   int64   // Local search iterations
	Generations  int     // Genetic algorithm generations
	Temperature  float64 // Current annealing temperature

	Stop     StopReason
	Duration time.Duration
}

// Improvement returns the score gained during the run
func (r Run) Improvement() int {
	return r.Score - r.StartScore
}

// seedSalt decorrelates the two PCG state words derived from one seed
const seedSalt = 0x9e3779b97f4a7c15

// newRNG returns the run's random generator. Seed 0 derives a seed from the clock;
// the seed actually used is returned so the run can be replayed.
func newRNG(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		if seed == 0 {
			seed = 1
		}
	}

	return rand.New(rand.NewPCG(seed, seed^seedSalt)), seed
}
