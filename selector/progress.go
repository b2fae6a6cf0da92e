// ABOUTME: Progress tracking and update delivery for running searches
// ABOUTME: Handles iteration speed calculation and decides when updates are sent

package selector

import (
	"time"

	"slideshow-sorter/config"
)

// Update describes the state of a running search
type Update struct {
	RunID        string
	Heuristic    config.Heuristic
	Iteration    int64 // Iterations, or generations for the genetic algorithm
	Score        int
	BestScore    int
	StateChanges int64
	Temperature  float64
	PerSecond    float64 // Iterations (or generations) per second since the previous update
	Elapsed      time.Duration
}

// progressTracker tracks progress update state
type progressTracker struct {
	onProgress func(Update)
	interval   int64
	start      time.Time
	lastTime   time.Time
	lastCount  int64
}

func newProgressTracker(onProgress func(Update), interval int) *progressTracker {
	now := time.Now()

	return &progressTracker{
		onProgress: onProgress,
		interval:   int64(max(interval, 1)),
		start:      now,
		lastTime:   now,
	}
}

// sendUpdate reports run progress on improvement or every interval steps
func (pt *progressTracker) sendUpdate(run *Run, count int64, improved bool) {
	// Guard: skip if not time to update or nobody listening
	if pt.onProgress == nil || (!improved && count%pt.interval != 0) {
		return
	}

	now := time.Now()
	elapsed := now.Sub(pt.lastTime).Seconds()
	perSec := 0.0
	if elapsed > 0 {
		perSec = float64(count-pt.lastCount) / elapsed
	}

	pt.onProgress(Update{
		RunID:        run.ID,
		Heuristic:    run.Heuristic,
		Iteration:    count,
		Score:        run.Score,
		BestScore:    run.BestScore,
		StateChanges: run.StateChanges,
		Temperature:  run.Temperature,
		PerSecond:    perSec,
		Elapsed:      now.Sub(pt.start),
	})

	pt.lastTime = now
	pt.lastCount = count
}
