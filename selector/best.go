// ABOUTME: Best-state bookkeeping for local searches that may accept worsening moves
// ABOUTME: Keeps an undo log since the last best, compacted into a snapshot when it grows past the sequence length

package selector

import "slideshow-sorter/photo"

// bestState remembers how to get back to the best sequence seen during a run.
// Moves applied since the best are logged so they can be undone. Once the log
// holds more moves than there are slides, the best sequence is materialized
// into a snapshot and the log restarts, so memory stays O(n).
type bestState struct {
	log      []move
	snapshot []photo.Slide // Best sequence, valid when hasSnap
	hasSnap  bool
	score    int // Score of the snapshot
}

// improved forgets the log: the current sequence is the new best
func (b *bestState) improved() {
	b.log = b.log[:0]
	b.hasSnap = false
}

// record logs an applied move that did not produce a new best
func (b *bestState) record(run *Run, m move) {
	b.log = append(b.log, m)

	if len(b.log) <= len(run.Slides) {
		return
	}

	if !b.hasSnap {
		b.snapshot = append(b.snapshot[:0], run.Slides...)
		b.score = run.Score

		for k := len(b.log) - 1; k >= 0; k-- {
			undoMove(b.snapshot, b.log[k])
			b.score -= b.log[k].delta
		}

		b.hasSnap = true
	}

	b.log = b.log[:0]
}

// restore rolls run back to the best sequence seen
func (b *bestState) restore(run *Run) {
	if b.hasSnap {
		copy(run.Slides, b.snapshot)
		run.Score = b.score
	} else {
		for k := len(b.log) - 1; k >= 0; k-- {
			undoMove(run.Slides, b.log[k])
			run.Score -= b.log[k].delta
		}
	}

	b.improved()
}
