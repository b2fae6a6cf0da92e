// ABOUTME: Tabu search acceptance policy and its bounded FIFO of forbidden moves
// ABOUTME: Applies the best admissible sampled move and restores the best sequence at the end

package selector

// tabuList is a fixed-capacity FIFO of tabu entries. Pushing onto a full list
// evicts the oldest entry.
type tabuList struct {
	entries []string
	head    int // Index of the oldest entry
	size    int
	members map[string]int // Entry -> occurrences in the ring
}

func newTabuList(capacity int) *tabuList {
	return &tabuList{
		entries: make([]string, capacity),
		members: make(map[string]int, capacity),
	}
}

// push appends entry, evicting the oldest entry when the list is full
func (t *tabuList) push(entry string) {
	if len(t.entries) == 0 {
		return
	}

	if t.size == len(t.entries) {
		oldest := t.entries[t.head]
		if t.members[oldest] <= 1 {
			delete(t.members, oldest)
		} else {
			t.members[oldest]--
		}

		t.entries[t.head] = entry
		t.head = (t.head + 1) % len(t.entries)
	} else {
		t.entries[(t.head+t.size)%len(t.entries)] = entry
		t.size++
	}

	t.members[entry]++
}

// isTabu reports whether entry is currently forbidden
func (t *tabuList) isTabu(entry string) bool {
	return t.members[entry] > 0
}

// len returns the number of entries held
func (t *tabuList) len() int {
	return t.size
}

// tabuFiltered samples several moves per iteration and applies the best one
// that is not tabu, even when it lowers the score. A tabu move is admissible
// when it would beat the best score seen (aspiration). The moves applied since
// the last best are kept so the best sequence can be restored when the run ends.
type tabuFiltered struct {
	tabu        *tabuList
	sampled     int
	maxAttempts int64
	best        bestState
}

func (p *tabuFiltered) candidates() int { return p.sampled }

func (p *tabuFiltered) admissible(m move, run *Run) bool {
	if !p.tabu.isTabu(m.key()) {
		return true
	}

	return run.Score+m.delta > run.BestScore
}

func (p *tabuFiltered) accept(move, *Run) bool { return true }

func (p *tabuFiltered) update(m move, found, applied bool, run *Run) {
	if applied {
		p.tabu.push(m.key())
	}

	if run.Score > run.BestScore {
		run.Attempts = 0
		p.best.improved()

		return
	}

	run.Attempts++

	if applied {
		p.best.record(run, m)
	}
}

func (p *tabuFiltered) done(run *Run) (StopReason, bool) {
	return StopMaxAttempts, run.Attempts >= p.maxAttempts
}

// finish rolls the sequence back to the best state seen
func (p *tabuFiltered) finish(run *Run) {
	p.best.restore(run)
}
