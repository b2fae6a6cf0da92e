// ABOUTME: Neighbor generation for the local search heuristics
// ABOUTME: Proposes slide swaps and vertical re-pairings with their incremental score delta

package selector

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"slideshow-sorter/photo"
)

// moveKind discriminates tabu entries
type moveKind byte

const (
	moveSwap   moveKind = 's'
	moveRepair moveKind = 'p'
)

// move is a proposed change to the slide sequence: place slideI at i and
// slideJ at j. prevI and prevJ hold the slides being replaced so the move can be undone.
type move struct {
	kind   moveKind
	i, j   int
	slideI photo.Slide
	slideJ photo.Slide
	prevI  photo.Slide
	prevJ  photo.Slide
	delta  int
}

// key returns the move's tabu entry
func (m move) key() string {
	return tabuEntry(m.i, m.j, m.kind)
}

// tabuEntry encodes a move as "low-high-kind"
func tabuEntry(i, j int, kind moveKind) string {
	if i > j {
		i, j = j, i
	}

	return strconv.Itoa(i) + "-" + strconv.Itoa(j) + "-" + string(kind)
}

// getRandomIndexes draws two distinct positions uniformly from [0, n)
func getRandomIndexes(rng *rand.Rand, n int) (int, int, error) {
	if n < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 slides to pick a pair, have %d", ErrTooFewSlides, n)
	}

	i := rng.IntN(n)

	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}

	return i, j, nil
}

// genPairVerticalSlides recombines the four photos of two vertical slides
// {p,q} and {r,s} into either {p,r},{q,s} or {p,s},{q,r}
func genPairVerticalSlides(rng *rand.Rand, first, second photo.Slide) (photo.Slide, photo.Slide, error) {
	if !first.IsVertical() || !second.IsVertical() {
		return photo.Slide{}, photo.Slide{}, fmt.Errorf("%w: re-pairing needs two vertical slides", photo.ErrInvalidSlide)
	}

	a, b := first.Photos(), second.Photos()
	if rng.IntN(2) == 1 {
		b = []photo.Photo{b[1], b[0]}
	}

	s1, err := photo.NewSlide(a[0], b[0])
	if err != nil {
		return photo.Slide{}, photo.Slide{}, err
	}

	s2, err := photo.NewSlide(a[1], b[1])
	if err != nil {
		return photo.Slide{}, photo.Slide{}, err
	}

	return s1, s2, nil
}

// proposeMove draws a random neighbor of slides without modifying it.
// With probability repairRate, and when both drawn slides are vertical pairs,
// the move re-pairs their photos; otherwise it swaps the two slides.
func proposeMove(rng *rand.Rand, slides []photo.Slide, repairRate float64) (move, error) {
	i, j, err := getRandomIndexes(rng, len(slides))
	if err != nil {
		return move{}, err
	}

	m := move{
		kind:   moveSwap,
		i:      i,
		j:      j,
		slideI: slides[j],
		slideJ: slides[i],
		prevI:  slides[i],
		prevJ:  slides[j],
	}

	if repairRate > 0 && slides[i].IsVertical() && slides[j].IsVertical() && rng.Float64() < repairRate {
		s1, s2, err := genPairVerticalSlides(rng, slides[i], slides[j])
		if err != nil {
			return move{}, err
		}

		m.kind = moveRepair
		m.slideI, m.slideJ = s1, s2
	}

	before, after := compareScores(slides, i, j, m.slideI, m.slideJ)
	m.delta = after - before

	return m, nil
}

// applyMove writes an accepted move into the sequence
func applyMove(slides []photo.Slide, m move) {
	slides[m.i] = m.slideI
	slides[m.j] = m.slideJ
}

// undoMove restores the slides a move replaced
func undoMove(slides []photo.Slide, m move) {
	slides[m.i] = m.prevI
	slides[m.j] = m.prevJ
}
