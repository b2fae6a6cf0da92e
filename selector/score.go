// ABOUTME: Transition scoring between adjacent slides
// ABOUTME: Provides full-sequence evaluation and the incremental edge comparison used by every heuristic

package selector

import (
	mapset "github.com/deckarep/golang-set/v2"

	"slideshow-sorter/photo"
)

// commonTags counts tags present in both sets without allocating
func commonTags(a, b mapset.Set[string]) int {
	if a.Cardinality() > b.Cardinality() {
		a, b = b, a
	}

	common := 0
	a.Each(func(tag string) bool {
		if b.ContainsOne(tag) {
			common++
		}

		return false
	})

	return common
}

// TransitionScore returns min(|A∩B|, |A\B|, |B\A|), the interest of showing
// a slide tagged a next to a slide tagged b. Symmetric in its arguments.
func TransitionScore(a, b mapset.Set[string]) int {
	common := commonTags(a, b)

	return min(common, a.Cardinality()-common, b.Cardinality()-common)
}

// EvaluateScore sums transition scores over every adjacent pair.
// O(n); keep it out of search loops.
func EvaluateScore(slides []photo.Slide) int {
	score := 0
	for k := 1; k < len(slides); k++ {
		score += TransitionScore(slides[k-1].Tags(), slides[k].Tags())
	}

	return score
}

// compareScores returns the score of the edges touching positions i and j
// before and after slideI is placed at i and slideJ at j. Swapping is
// compareScores(slides, i, j, slides[j], slides[i]). Requires i != j.
func compareScores(slides []photo.Slide, i, j int, slideI, slideJ photo.Slide) (before, after int) {
	if i > j {
		i, j = j, i
		slideI, slideJ = slideJ, slideI
	}

	at := func(k int) photo.Slide {
		switch k {
		case i:
			return slideI
		case j:
			return slideJ
		default:
			return slides[k]
		}
	}

	last := len(slides) - 1

	// Left endpoints of the affected edges; when j == i+1 the edge i→j is listed twice
	edges := [4]int{i - 1, i, j - 1, j}
	for e, k := range edges {
		if k < 0 || k >= last {
			continue
		}

		if e == 2 && k == edges[1] {
			continue
		}

		before += TransitionScore(slides[k].Tags(), slides[k+1].Tags())
		after += TransitionScore(at(k).Tags(), at(k+1).Tags())
	}

	return before, after
}
