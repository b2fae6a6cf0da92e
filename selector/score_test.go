// ABOUTME: Tests for transition scoring and incremental score comparison
// ABOUTME: Validates symmetry, bounds, worked examples, and delta consistency with full recompute

package selector

import (
	"math/rand/v2"
	"slices"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slideshow-sorter/photo"
)

func tagSet(tags ...string) mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(tags...)
}

func TestTransitionScore(t *testing.T) {
	tests := []struct {
		name string
		a, b mapset.Set[string]
		want int
	}{
		{"shared middle", tagSet("a", "b", "c"), tagSet("b", "c", "d"), 1},
		{"identical", tagSet("a", "b"), tagSet("a", "b"), 0},
		{"disjoint", tagSet("a", "b"), tagSet("c", "d"), 0},
		{"subset", tagSet("a"), tagSet("a", "b", "c"), 0},
		{"balanced", tagSet("a", "b", "c", "d"), tagSet("c", "d", "e", "f"), 2},
		{"empty", tagSet(), tagSet("a"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransitionScore(tt.a, tt.b))
			assert.Equal(t, tt.want, TransitionScore(tt.b, tt.a))
		})
	}
}

func TestTransitionScoreSymmetryAndBounds(t *testing.T) {
	vertical, horizontal := randomCollection(11, 40, 40, 10, 8)
	photos := append(vertical, horizontal...)

	for _, a := range photos {
		for _, b := range photos {
			ab := TransitionScore(a.Tags, b.Tags)
			ba := TransitionScore(b.Tags, a.Tags)

			require.Equal(t, ab, ba)
			require.GreaterOrEqual(t, ab, 0)
			require.LessOrEqual(t, ab, min(a.Tags.Cardinality(), b.Tags.Cardinality()))
		}
	}
}

func TestEvaluateScoreIdenticalSlides(t *testing.T) {
	slides := []photo.Slide{
		photo.MustSlide(photo.NewPhoto(0, photo.Horizontal, "a", "b")),
		photo.MustSlide(photo.NewPhoto(1, photo.Horizontal, "a", "b")),
		photo.MustSlide(photo.NewPhoto(2, photo.Horizontal, "a", "b")),
	}

	assert.Equal(t, 0, EvaluateScore(slides))
	assert.Equal(t, 0, EvaluateScore(nil))
	assert.Equal(t, 0, EvaluateScore(slides[:1]))
}

func TestEvaluateScoreSums(t *testing.T) {
	slides := []photo.Slide{
		photo.MustSlide(photo.NewPhoto(0, photo.Horizontal, "a", "b", "c")),
		photo.MustSlide(photo.NewPhoto(1, photo.Horizontal, "b", "c", "d")),
		photo.MustSlide(photo.NewPhoto(2, photo.Horizontal, "c", "d", "e", "f")),
	}

	// {a,b,c}->{b,c,d} = 1, {b,c,d}->{c,d,e,f} = min(2,1,2) = 1
	assert.Equal(t, 2, EvaluateScore(slides))
}

// TestCompareScoresSwapConsistency checks every swap delta against a full recompute
func TestCompareScoresSwapConsistency(t *testing.T) {
	vertical, horizontal := randomCollection(3, 8, 6, 8, 5)
	s := New(vertical, horizontal)
	require.NoError(t, s.MakeSlides())

	slides := s.Slides()
	base := EvaluateScore(slides)

	for i := range slides {
		for j := range slides {
			if i == j {
				continue
			}

			before, after := compareScores(slides, i, j, slides[j], slides[i])

			swapped := slices.Clone(slides)
			swapped[i], swapped[j] = swapped[j], swapped[i]

			require.Equal(t, EvaluateScore(swapped)-base, after-before, "swap %d<->%d", i, j)
		}
	}
}

// TestCompareScoresRepairConsistency checks re-pair deltas against a full recompute
func TestCompareScoresRepairConsistency(t *testing.T) {
	vertical, horizontal := randomCollection(5, 12, 4, 8, 5)
	s := New(vertical, horizontal)
	require.NoError(t, s.MakeSlides())

	slides := s.Slides()
	base := EvaluateScore(slides)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := range slides {
		for j := range slides {
			if i == j || !slides[i].IsVertical() || !slides[j].IsVertical() {
				continue
			}

			for range 2 {
				s1, s2, err := genPairVerticalSlides(rng, slides[i], slides[j])
				require.NoError(t, err)

				before, after := compareScores(slides, i, j, s1, s2)

				changed := slices.Clone(slides)
				changed[i], changed[j] = s1, s2

				require.Equal(t, EvaluateScore(changed)-base, after-before, "re-pair %d,%d", i, j)
			}
		}
	}
}

func TestCompareScoresTwoSlides(t *testing.T) {
	slides := []photo.Slide{
		photo.MustSlide(photo.NewPhoto(0, photo.Horizontal, "a", "b", "c")),
		photo.MustSlide(photo.NewPhoto(1, photo.Horizontal, "b", "c", "d")),
	}

	before, after := compareScores(slides, 0, 1, slides[1], slides[0])
	assert.Equal(t, 1, before)
	assert.Equal(t, 1, after)
}

// BenchmarkTransitionScore measures the scoring hot path
func BenchmarkTransitionScore(b *testing.B) {
	a := tagSet("a", "b", "c", "d", "e", "f", "g", "h")
	c := tagSet("e", "f", "g", "h", "i", "j", "k", "l")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		TransitionScore(a, c)
	}
}
