// ABOUTME: Shared fixtures for selector tests
// ABOUTME: Builds deterministic random photo collections and small test configurations

package selector

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"slideshow-sorter/config"
	"slideshow-sorter/photo"
)

// randomCollection returns nVertical vertical and nHorizontal horizontal photos
// with tags drawn from a pool of tagPool tags. Ids follow input order:
// verticals first, then horizontals.
func randomCollection(seed uint64, nVertical, nHorizontal, tagPool, maxTags int) ([]photo.Photo, []photo.Photo) {
	rng := rand.New(rand.NewPCG(seed, seed+1))

	tags := func() []string {
		count := 1 + rng.IntN(maxTags)
		out := make([]string, count)
		for i := range out {
			out[i] = fmt.Sprintf("t%d", rng.IntN(tagPool))
		}

		return out
	}

	vertical := make([]photo.Photo, nVertical)
	for i := range vertical {
		vertical[i] = photo.NewPhoto(i, photo.Vertical, tags()...)
	}

	horizontal := make([]photo.Photo, nHorizontal)
	for i := range horizontal {
		horizontal[i] = photo.NewPhoto(nVertical+i, photo.Horizontal, tags()...)
	}

	return vertical, horizontal
}

// smallConfig returns a configuration that keeps every heuristic short
func smallConfig(h config.Heuristic) config.SearchConfig {
	cfg := config.DefaultConfig()
	cfg.Heuristic = h
	cfg.Seed = 7
	cfg.MaxAttempts = 200
	cfg.MaxIterations = 20000
	cfg.Temperature = 2
	cfg.TMin = 0.01
	cfg.Alpha = 0.8
	cfg.NumIterations = 50
	cfg.TabuListSize = 10
	cfg.TabuCandidates = 5
	cfg.PopulationSize = 8
	cfg.MaxGenerations = 20
	cfg.ProgressInterval = 10

	return cfg
}

// newBuiltSelector creates a selector over a random collection and builds its slides
func newBuiltSelector(t *testing.T, seed uint64, cfg config.SearchConfig) *Selector {
	t.Helper()

	vertical, horizontal := randomCollection(seed, 20, 15, 12, 6)

	s := New(vertical, horizontal)
	require.NoError(t, s.Configure(cfg))
	require.NoError(t, s.MakeSlides())

	return s
}

// requireCoverage asserts every photo id in [0, total) appears in exactly one slide
func requireCoverage(t *testing.T, slides []photo.Slide, total int) {
	t.Helper()

	seen := make(map[int]int, total)
	for _, slide := range slides {
		for _, id := range slide.IDs() {
			seen[id]++
		}
	}

	require.Len(t, seen, total)

	for id, count := range seen {
		require.Equal(t, 1, count, "photo %d used %d times", id, count)
	}
}
