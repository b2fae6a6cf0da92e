// ABOUTME: Genetic algorithm over permutations of the built slide set
// ABOUTME: Includes roulette selection, order crossover, swap mutation, and elitism

package selector

import (
	"context"
	"math/rand/v2"
	"slices"

	"slideshow-sorter/photo"
	"slideshow-sorter/pool"
)

// Individual is a candidate slide ordering: a permutation of indices into the
// slide set, with its cached fitness (higher is better)
type Individual struct {
	Chromosome []int
	Fitness    int
}

// createChromosome returns a random permutation of [0, n)
func createChromosome(rng *rand.Rand, n int) []int {
	return rng.Perm(n)
}

// calculateFitness scores the slide order implied by chromosome
func calculateFitness(slides []photo.Slide, chromosome []int) int {
	fitness := 0
	for k := 1; k < len(chromosome); k++ {
		fitness += TransitionScore(slides[chromosome[k-1]].Tags(), slides[chromosome[k]].Tags())
	}

	return fitness
}

// parentRoulette picks a parent index with probability proportional to its
// fitness, walking the cumulative normalized fitness. Falls back to a uniform
// pick when the population has no fitness at all.
func parentRoulette(rng *rand.Rand, population []Individual) int {
	total := 0
	for _, ind := range population {
		total += ind.Fitness
	}

	if total <= 0 {
		return rng.IntN(len(population))
	}

	r := rng.Float64()
	cumulative := 0.0

	for i, ind := range population {
		cumulative += float64(ind.Fitness) / float64(total)
		if r < cumulative {
			return i
		}
	}

	// Rounding can leave r just above the final cumulative value
	for i := len(population) - 1; i >= 0; i-- {
		if population[i].Fitness > 0 {
			return i
		}
	}

	return len(population) - 1
}

// orderCrossover (OX) creates offspring by preserving order from parents
// Algorithm:
//  1. Select random substring from parent1 and copy to offspring
//  2. Fill remaining positions with genes from parent2 in order, skipping those already present
//
// The present slice is a reusable buffer of len(parent1); it is cleared on entry.
func orderCrossover(rng *rand.Rand, dst, parent1, parent2 []int, present []bool) {
	numGenes := len(parent1)

	clear(present)

	cut1 := rng.IntN(numGenes)
	cut2 := rng.IntN(numGenes)
	if cut1 > cut2 {
		cut1, cut2 = cut2, cut1
	}

	for i := cut1; i <= cut2; i++ {
		dst[i] = parent1[i]
		present[parent1[i]] = true
	}

	dstIdx := (cut2 + 1) % numGenes
	for i := range numGenes {
		gene := parent2[(cut2+1+i)%numGenes]
		if !present[gene] {
			dst[dstIdx] = gene
			dstIdx = (dstIdx + 1) % numGenes
		}
	}
}

// mutate swaps two random positions with probability rate
func mutate(rng *rand.Rand, chromosome []int, rate float64) {
	if len(chromosome) < 2 || rng.Float64() >= rate {
		return
	}

	a, b, _ := getRandomIndexes(rng, len(chromosome))
	chromosome[a], chromosome[b] = chromosome[b], chromosome[a]
}

// fittest returns the index of the individual with the highest fitness (first on ties)
func fittest(population []Individual) int {
	best := 0
	for i := 1; i < len(population); i++ {
		if population[i].Fitness > population[best].Fitness {
			best = i
		}
	}

	return best
}

// geneticAlgorithm evolves orderings of run.Slides for MaxGenerations generations
//
// The algorithm works as follows:
//  1. Seed the population with the current order plus random permutations
//  2. For each generation:
//     a. Carry the fittest individual over unchanged (elitism)
//     b. Fill the rest with roulette-selected parents combined by order crossover
//     c. Mutate offspring by swapping two positions with probability MutationRate
//     d. Evaluate offspring fitness (fanned out over the worker pool)
//     e. Track the best individual across all generations
//  3. Replace run.Slides with the order of the best individual
func (s *Selector) geneticAlgorithm(ctx context.Context, run *Run, rng *rand.Rand) error {
	base := slices.Clone(run.Slides)
	n := len(base)
	size := s.cfg.PopulationSize

	workers := pool.NewWorkerPool(s.cfg.Workers, size)
	defer workers.Close()

	s.logger.Debug("genetic algorithm started", "run", run.ID, "population", size, "workers", workers.Workers())

	evaluate := func(population []Individual) {
		workers.ForEach(len(population), func(i int) {
			population[i].Fitness = calculateFitness(base, population[i].Chromosome)
		})
	}

	// Two generation buffers so parents are never overwritten during crossover
	current := make([]Individual, size)
	next := make([]Individual, size)

	current[0].Chromosome = make([]int, n)
	for i := range n {
		current[0].Chromosome[i] = i
	}

	for i := 1; i < size; i++ {
		current[i].Chromosome = createChromosome(rng, n)
	}

	for i := range next {
		next[i].Chromosome = make([]int, n)
	}

	evaluate(current)

	bestIdx := fittest(current)
	best := Individual{Chromosome: slices.Clone(current[bestIdx].Chromosome), Fitness: current[bestIdx].Fitness}
	run.BestScore = best.Fitness

	progress := newProgressTracker(s.onProgress, max(s.cfg.ProgressInterval/size, 1))
	present := make([]bool, n)

	defer func() {
		for k, idx := range best.Chromosome {
			run.Slides[k] = base[idx]
		}

		run.Score = best.Fitness
	}()

	for gen := 0; gen < s.cfg.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			run.Stop = StopCanceled

			return err
		}

		elite := fittest(current)
		copy(next[0].Chromosome, current[elite].Chromosome)
		next[0].Fitness = current[elite].Fitness

		for i := 1; i < size; i++ {
			p1 := parentRoulette(rng, current)
			p2 := parentRoulette(rng, current)
			orderCrossover(rng, next[i].Chromosome, current[p1].Chromosome, current[p2].Chromosome, present)
			mutate(rng, next[i].Chromosome, s.cfg.MutationRate)
		}

		evaluate(next[1:])

		current, next = next, current
		run.Generations = gen + 1
		run.Iterations += int64(size - 1)

		improved := false
		idx := fittest(current)
		if current[idx].Fitness > best.Fitness {
			copy(best.Chromosome, current[idx].Chromosome)
			best.Fitness = current[idx].Fitness
			run.BestScore = best.Fitness
			run.StateChanges++
			improved = true
		}

		// Score of the fittest living individual
		run.Score = current[idx].Fitness

		s.logger.Debug("generation complete", "run", run.ID, "generation", run.Generations, "best", best.Fitness)
		progress.sendUpdate(run, int64(run.Generations), improved)
	}

	run.Stop = StopMaxGenerations

	return nil
}
