// ABOUTME: Slideshow optimization engine: configuration, slide state, and heuristic dispatch
// ABOUTME: Exposes setters, getters, and the four search entry points over one slide sequence

// Package selector arranges photos into a slideshow that maximizes the sum of
// transition scores between adjacent slides. It builds an initial slide
// sequence and improves it with one of four heuristics: hill climbing,
// simulated annealing, tabu search, or a genetic algorithm.
//
// All heuristics share the same slide-sequence representation and the same
// incremental scoring: a move only rescores the edges around the positions it
// touches. Every run draws randomness from a single seeded generator, so a
// fixed seed reproduces the same result.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"slideshow-sorter/config"
	"slideshow-sorter/photo"
)

var (
	// ErrInvalidArgument is returned by setters and Configure for out-of-range values
	ErrInvalidArgument = config.ErrInvalidConfig
	// ErrNoPhotos is returned by MakeSlides when both collections are empty
	ErrNoPhotos = errors.New("no photos to build slides from")
	// ErrUnpairedVertical is returned by MakeSlides when a vertical photo has no partner
	ErrUnpairedVertical = errors.New("unpaired vertical photo")
	// ErrTooFewSlides is returned when a sequence is too short to swap slides
	ErrTooFewSlides = errors.New("too few slides")
	// ErrNotBuilt is returned when searching before MakeSlides
	ErrNotBuilt = errors.New("slides not built")
)

// Selector owns the photo collections, the search configuration, and the
// current slide sequence. It is not safe for concurrent use.
type Selector struct {
	vertical   []photo.Photo
	horizontal []photo.Photo

	cfg        config.SearchConfig
	logger     *log.Logger
	onProgress func(Update)

	slides       []photo.Slide
	built        bool
	initialScore int
	currentScore int
}

// New creates a selector over the given collections with the default configuration.
// The collections are not modified.
func New(vertical, horizontal []photo.Photo) *Selector {
	return &Selector{
		vertical:   vertical,
		horizontal: horizontal,
		cfg:        config.DefaultConfig(),
		logger:     log.New(io.Discard),
	}
}

// Configure replaces the whole configuration after validating it
func (s *Selector) Configure(cfg config.SearchConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = cfg

	return nil
}

// Config returns a copy of the current configuration
func (s *Selector) Config() config.SearchConfig {
	return s.cfg
}

// set applies a single-field change if the resulting configuration is valid
func (s *Selector) set(change func(*config.SearchConfig)) error {
	next := s.cfg
	change(&next)

	return s.Configure(next)
}

func (s *Selector) SetHeuristic(h config.Heuristic) error {
	return s.set(func(c *config.SearchConfig) { c.Heuristic = h })
}

func (s *Selector) SetMaxAttempts(n int) error {
	return s.set(func(c *config.SearchConfig) { c.MaxAttempts = n })
}

func (s *Selector) SetTemperature(t float64) error {
	return s.set(func(c *config.SearchConfig) { c.Temperature = t })
}

func (s *Selector) SetTmin(t float64) error {
	return s.set(func(c *config.SearchConfig) { c.TMin = t })
}

func (s *Selector) SetAlpha(alpha float64) error {
	return s.set(func(c *config.SearchConfig) { c.Alpha = alpha })
}

func (s *Selector) SetNumIterations(n int) error {
	return s.set(func(c *config.SearchConfig) { c.NumIterations = n })
}

func (s *Selector) SetTabuListSize(size int) error {
	return s.set(func(c *config.SearchConfig) { c.TabuListSize = size })
}

func (s *Selector) SetPopulationSize(size int) error {
	return s.set(func(c *config.SearchConfig) { c.PopulationSize = size })
}

func (s *Selector) SetMaxGenerations(n int) error {
	return s.set(func(c *config.SearchConfig) { c.MaxGenerations = n })
}

// SetSeed fixes the random seed; 0 derives a new seed from the clock for every run
func (s *Selector) SetSeed(seed uint64) {
	s.cfg.Seed = seed
}

// SetLogger sets the logger used for run summaries and debug output
func (s *Selector) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}

	s.logger = l
}

// OnProgress registers a callback invoked synchronously from the search loop
func (s *Selector) OnProgress(fn func(Update)) {
	s.onProgress = fn
}

// CurrentScore returns the score of the current slide sequence
func (s *Selector) CurrentScore() int {
	return s.currentScore
}

// InitialScore returns the score recorded by MakeSlides
func (s *Selector) InitialScore() int {
	return s.initialScore
}

// Slides returns a copy of the current slide sequence
func (s *Selector) Slides() []photo.Slide {
	return slices.Clone(s.slides)
}

// Vertical returns the vertical photos, in slide order once slides are built
func (s *Selector) Vertical() []photo.Photo {
	if !s.built {
		return slices.Clone(s.vertical)
	}

	return s.photosInSlideOrder(photo.Vertical)
}

// Horizontal returns the horizontal photos, in slide order once slides are built
func (s *Selector) Horizontal() []photo.Photo {
	if !s.built {
		return slices.Clone(s.horizontal)
	}

	return s.photosInSlideOrder(photo.Horizontal)
}

func (s *Selector) photosInSlideOrder(o photo.Orientation) []photo.Photo {
	var photos []photo.Photo
	for _, slide := range s.slides {
		for _, p := range slide.Photos() {
			if p.Orientation == o {
				photos = append(photos, p)
			}
		}
	}

	return photos
}

// Run executes the configured heuristic
func (s *Selector) Run(ctx context.Context) (Run, error) {
	return s.search(ctx, s.cfg.Heuristic)
}

// HillClimbing runs hill climbing regardless of the configured heuristic
func (s *Selector) HillClimbing(ctx context.Context) (Run, error) {
	return s.search(ctx, config.HillClimbing)
}

// SimulatedAnnealing runs simulated annealing regardless of the configured heuristic
func (s *Selector) SimulatedAnnealing(ctx context.Context) (Run, error) {
	return s.search(ctx, config.SimulatedAnnealing)
}

// TabuSearch runs tabu search regardless of the configured heuristic
func (s *Selector) TabuSearch(ctx context.Context) (Run, error) {
	return s.search(ctx, config.TabuSearch)
}

// GeneticAlgorithm runs the genetic algorithm regardless of the configured heuristic
func (s *Selector) GeneticAlgorithm(ctx context.Context) (Run, error) {
	return s.search(ctx, config.Genetic)
}

// search runs one heuristic on a copy of the current sequence and adopts the
// result. On cancellation the best state reached is still adopted and
// returned together with the context error.
func (s *Selector) search(ctx context.Context, h config.Heuristic) (Run, error) {
	if !s.built {
		return Run{}, ErrNotBuilt
	}

	if len(s.slides) < 2 {
		return Run{}, fmt.Errorf("%w: a slideshow of %d slide(s) cannot be reordered", ErrTooFewSlides, len(s.slides))
	}

	rng, seed := newRNG(s.cfg.Seed)
	start := time.Now()

	run := Run{
		ID:           uuid.NewString(),
		Heuristic:    h,
		Seed:         seed,
		Slides:       slices.Clone(s.slides),
		InitialScore: s.initialScore,
		StartScore:   s.currentScore,
		Score:        s.currentScore,
		BestScore:    s.currentScore,
		Temperature:  s.cfg.Temperature,
	}

	s.logger.Info("search started", "run", run.ID, "heuristic", h, "seed", seed, "slides", len(run.Slides), "score", run.Score)

	var err error

	switch h {
	case config.HillClimbing:
		err = s.localSearch(ctx, &run, rng, &greedy{maxAttempts: int64(s.cfg.MaxAttempts)})
	case config.SimulatedAnnealing:
		err = s.localSearch(ctx, &run, rng, &metropolis{
			rng:           rng,
			tMin:          s.cfg.TMin,
			alpha:         s.cfg.Alpha,
			numIterations: int64(s.cfg.NumIterations),
		})
	case config.TabuSearch:
		err = s.localSearch(ctx, &run, rng, &tabuFiltered{
			tabu:        newTabuList(s.cfg.TabuListSize),
			sampled:     s.cfg.TabuCandidates,
			maxAttempts: int64(s.cfg.MaxAttempts),
		})
	case config.Genetic:
		err = s.geneticAlgorithm(ctx, &run, rng)
	default:
		return Run{}, fmt.Errorf("%w: unknown heuristic %d", ErrInvalidArgument, int(h))
	}

	run.Duration = time.Since(start)

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return run, fmt.Errorf("%s search failed: %w", h, err)
	}

	s.slides = run.Slides
	s.currentScore = run.Score

	s.logger.Info("search finished",
		"run", run.ID,
		"heuristic", h,
		"score", run.Score,
		"best", run.BestScore,
		"gain", run.Improvement(),
		"stop", run.Stop,
		"iterations", run.Iterations,
		"generations", run.Generations,
		"duration", run.Duration.Round(time.Millisecond),
	)

	// run.Slides now backs the selector's state
	run.Slides = slices.Clone(run.Slides)

	return run, err
}
