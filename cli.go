// ABOUTME: CLI mode implementation for non-interactive slideshow optimization
// ABOUTME: Loads photos and config, runs the selected heuristic, reports, and writes the slideshow

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"slideshow-sorter/config"
	"slideshow-sorter/photo"
	"slideshow-sorter/selector"
)

// progressLogInterval bounds how often progress lines are logged
const progressLogInterval = 500 * time.Millisecond

// RunOptions contains command-line options for CLI and watch mode
type RunOptions struct {
	InputPath    string
	OutputPath   string
	ConfigPath   string
	DryRun       bool
	Verbose      bool
	Watch        bool
	DebugLogPath string

	// Overrides applies search flags given on the command line on top of the config file
	Overrides func(*config.SearchConfig)

	Logger *log.Logger
	Out    io.Writer
}

// outputPath returns where the slideshow is written
func (o RunOptions) outputPath() string {
	if o.OutputPath != "" {
		return o.OutputPath
	}

	return o.InputPath + ".out"
}

// configPath returns the config file to load and whether the user named it explicitly
func (o RunOptions) configPath() (string, bool) {
	if o.ConfigPath != "" {
		return o.ConfigPath, true
	}

	return config.GetConfigPath(), false
}

// flagFields maps search flag names to the config field they override
var flagFields = map[string]func(dst *config.SearchConfig, src config.SearchConfig){
	"heuristic":         func(d *config.SearchConfig, s config.SearchConfig) { d.Heuristic = s.Heuristic },
	"seed":              func(d *config.SearchConfig, s config.SearchConfig) { d.Seed = s.Seed },
	"max-attempts":      func(d *config.SearchConfig, s config.SearchConfig) { d.MaxAttempts = s.MaxAttempts },
	"max-iterations":    func(d *config.SearchConfig, s config.SearchConfig) { d.MaxIterations = s.MaxIterations },
	"temperature":       func(d *config.SearchConfig, s config.SearchConfig) { d.Temperature = s.Temperature },
	"tmin":              func(d *config.SearchConfig, s config.SearchConfig) { d.TMin = s.TMin },
	"alpha":             func(d *config.SearchConfig, s config.SearchConfig) { d.Alpha = s.Alpha },
	"num-iterations":    func(d *config.SearchConfig, s config.SearchConfig) { d.NumIterations = s.NumIterations },
	"tabu-list-size":    func(d *config.SearchConfig, s config.SearchConfig) { d.TabuListSize = s.TabuListSize },
	"tabu-candidates":   func(d *config.SearchConfig, s config.SearchConfig) { d.TabuCandidates = s.TabuCandidates },
	"population-size":   func(d *config.SearchConfig, s config.SearchConfig) { d.PopulationSize = s.PopulationSize },
	"max-generations":   func(d *config.SearchConfig, s config.SearchConfig) { d.MaxGenerations = s.MaxGenerations },
	"mutation-rate":     func(d *config.SearchConfig, s config.SearchConfig) { d.MutationRate = s.MutationRate },
	"workers":           func(d *config.SearchConfig, s config.SearchConfig) { d.Workers = s.Workers },
	"repair-rate":       func(d *config.SearchConfig, s config.SearchConfig) { d.RepairRate = s.RepairRate },
	"pairing-window":    func(d *config.SearchConfig, s config.SearchConfig) { d.PairingWindow = s.PairingWindow },
	"progress-interval": func(d *config.SearchConfig, s config.SearchConfig) { d.ProgressInterval = s.ProgressInterval },
}

// changedOverrides returns a function copying only the search flags the user
// actually set from values into a loaded config
func changedOverrides(cmd *cobra.Command, values config.SearchConfig) func(*config.SearchConfig) {
	var setters []func(*config.SearchConfig, config.SearchConfig)

	cmd.Flags().Visit(func(f *pflag.Flag) {
		if set, ok := flagFields[f.Name]; ok {
			setters = append(setters, set)
		}
	})

	return func(cfg *config.SearchConfig) {
		for _, set := range setters {
			set(cfg, values)
		}
	}
}

// loadSearchConfig reads the config file and applies command-line overrides
func loadSearchConfig(opts RunOptions) (config.SearchConfig, error) {
	path, explicit := opts.configPath()

	if explicit {
		if _, err := os.Stat(path); err != nil {
			return config.SearchConfig{}, fmt.Errorf("failed to open config file: %w", err)
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.SearchConfig{}, err
	}

	if opts.Overrides != nil {
		opts.Overrides(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return config.SearchConfig{}, err
	}

	return cfg, nil
}

// RunCLI executes one optimization: load, build, search, report, write.
// An interrupted search still reports and writes the best slideshow found,
// then returns the context error.
func RunCLI(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cfg, err := loadSearchConfig(opts)
	if err != nil {
		return err
	}

	collection, err := photo.ReadCollectionFile(opts.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load photos: %w", err)
	}

	logger.Info("photos loaded",
		"path", opts.InputPath,
		"vertical", len(collection.Vertical),
		"horizontal", len(collection.Horizontal),
		"photos", collection.Len(),
	)

	sel := selector.New(collection.Vertical, collection.Horizontal)
	if err := sel.Configure(cfg); err != nil {
		return err
	}

	sel.SetLogger(logger)
	sel.OnProgress(progressLogger(logger))

	if err := sel.MakeSlides(); err != nil {
		return fmt.Errorf("failed to build slides: %w", err)
	}

	logger.Info("slides built", "slides", len(sel.Slides()), "score", sel.InitialScore())

	result, runErr := sel.Run(ctx)

	switch {
	case runErr == nil:
	case errors.Is(runErr, selector.ErrTooFewSlides):
		logger.Warn("nothing to reorder", "slides", len(sel.Slides()))

		result = selector.Run{
			Heuristic:    cfg.Heuristic,
			Slides:       sel.Slides(),
			InitialScore: sel.InitialScore(),
			StartScore:   sel.CurrentScore(),
			Score:        sel.CurrentScore(),
			BestScore:    sel.CurrentScore(),
		}
		runErr = nil
	case errors.Is(runErr, context.Canceled):
		logger.Warn("search interrupted, keeping best slideshow so far", "score", result.Score)
	default:
		return runErr
	}

	if err := renderReport(out, result, opts.Verbose); err != nil {
		logger.Warn("failed to write report", "err", err)
	}

	if opts.DryRun {
		logger.Info("dry run, slideshow not written")

		return runErr
	}

	path := opts.outputPath()
	if err := photo.WriteSlideshowFile(path, result.Slides); err != nil {
		return fmt.Errorf("failed to write slideshow: %w", err)
	}

	logger.Info("slideshow written", "path", path, "slides", len(result.Slides))

	return runErr
}

// progressLogger returns a progress callback that logs at most every
// progressLogInterval, plus the first update
func progressLogger(logger *log.Logger) func(selector.Update) {
	sometimes := rate.Sometimes{First: 1, Interval: progressLogInterval}
	prevTemperature := 0.0

	return func(u selector.Update) {
		sometimes.Do(func() {
			kv := []any{
				"iteration", u.Iteration,
				"score", u.Score,
				"best", u.BestScore,
				"rate", formatRate(u.PerSecond),
				"elapsed", formatElapsed(u.Elapsed),
			}

			if u.Heuristic == config.SimulatedAnnealing {
				kv = append(kv, "temperature", FormatMinimalPrecision(prevTemperature, u.Temperature))
				prevTemperature = u.Temperature
			}

			logger.Info("searching", kv...)
		})
	}
}
