// ABOUTME: Entry point for slideshow-sorter application
// ABOUTME: Handles command-line parsing, profiling, signal handling, and routing to CLI or watch mode

// Package main provides the entry point for slideshow-sorter, a heuristic photo slideshow optimizer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"slideshow-sorter/config"
)

// exitInterrupted is the conventional exit status after SIGINT
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		log.Error("slideshow-sorter failed", "err", err)

		return 1
	}
}

// newRootCmd builds the slideshow-sorter command with one flag per search parameter
func newRootCmd() *cobra.Command {
	opts := RunOptions{}
	overrides := config.DefaultConfig()

	var (
		heuristic  string
		cpuprofile string
		memprofile string
	)

	cmd := &cobra.Command{
		Use:   "slideshow-sorter [flags] <photos.txt>",
		Short: "Arrange photos into a slideshow with the most interesting transitions",
		Long: `slideshow-sorter reads a photo collection, builds slides (one horizontal
photo, or two vertical photos), and reorders them with hill climbing,
simulated annealing, tabu search, or a genetic algorithm to maximize the
sum of transition scores between adjacent slides.`,
		Example:       "  slideshow-sorter --heuristic simulated-annealing --seed 42 photos.txt",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputPath = args[0]

			if cmd.Flags().Changed("heuristic") {
				h, err := config.ParseHeuristic(heuristic)
				if err != nil {
					return err
				}

				overrides.Heuristic = h
			}

			opts.Overrides = changedOverrides(cmd, overrides)

			logger, closeLog, err := setupLogging(opts.Verbose, opts.DebugLogPath)
			if err != nil {
				return err
			}
			defer closeLog()

			opts.Logger = logger
			opts.Out = cmd.OutOrStdout()

			if cpuprofile != "" {
				stopCPUProfile, err := setupCPUProfile(cpuprofile)
				if err != nil {
					return err
				}
				defer stopCPUProfile()
			}

			if memprofile != "" {
				defer writeMemoryProfile(memprofile, logger)
			}

			if opts.Watch {
				return RunWatch(cmd.Context(), opts)
			}

			return RunCLI(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()

	flags.StringVarP(&opts.OutputPath, "output", "o", "", "write the slideshow to this file (default: <input>.out)")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "search configuration file (default: "+config.GetConfigPath()+")")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "optimize and report without writing the slideshow")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&opts.Watch, "watch", "w", false, "re-run whenever the photo file or config file changes")
	flags.StringVar(&opts.DebugLogPath, "debug-log", "", "also write debug logs to this file")
	flags.StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&memprofile, "memprofile", "", "write memory profile to file")

	flags.StringVarP(&heuristic, "heuristic", "H", overrides.Heuristic.String(), "hill-climbing, simulated-annealing, tabu-search or genetic")
	flags.Uint64Var(&overrides.Seed, "seed", overrides.Seed, "random seed (0 derives one from the clock)")
	flags.IntVar(&overrides.MaxAttempts, "max-attempts", overrides.MaxAttempts, "consecutive non-improving iterations before hill climbing or tabu search stops")
	flags.IntVar(&overrides.MaxIterations, "max-iterations", overrides.MaxIterations, "hard cap on local search iterations")
	flags.Float64Var(&overrides.Temperature, "temperature", overrides.Temperature, "initial annealing temperature")
	flags.Float64Var(&overrides.TMin, "tmin", overrides.TMin, "annealing stops once the temperature falls below this")
	flags.Float64Var(&overrides.Alpha, "alpha", overrides.Alpha, "annealing cooling factor in (0,1)")
	flags.IntVar(&overrides.NumIterations, "num-iterations", overrides.NumIterations, "annealing iterations per temperature step")
	flags.IntVar(&overrides.TabuListSize, "tabu-list-size", overrides.TabuListSize, "tabu list capacity")
	flags.IntVar(&overrides.TabuCandidates, "tabu-candidates", overrides.TabuCandidates, "moves sampled per tabu search iteration")
	flags.IntVar(&overrides.PopulationSize, "population-size", overrides.PopulationSize, "genetic algorithm population size")
	flags.IntVar(&overrides.MaxGenerations, "max-generations", overrides.MaxGenerations, "genetic algorithm generations")
	flags.Float64Var(&overrides.MutationRate, "mutation-rate", overrides.MutationRate, "probability of mutating an offspring")
	flags.IntVar(&overrides.Workers, "workers", overrides.Workers, "goroutines evaluating genetic algorithm fitness")
	flags.Float64Var(&overrides.RepairRate, "repair-rate", overrides.RepairRate, "probability of re-pairing two vertical slides instead of swapping")
	flags.IntVar(&overrides.PairingWindow, "pairing-window", overrides.PairingWindow, "vertical photos examined when pairing")
	flags.IntVar(&overrides.ProgressInterval, "progress-interval", overrides.ProgressInterval, "iterations between progress updates")

	return cmd
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) (func(), error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Warn("failed to close CPU profile", "err", err)
		}
	}, nil
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string, logger *log.Logger) {
	f, err := os.Create(filename)
	if err != nil {
		logger.Error("could not create memory profile", "err", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close memory profile", "err", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		logger.Error("could not write memory profile", "err", err)
	}
}
