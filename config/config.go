// ABOUTME: Configuration management for slideshow search parameters
// ABOUTME: Handles loading/saving TOML or YAML config files with fallback to defaults and validation

// Package config holds the tunable parameters of the slideshow search
// heuristics and their file representation. Files are TOML unless the
// extension is .yaml or .yml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate when a parameter is out of range
var ErrInvalidConfig = errors.New("invalid config")

// Heuristic selects the search strategy
type Heuristic int

const (
	HillClimbing Heuristic = iota
	SimulatedAnnealing
	TabuSearch
	Genetic
)

var heuristicNames = [...]string{
	HillClimbing:       "hill-climbing",
	SimulatedAnnealing: "simulated-annealing",
	TabuSearch:         "tabu-search",
	Genetic:            "genetic",
}

// String returns the config/CLI name of the heuristic
func (h Heuristic) String() string {
	if h < 0 || int(h) >= len(heuristicNames) {
		return fmt.Sprintf("heuristic(%d)", int(h))
	}

	return heuristicNames[h]
}

// Valid reports whether h is one of the known heuristics
func (h Heuristic) Valid() bool {
	return h >= 0 && int(h) < len(heuristicNames)
}

// ParseHeuristic converts a name like "tabu-search" into a Heuristic
func ParseHeuristic(name string) (Heuristic, error) {
	for i, n := range heuristicNames {
		if n == name {
			return Heuristic(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown heuristic %q (want one of %v)", ErrInvalidConfig, name, heuristicNames)
}

// MarshalText implements encoding.TextMarshaler so TOML stores the name
func (h Heuristic) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: unknown heuristic %d", ErrInvalidConfig, int(h))
	}

	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *Heuristic) UnmarshalText(text []byte) error {
	parsed, err := ParseHeuristic(string(text))
	if err != nil {
		return err
	}

	*h = parsed

	return nil
}

// SearchConfig holds all tunable search parameters
type SearchConfig struct {
	Heuristic Heuristic `toml:"heuristic" yaml:"heuristic"`
	Seed      uint64    `toml:"seed" yaml:"seed"` // 0 = derive from the clock

	// Local search termination
	MaxAttempts   int `toml:"max_attempts" yaml:"max_attempts"`   // Consecutive non-improving attempts
	MaxIterations int `toml:"max_iterations" yaml:"max_iterations"` // Hard cap on iterations

	// Simulated annealing schedule
	Temperature   float64 `toml:"temperature" yaml:"temperature"`
	TMin          float64 `toml:"t_min" yaml:"t_min"`
	Alpha         float64 `toml:"alpha" yaml:"alpha"`
	NumIterations int     `toml:"num_iterations" yaml:"num_iterations"` // Moves per temperature step

	// Tabu search
	TabuListSize   int `toml:"tabu_list_size" yaml:"tabu_list_size"`
	TabuCandidates int `toml:"tabu_candidates" yaml:"tabu_candidates"` // Moves sampled per iteration

	// Genetic algorithm
	PopulationSize int     `toml:"population_size" yaml:"population_size"`
	MaxGenerations int     `toml:"max_generations" yaml:"max_generations"`
	MutationRate   float64 `toml:"mutation_rate" yaml:"mutation_rate"`
	Workers        int     `toml:"workers" yaml:"workers"` // Fitness evaluation goroutines

	// Neighborhood and slide construction
	RepairRate    float64 `toml:"repair_rate" yaml:"repair_rate"`    // Share of moves that re-pair vertical photos
	PairingWindow int     `toml:"pairing_window" yaml:"pairing_window"` // Look-ahead when pairing vertical photos

	ProgressInterval int `toml:"progress_interval" yaml:"progress_interval"` // Iterations between progress updates
}

// DefaultConfig returns the default search configuration
func DefaultConfig() SearchConfig {
	return SearchConfig{
		Heuristic:        HillClimbing,
		Seed:             0,
		MaxAttempts:      10000,
		MaxIterations:    5000000,
		Temperature:      1.0,
		TMin:             0.0001,
		Alpha:            0.9,
		NumIterations:    10000,
		TabuListSize:     50,
		TabuCandidates:   20,
		PopulationSize:   50,
		MaxGenerations:   500,
		MutationRate:     0.1,
		Workers:          1,
		RepairRate:       0.3,
		PairingWindow:    64,
		ProgressInterval: 10000,
	}
}

// Validate rejects out-of-range parameters. Values are never clamped.
func (c SearchConfig) Validate() error {
	var errs []error

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Heuristic.Valid(), "unknown heuristic %d", int(c.Heuristic))
	check(c.MaxAttempts > 0, "max_attempts must be positive, got %d", c.MaxAttempts)
	check(c.MaxIterations > 0, "max_iterations must be positive, got %d", c.MaxIterations)
	check(c.Temperature > 0, "temperature must be positive, got %g", c.Temperature)
	check(c.TMin > 0, "t_min must be positive, got %g", c.TMin)
	check(c.Alpha > 0 && c.Alpha < 1, "alpha must be in (0,1), got %g", c.Alpha)
	check(c.NumIterations > 0, "num_iterations must be positive, got %d", c.NumIterations)
	check(c.TabuListSize > 0, "tabu_list_size must be positive, got %d", c.TabuListSize)
	check(c.TabuCandidates > 0, "tabu_candidates must be positive, got %d", c.TabuCandidates)
	check(c.PopulationSize >= 2, "population_size must be at least 2, got %d", c.PopulationSize)
	check(c.MaxGenerations > 0, "max_generations must be positive, got %d", c.MaxGenerations)
	check(c.MutationRate >= 0 && c.MutationRate <= 1, "mutation_rate must be in [0,1], got %g", c.MutationRate)
	check(c.Workers > 0, "workers must be positive, got %d", c.Workers)
	check(c.RepairRate >= 0 && c.RepairRate <= 1, "repair_rate must be in [0,1], got %g", c.RepairRate)
	check(c.PairingWindow > 0, "pairing_window must be positive, got %d", c.PairingWindow)
	check(c.ProgressInterval > 0, "progress_interval must be positive, got %d", c.ProgressInterval)

	return errors.Join(errs...)
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/slideshow-sorter/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./slideshow-sorter.toml"); err == nil {
		return "./slideshow-sorter.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./slideshow-sorter.toml"
	}

	return filepath.Join(home, ".config", "slideshow-sorter", "config.toml")
}

// isYAML reports whether path names a YAML file
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadConfig loads configuration from a TOML or YAML file.
// Keys missing from the file keep their default values.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (SearchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode on top of the defaults so partial files are valid
	config := DefaultConfig()

	if isYAML(path) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = toml.Unmarshal(data, &config)
	}

	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file, or YAML for .yaml/.yml paths
func SaveConfig(path string, config SearchConfig) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	if isYAML(path) {
		encoder := yaml.NewEncoder(f)
		if err = encoder.Encode(config); err == nil {
			err = encoder.Close()
		}
	} else {
		err = toml.NewEncoder(f).Encode(config)
	}

	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
