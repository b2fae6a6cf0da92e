// ABOUTME: Tests for configuration load/save and validation
// ABOUTME: Validates TOML parsing, default fallback, partial files, and range checks

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, HillClimbing, cfg.Heuristic)
	assert.Equal(t, 0.9, cfg.Alpha)
	require.NoError(t, cfg.Validate())
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "slideshow-sorter.toml")

	cfg := DefaultConfig()
	cfg.Heuristic = TabuSearch
	cfg.TabuListSize = 7
	cfg.Seed = 42

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `heuristic = "tabu-search"`)
}

// TestSaveConfigReturnsIOErrors verifies write failures reach the caller
// instead of only being printed
func TestSaveConfigReturnsIOErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	require.Error(t, SaveConfig("/dev/full", DefaultConfig()))

	// A directory cannot be created as a file
	require.Error(t, SaveConfig(t.TempDir(), DefaultConfig()))
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := "heuristic = \"genetic\"\npopulation_size = 12\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, Genetic, cfg.Heuristic)
	assert.Equal(t, 12, cfg.PopulationSize)
	assert.Equal(t, defaults.MaxGenerations, cfg.MaxGenerations)
	assert.Equal(t, defaults.TMin, cfg.TMin)
}

func TestLoadNonExistentConfig(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigRejectsUnknownHeuristic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`heuristic = "random-walk"`), 0o600))

	cfg, err := LoadConfig(path)
	require.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseHeuristic(t *testing.T) {
	for _, h := range []Heuristic{HillClimbing, SimulatedAnnealing, TabuSearch, Genetic} {
		parsed, err := ParseHeuristic(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, parsed)
	}

	_, err := ParseHeuristic("greedy")
	require.ErrorIs(t, err, ErrInvalidConfig)

	assert.Equal(t, "heuristic(9)", Heuristic(9).String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SearchConfig)
	}{
		{"zero tabu list", func(c *SearchConfig) { c.TabuListSize = 0 }},
		{"population of one", func(c *SearchConfig) { c.PopulationSize = 1 }},
		{"zero generations", func(c *SearchConfig) { c.MaxGenerations = 0 }},
		{"negative generations", func(c *SearchConfig) { c.MaxGenerations = -3 }},
		{"zero attempts", func(c *SearchConfig) { c.MaxAttempts = 0 }},
		{"alpha of one", func(c *SearchConfig) { c.Alpha = 1 }},
		{"zero alpha", func(c *SearchConfig) { c.Alpha = 0 }},
		{"zero t_min", func(c *SearchConfig) { c.TMin = 0 }},
		{"negative temperature", func(c *SearchConfig) { c.Temperature = -1 }},
		{"zero num_iterations", func(c *SearchConfig) { c.NumIterations = 0 }},
		{"mutation rate above one", func(c *SearchConfig) { c.MutationRate = 1.5 }},
		{"negative repair rate", func(c *SearchConfig) { c.RepairRate = -0.1 }},
		{"zero workers", func(c *SearchConfig) { c.Workers = 0 }},
		{"unknown heuristic", func(c *SearchConfig) { c.Heuristic = Heuristic(12) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestSaveAndLoadYAMLConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slideshow-sorter.yaml")

	cfg := DefaultConfig()
	cfg.Heuristic = SimulatedAnnealing
	cfg.Alpha = 0.95
	cfg.Seed = 7

	require.NoError(t, SaveConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "heuristic: simulated-annealing")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialYAMLConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	content := "heuristic: tabu-search\ntabu_list_size: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, TabuSearch, cfg.Heuristic)
	assert.Equal(t, 5, cfg.TabuListSize)
	assert.Equal(t, DefaultConfig().TabuCandidates, cfg.TabuCandidates)
}
