package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qapSolver/internal/ga"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
instance: data/tai12a.dat
polish: true
ga:
  variant: Baldwinian
  generations: 250
  population_size: 40
  seed: 6f1c7f2e-3b44-4c2b-9a57-0d1e2a3b4c5d
log:
  level: debug
`)
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/tai12a.dat", f.Instance)
	assert.True(t, f.Polish)
	assert.Equal(t, "debug", f.Log.Level)

	cfg, ok := f.ToGA()
	require.True(t, ok)
	assert.Equal(t, ga.Baldwinian, cfg.Variant)
	assert.Equal(t, 250, cfg.Generations)
	assert.Equal(t, 40, cfg.PopulationSize)
	// absent keys keep their defaults
	assert.Equal(t, 0.5, cfg.MutationProbability)
	assert.Equal(t, 2, cfg.GeneMutations)
	require.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "run.toml", `
instance = "tai12a.dat"

[ga]
variant = "standard"
cross_probability = 0.9
elite_ratio = 0.2

[metrics]
out = "qap.prom"
`)
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "qap.prom", f.Metrics.Out)

	cfg, ok := f.ToGA()
	require.True(t, ok)
	assert.Equal(t, ga.Standard, cfg.Variant)
	assert.Equal(t, 0.9, cfg.CrossProbability)
	assert.Equal(t, 0.2, cfg.EliteRatio)
	assert.Equal(t, 100, cfg.Generations)
}

func TestUnknownVariantFallsBack(t *testing.T) {
	f, err := Parse([]byte("ga:\n  variant: darwinian\n"), ".yml")
	require.NoError(t, err)
	cfg, ok := f.ToGA()
	assert.False(t, ok)
	assert.Equal(t, ga.Regular, cfg.Variant)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		ext  string
		want error
	}{
		{"json", `{}`, ".json", ErrUnsupportedFormat},
		{"zero generations", "ga:\n  generations: 0\n", ".yaml", ErrInvalidFile},
		{"probability above one", "[ga]\nmutation_probability = 1.5\n", ".toml", ErrInvalidFile},
		{"bad seed", "ga:\n  seed: not-a-uuid\n", ".yaml", ErrInvalidFile},
		{"bad log level", "log:\n  level: loud\n", ".yaml", ErrInvalidFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body), tt.ext)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("ga: [unclosed"), ".yaml")
	require.Error(t, err)
}

func TestSeedAcceptsParseableForms(t *testing.T) {
	for _, seed := range []string{
		"6F1C7F2E-3B44-4C2B-9A57-0D1E2A3B4C5D",
		"{6f1c7f2e-3b44-4c2b-9a57-0d1e2a3b4c5d}",
		"urn:uuid:6f1c7f2e-3b44-4c2b-9a57-0d1e2a3b4c5d",
	} {
		f := Default()
		f.GA.Seed = seed
		require.NoError(t, f.Validate(), seed)

		cfg, _ := f.ToGA()
		require.NoError(t, cfg.Validate(), seed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
