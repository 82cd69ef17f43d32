package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tai4 = `4

0 1 2 3
1 0 4 5
2 4 0 6
3 5 6 0

0 2 3 1
2 0 1 4
3 1 0 2
1 4 2 0
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeInstance(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tai4.dat")
	require.NoError(t, os.WriteFile(path, []byte(tai4), 0o644))
	return path
}

func TestSolvePrintsSummary(t *testing.T) {
	inst := writeInstance(t)
	metrics := filepath.Join(t.TempDir(), "qap.prom")

	out, err := execute(t, "solve",
		"--instance", inst,
		"--seed", "6f1c7f2e-3b44-4c2b-9a57-0d1e2a3b4c5d",
		"--generations", "20",
		"--polish",
		"--metrics-out", metrics,
	)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "tai4.dat", got["database"])
	assert.Equal(t, "standard", got["variant"])
	assert.Equal(t, float64(4), got["population_size"])
	assert.Equal(t, float64(20), got["generations"])
	assert.Contains(t, got, "run_time")
	assert.Contains(t, got, "best_chromosome")

	polished, ok := got["polished"].(map[string]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, polished["fitness"].(float64), float64(86))

	assert.FileExists(t, metrics)
}

func TestSolveUsesConfigFile(t *testing.T) {
	inst := writeInstance(t)
	cfgPath := filepath.Join(t.TempDir(), "run.toml")
	body := "instance = \"" + filepath.ToSlash(inst) + "\"\n[ga]\nvariant = \"baldwinian\"\ngenerations = 7\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	out, err := execute(t, "solve", "--config", cfgPath, "--generations", "9")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "baldwinian", got["variant"])
	// explicit flag wins over the file
	assert.Equal(t, float64(9), got["generations"])
}

func TestSolveAcceptsUppercaseSeed(t *testing.T) {
	out, err := execute(t, "solve",
		"--instance", writeInstance(t),
		"--seed", "6F1C7F2E-3B44-4C2B-9A57-0D1E2A3B4C5D",
		"--generations", "3",
	)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "6f1c7f2e-3b44-4c2b-9a57-0d1e2a3b4c5d", got["seed"])
}

func TestSolveRequiresInstance(t *testing.T) {
	_, err := execute(t, "solve")
	require.Error(t, err)
}

func TestBenchWritesCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "results.csv")
	out, err := execute(t, "bench",
		"--sizes", "6",
		"--algos", "GA,SA",
		"--runs", "2",
		"--ga-gen", "10",
		"--sa-iter", "200",
		"--out", csvPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved:")

	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Len(t, lines, 3)
}

func TestBenchRejectsUnknownAlgorithm(t *testing.T) {
	_, err := execute(t, "bench", "--algos", "ACO", "--out", filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
}
