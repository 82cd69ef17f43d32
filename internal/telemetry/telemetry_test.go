package telemetry

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qapSolver/internal/ga"
	"qapSolver/internal/qap"
)

func TestObserveGenerationCountsDeltas(t *testing.T) {
	r := NewRecorder()
	r.ObserveGeneration(ga.GenerationStats{
		Variant: ga.Standard, Generation: 1, BestFitness: 120, GenerationBest: 120,
		Crossed: true, Evaluations: 10, Duration: time.Millisecond,
	})
	r.ObserveGeneration(ga.GenerationStats{
		Variant: ga.Standard, Generation: 2, BestFitness: 110, GenerationBest: 115,
		Evaluations: 20, Duration: time.Millisecond,
	})

	std := ga.Standard.String()
	assert.Equal(t, 2.0, testutil.ToFloat64(r.generations.WithLabelValues(std)))
	assert.Equal(t, 20.0, testutil.ToFloat64(r.evaluations.WithLabelValues(std)))
	assert.Equal(t, 110.0, testutil.ToFloat64(r.bestFitness.WithLabelValues(std)))
	assert.Equal(t, 115.0, testutil.ToFloat64(r.genFitness.WithLabelValues(std)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.crossovers.WithLabelValues(std)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.genDuration))
}

func TestRecorderWiredIntoEngine(t *testing.T) {
	inst := qap.RandomInstance(6, 0, 10, rand.New(rand.NewSource(3)))
	r := NewRecorder()

	cfg := ga.DefaultConfig()
	cfg.Generations = 12
	cfg.Variant = ga.Baldwinian
	e, err := ga.New(inst, cfg, ga.WithObserver(r))
	require.NoError(t, err)
	require.NoError(t, e.Run(context.Background()))

	b := ga.Baldwinian.String()
	assert.Equal(t, 12.0, testutil.ToFloat64(r.generations.WithLabelValues(b)))
	assert.Equal(t, float64(e.Evaluations()), testutil.ToFloat64(r.evaluations.WithLabelValues(b)))
	assert.Equal(t, float64(e.Best().Fitness), testutil.ToFloat64(r.bestFitness.WithLabelValues(b)))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveGeneration(ga.GenerationStats{Variant: ga.Standard, Generation: 1, BestFitness: 7, GenerationBest: 7, Evaluations: 4})

	path := filepath.Join(t.TempDir(), "qap.prom")
	require.NoError(t, r.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.Contains(text, `qap_ga_best_fitness{variant="standard"} 7`), text)
	assert.Contains(t, text, "qap_ga_generations_total")
}
