// Package telemetry exports search progress as Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"qapSolver/internal/ga"
)

// Recorder implements ga.Observer and owns a private registry.
type Recorder struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	bestFitness *prometheus.GaugeVec
	genFitness  *prometheus.GaugeVec
	crossovers  *prometheus.CounterVec
	genDuration *prometheus.HistogramVec

	lastEvals map[ga.Variant]int
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qap",
			Subsystem: "ga",
			Name:      "generations_total",
			Help:      "Generations completed by the genetic search",
		}, []string{"variant"}),

		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qap",
			Subsystem: "ga",
			Name:      "evaluations_total",
			Help:      "Fitness evaluations performed",
		}, []string{"variant"}),

		bestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "qap",
			Subsystem: "ga",
			Name:      "best_fitness",
			Help:      "Best fitness found so far",
		}, []string{"variant"}),

		genFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "qap",
			Subsystem: "ga",
			Name:      "generation_best_fitness",
			Help:      "Best fitness in the latest ranked generation",
		}, []string{"variant"}),

		crossovers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qap",
			Subsystem: "ga",
			Name:      "crossover_generations_total",
			Help:      "Generations in which recombination was applied",
		}, []string{"variant"}),

		genDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qap",
			Subsystem: "ga",
			Name:      "generation_duration_seconds",
			Help:      "Wall time of one generation",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"variant"}),

		lastEvals: make(map[ga.Variant]int),
	}
	r.registry.MustRegister(
		r.generations,
		r.evaluations,
		r.bestFitness,
		r.genFitness,
		r.crossovers,
		r.genDuration,
	)
	return r
}

// ObserveGeneration is not safe for concurrent use.
func (r *Recorder) ObserveGeneration(s ga.GenerationStats) {
	v := s.Variant.String()

	r.generations.WithLabelValues(v).Inc()

	// GenerationStats carries the running total
	if d := s.Evaluations - r.lastEvals[s.Variant]; d > 0 {
		r.evaluations.WithLabelValues(v).Add(float64(d))
	}
	r.lastEvals[s.Variant] = s.Evaluations

	if s.BestFitness != ga.SentinelFitness {
		r.bestFitness.WithLabelValues(v).Set(float64(s.BestFitness))
	}
	if s.GenerationBest != ga.SentinelFitness {
		r.genFitness.WithLabelValues(v).Set(float64(s.GenerationBest))
	}
	if s.Crossed {
		r.crossovers.WithLabelValues(v).Inc()
	}
	r.genDuration.WithLabelValues(v).Observe(s.Duration.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile dumps the metrics in the text exposition format
// (node_exporter textfile collector layout).
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
