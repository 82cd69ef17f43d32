package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"qapSolver/internal/opt"
	"qapSolver/internal/qap"
)

// Factory строит оптимизатор для запуска с данным сидом.
type Factory func(seed int64) (opt.Optimizer, error)

type Algorithm struct {
	Name    string
	Factory Factory
}

// Case — случайный симметричный экземпляр размера Size, порождаемый из InstanceSeed.
type Case struct {
	Size         int
	InstanceSeed int64
}

func (c Case) Instance() *qap.Instance {
	return qap.RandomInstance(c.Size, 1, 99, rand.New(rand.NewSource(c.InstanceSeed)))
}

type Record struct {
	Algo string
	Size int
	Runs int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	CostBest int64
	CostMean float64
	CostStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	Workers       int           // 0 = без ограничения
	PerRunTimeout time.Duration // 0 = без таймаута
	Logger        *slog.Logger
}

// RunCase выполняет Runs независимых запусков алгоритма на одном экземпляре.
// Запуск i использует сид BaseSeed+i, так что результат не зависит от порядка
// выполнения горутин.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	inst := c.Instance()
	log := r.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	costs := make([]int64, r.Runs)
	timesMs := make([]float64, r.Runs)

	g, gctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}

	for i := 0; i < r.Runs; i++ {
		g.Go(func() error {
			runSeed := r.BaseSeed + int64(i)
			op, err := algo.Factory(runSeed)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}

			runCtx := gctx
			cancel := func() {}
			if r.PerRunTimeout > 0 {
				runCtx, cancel = context.WithTimeout(gctx, r.PerRunTimeout)
			}
			defer cancel()

			start := time.Now()
			res, err := op.Solve(runCtx, inst)
			dur := time.Since(start)

			if err != nil && runCtx.Err() != nil {
				return fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
			}
			if err != nil {
				return fmt.Errorf("run %d: solve error: %w", i, err)
			}
			if err := qap.ValidatePermutation(res.Permutation, inst.Size); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}

			costs[i] = res.Cost
			timesMs[i] = float64(dur.Microseconds()) / 1000.0
			log.Debug("bench run finished", "algo", algo.Name, "size", c.Size, "run", i, "cost", res.Cost, "elapsed", dur)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Record{}, err
	}

	cs := CalcCostStats(costs)
	ts := CalcStats(timesMs)

	best := int64(0)
	if len(costs) > 0 {
		best = costs[0]
		for _, v := range costs[1:] {
			best = min(best, v)
		}
	}

	return Record{
		Algo: algo.Name,
		Size: c.Size,
		Runs: r.Runs,

		TimeBestMs: ts.Best,
		TimeMeanMs: ts.Mean,
		TimeStdMs:  ts.Std,

		CostBest: best,
		CostMean: cs.Mean,
		CostStd:  cs.Std,
	}, nil
}
