package ga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"qapSolver/internal/opt"
	"qapSolver/internal/qap"
)

// ErrNoSolution возвращается адаптером, если запуск не обновил лучшее решение
// (например, ламарковский вариант).
var ErrNoSolution = errors.New("ga: лучшее решение не найдено")

// Solver — адаптер Engine к интерфейсу opt.Optimizer.
type Solver struct {
	Cfg      Config
	Logger   *slog.Logger
	Observer Observer
}

// NewSolver возвращает солвер с валидацией конфигурации.
// Используется в фабриках.
func NewSolver(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

func (s *Solver) Solve(ctx context.Context, inst *qap.Instance) (opt.Result, error) {
	start := time.Now()

	opts := []Option{WithLogger(s.Logger)}
	if s.Observer != nil {
		opts = append(opts, WithObserver(s.Observer))
	}
	e, err := New(inst, s.Cfg, opts...)
	if err != nil {
		return opt.Result{}, err
	}

	runErr := e.Run(ctx)
	res, err := ToOptResult(e)
	res.Duration = time.Since(start)
	if runErr != nil {
		if res.Meta == nil {
			res.Meta = map[string]any{}
		}
		res.Meta["stopped"] = "context"
		return res, runErr
	}
	return res, err
}

// ToOptResult переводит состояние движка в общий формат результата.
// Cost — стандартная стоимость лучшей перестановки независимо от варианта.
func ToOptResult(e *Engine) (opt.Result, error) {
	best := e.Best()
	res := opt.Result{
		Evaluations: e.Evaluations(),
		Iterations:  e.GenerationsRun(),
		Duration:    e.RunTime(),
		Meta: map[string]any{
			"variant":    e.Config().Variant.String(),
			"seed":       e.Seed().String(),
			"population": e.PopulationSize(),
			"elite":      e.EliteSize(),
		},
	}
	if !best.Found() {
		return res, fmt.Errorf("%w (вариант %s)", ErrNoSolution, e.Config().Variant)
	}
	cost, err := e.eval.CostOf(best.Genes)
	if err != nil {
		return res, err
	}
	res.Permutation = best.Genes
	res.Cost = cost
	res.Meta["fitness"] = best.Fitness
	res.Meta["generation"] = best.Generation
	return res, nil
}
