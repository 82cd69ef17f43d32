package ts

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"qapSolver/internal/opt"
	"qapSolver/internal/qap"
)

var ErrNilRand = errors.New("ts: генератор случайных чисел не инициализирован (nil)")

// Solver — табу-поиск для QAP на случайной выборке соседей.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает TS-солвер с валидацией конфигурации.
// Используется в фабриках бенчмарка.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

type move struct {
	from, to int
	facility int
	cost     int64
}

func (s *Solver) Solve(ctx context.Context, inst *qap.Instance) (opt.Result, error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, ErrNilRand
	}
	eval, err := qap.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Size
	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerFacility * n
	}

	curr := qap.NewRandomPermutation(n, s.Rng).Genes()
	cand := make([]int, n)
	currCost := eval.MustCostOf(curr)
	evals := 1

	best := append([]int(nil), curr...)
	bestCost := currCost

	// Ёмкость выбирается с запасом относительно длины табу
	tabu := newTabuList(max(32, (s.Cfg.TabuTenure+s.Cfg.TabuTenureRand)*4))

	iter := 0
	for ; n >= 2 && iter < maxIter; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Permutation: best,
				Cost:        bestCost,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(start),
				Meta:        map[string]any{"stopped": "context"},
			}, err
		}

		// Лучший допустимый ход и запасной ход без учёта табу
		allowed := move{from: -1, cost: math.MaxInt64}
		fallback := move{from: -1, cost: math.MaxInt64}

		for k := 0; k < s.Cfg.NeighborsPerIter; k++ {
			from := s.Rng.Intn(n)
			to := s.Rng.Intn(n - 1)
			if to >= from {
				to++
			}
			facility := curr[from]

			copy(cand, curr)
			s.apply(cand, from, to)
			cost := eval.MustCostOf(cand)
			evals++

			m := move{from: from, to: to, facility: facility, cost: cost}
			if cost < fallback.cost {
				fallback = m
			}

			// Табуированный ход пропускается, если не выполняется критерий аспирации
			if tabu.IsTabu(moveKey(facility, from, to), iter) && cost >= bestCost {
				continue
			}
			if cost < allowed.cost {
				allowed = m
			}
		}

		chosen := allowed
		if chosen.from < 0 {
			chosen = fallback
		}

		s.apply(curr, chosen.from, chosen.to)
		currCost = chosen.cost

		// Обратный ход запрещается на tenure итераций
		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		tabu.Add(moveKey(chosen.facility, chosen.to, chosen.from), iter+tenure)

		if currCost < bestCost {
			bestCost = currCost
			copy(best, curr)
		}
	}

	return opt.Result{
		Permutation: best,
		Cost:        bestCost,
		Evaluations: evals,
		Iterations:  iter,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"tabu_tenure":        s.Cfg.TabuTenure,
			"tabu_tenure_rand":   s.Cfg.TabuTenureRand,
			"neighbors_per_iter": s.Cfg.NeighborsPerIter,
			"neighborhood":       string(s.Cfg.Neighborhood),
		},
	}, nil
}

func (s *Solver) apply(p []int, from, to int) {
	if s.Cfg.Neighborhood == NeighborhoodInsert {
		applyInsert(p, from, to)
		return
	}
	p[from], p[to] = p[to], p[from]
}

// applyInsert: элемент из позиции from вставляется в позицию to.
func applyInsert(p []int, from, to int) {
	if from == to {
		return
	}
	val := p[from]
	if from < to {
		copy(p[from:to], p[from+1:to+1])
	} else {
		copy(p[to+1:from+1], p[to:from])
	}
	p[to] = val
}

// moveKey формирует уникальный ключ хода
func moveKey(facility, from, to int) uint64 {
	return (uint64(uint32(facility)) << 42) |
		(uint64(uint32(from)) << 21) |
		uint64(uint32(to))
}
